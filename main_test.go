package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMainRunsCLI(t *testing.T) {
	runs := 0
	orig := execute
	execute = func() { runs++ }
	t.Cleanup(func() { execute = orig })

	main()

	assert.Equal(t, 1, runs, "main should run the CLI exactly once")
}
