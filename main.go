package main

import "github.com/lepinkainen/omdb/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
