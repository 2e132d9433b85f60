package cmdutil

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/lepinkainen/omdb/internal/config"
	"github.com/lepinkainen/omdb/internal/datastore"
)

// WriteToDatastore saves records into table when saving is enabled
// (datastore.enabled). The table is created from schema if needed.
func WriteToDatastore[T any](items []T, schema, table, description string, toMap func(T) map[string]any) error {
	if !viper.GetBool(config.KeySave) {
		return nil
	}
	if len(items) == 0 {
		return nil
	}

	dbPath := viper.GetString(config.KeyDBFile)
	store := datastore.NewSQLiteStore(dbPath)
	if err := store.Connect(); err != nil {
		return fmt.Errorf("failed to connect to datastore: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.CreateTable(schema); err != nil {
		return err
	}

	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		records = append(records, toMap(item))
	}

	if err := store.Upsert(table, records); err != nil {
		return fmt.Errorf("failed to save %s: %w", description, err)
	}

	slog.Info("Saved to datastore", "what", description, "count", len(records), "db", dbPath)
	return nil
}
