// Package datastore saves fetched OMDb records into a local SQLite database
// so they can be browsed later with tools such as Datasette.
package datastore

// Store defines the interface for local record storage.
type Store interface {
	// Connect opens the underlying database.
	Connect() error

	// CreateTable runs a CREATE TABLE IF NOT EXISTS statement.
	CreateTable(schema string) error

	// Upsert inserts records into table, replacing rows with the same
	// primary key.
	Upsert(table string, records []map[string]any) error

	// Close closes the connection to the data store.
	Close() error
}
