package catalog

import (
	"context"
	"embed"
	"io/fs"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrations returns the reference table schema for db.NewMigrator.
func Migrations() fs.FS {
	sub, err := fs.Sub(schemaFS, "schema")
	if err != nil {
		panic(err)
	}
	return sub
}

// Loader produces a Catalog at startup.
type Loader interface {
	Load(ctx context.Context) (*Catalog, error)
}

// StaticLoader serves the built-in reference data.
type StaticLoader struct{}

func (StaticLoader) Load(context.Context) (*Catalog, error) {
	return Default(), nil
}
