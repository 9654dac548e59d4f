package database

import (
	"context"
	_ "embed"
	"fmt"
)

// Schema is the DDL for every table the importer writes.
//
//go:embed schema.sql
var Schema string

// ApplySchema runs Schema. It is safe to call on every start.
func ApplySchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
