package pg

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/kasadel/mallcore/migrations"
)

// Migrate aplica los .sql embebidos en orden lexicográfico. Los scripts son
// idempotentes (IF NOT EXISTS), así que correr dos veces es seguro.
func (s *Store) Migrate(ctx context.Context) error {
	entries, err := fs.ReadDir(migrations.Postgres, "postgres")
	if err != nil {
		return fmt.Errorf("pg: leer migraciones: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		sql, err := fs.ReadFile(migrations.Postgres, "postgres/"+name)
		if err != nil {
			return fmt.Errorf("pg: leer %s: %w", name, err)
		}
		if _, err := s.pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("pg: aplicar %s: %w", name, err)
		}
	}
	return nil
}
