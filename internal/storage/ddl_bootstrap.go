package storage

import (
	"context"
	"fmt"
	"sync"
)

// DDLBuilder renders a backend-specific CREATE TABLE IF NOT EXISTS statement
// for a table whose columns all hold text.
type DDLBuilder func(table string, columns []string) (string, error)

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBuilder{}
)

// RegisterDDL registers (or replaces) the DDL builder for kind. Backends call
// it from init.
func RegisterDDL(kind string, fn DDLBuilder) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTable creates cfg.Table with cfg.Columns through repo if it does not
// exist yet, using the builder registered for cfg.Kind.
func EnsureTable(ctx context.Context, cfg Config, repo Repository) error {
	ddlMu.RLock()
	fn, ok := ddlFns[cfg.Kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL builder registered for storage.kind=%q", cfg.Kind)
	}
	stmt, err := fn(cfg.Table, cfg.Columns)
	if err != nil {
		return fmt.Errorf("build DDL: %w", err)
	}
	return repo.Exec(ctx, stmt)
}
