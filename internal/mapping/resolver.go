package mapping

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Provider supplies one layer of the customer mapping.
type Provider interface {
	Name() string
	Mappings(ctx context.Context) (Table, error)
}

// OverrideStore is persisted override storage, keyed by jobsite ID with
// create-or-update semantics.
type OverrideStore interface {
	All(ctx context.Context) (Table, error)
	Save(ctx context.Context, m Mapping) error
	Delete(ctx context.Context, jobsiteID string) (bool, error)
}

// Resolver builds the merged jobsite → customer table from its sources in
// fixed precedence: the base provider first (best-effort), then overrides
// from the database when one is configured, falling back to the override CSV.
// The table is rebuilt on every Load call.
type Resolver struct {
	base     Provider
	store    OverrideStore
	filePath string
	logger   *zap.Logger
}

// NewResolver creates a resolver. base and store may be nil when the LMN API
// or database is not configured; filePath may be empty to disable the CSV
// override source.
func NewResolver(base Provider, store OverrideStore, filePath string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{base: base, store: store, filePath: filePath, logger: logger}
}

// Load rebuilds the merged mapping table. Source failures are never fatal:
// an unreachable base layer yields an empty base, and an unreachable
// database falls through to the CSV override file.
func (r *Resolver) Load(ctx context.Context) Table {
	var layers []Table

	if r.base != nil {
		base, err := r.base.Mappings(ctx)
		if err != nil {
			r.logger.Warn("base mapping source unavailable, continuing without it",
				zap.String("source", r.base.Name()), zap.Error(err))
		} else {
			layers = append(layers, base)
		}
	}

	layers = append(layers, r.loadOverrides(ctx))

	return Merge(layers...)
}

func (r *Resolver) loadOverrides(ctx context.Context) Table {
	if r.store != nil {
		overrides, err := r.store.All(ctx)
		if err == nil {
			return overrides
		}
		r.logger.Warn("database overrides unavailable, falling back to file",
			zap.Error(err))
	}

	if r.filePath == "" {
		return Table{}
	}
	overrides, err := LoadFile(r.filePath)
	if err != nil {
		r.logger.Warn("override file unreadable, continuing without overrides",
			zap.String("path", r.filePath), zap.Error(err))
		return Table{}
	}
	return overrides
}

// SaveOverride persists a single mapping override, creating or updating the
// entry for its jobsite ID. Goes to the database when configured, else to
// the override CSV.
func (r *Resolver) SaveOverride(ctx context.Context, m Mapping) error {
	if m.JobsiteID == "" {
		return fmt.Errorf("mapping has no jobsite ID")
	}

	if r.store != nil {
		return r.store.Save(ctx, m)
	}

	if r.filePath == "" {
		return fmt.Errorf("no override store configured")
	}
	table, err := LoadFile(r.filePath)
	if err != nil {
		return err
	}
	table[m.JobsiteID] = m
	return SaveFile(r.filePath, table)
}

// DeleteOverride removes an override. Reports whether an entry existed.
func (r *Resolver) DeleteOverride(ctx context.Context, jobsiteID string) (bool, error) {
	if r.store != nil {
		return r.store.Delete(ctx, jobsiteID)
	}

	if r.filePath == "" {
		return false, fmt.Errorf("no override store configured")
	}
	table, err := LoadFile(r.filePath)
	if err != nil {
		return false, err
	}
	if _, ok := table[jobsiteID]; !ok {
		return false, nil
	}
	delete(table, jobsiteID)
	return true, SaveFile(r.filePath, table)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc struct {
	ProviderName string
	Fetch        func(ctx context.Context) (Table, error)
}

func (p ProviderFunc) Name() string { return p.ProviderName }

func (p ProviderFunc) Mappings(ctx context.Context) (Table, error) {
	return p.Fetch(ctx)
}
