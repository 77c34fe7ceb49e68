package service

import (
	"context"
	"fmt"
)

// FactCatalog owns bootstrap and health of the fact store.
type FactCatalog struct {
	facts FactRepository
}

// NewFactCatalog creates a new FactCatalog.
func NewFactCatalog(facts FactRepository) *FactCatalog {
	return &FactCatalog{facts: facts}
}

// EnsureSeeded seeds the fact store if it is empty and returns the number
// of stored facts.
func (c *FactCatalog) EnsureSeeded(ctx context.Context) (int, error) {
	if _, err := c.facts.SeedIfEmpty(ctx); err != nil {
		return 0, err
	}

	count, err := c.facts.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("ensure seeded: %w", err)
	}
	return count, nil
}

// Check verifies the store answers queries.
func (c *FactCatalog) Check(ctx context.Context) error {
	if _, err := c.facts.Count(ctx); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	return nil
}
