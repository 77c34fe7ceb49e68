package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
	"github.com/aliskhannn/factdrill/internal/storage"
)

func TestFactCatalog_EnsureSeeded(t *testing.T) {
	c := NewFactCatalog(storage.NewFactStorage(entities.MaxOperand, nil))

	for range 3 {
		n, err := c.EnsureSeeded(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 900, n)
	}

	require.NoError(t, c.Check(context.Background()))
}
