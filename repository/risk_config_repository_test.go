package repository

import (
	"context"
	"testing"
	"time"

	"qabum/domain/entities"
	"qabum/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskConfigRepository_GetEmpty(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRiskConfigRepository(testDB.DB)

	got, err := repo.Get(context.Background())
	assert.Nil(t, got)
	assert.ErrorIs(t, err, entities.ErrConfigNotFound)
}

func TestRiskConfigRepository_PutAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRiskConfigRepository(testDB.DB)
	ctx := context.Background()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	config := entities.DefaultRiskConfig(now)
	override := 0.5
	config.SectorCaps[entities.SectorHighMarginService] = entities.SectorCap{
		EthicalCap:                          0.030,
		MaxAdvanceMultipleOfAvgMonthlySales: &override,
	}

	require.NoError(t, repo.Put(ctx, config, 0))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)
	assert.True(t, now.Equal(got.UpdatedAt))
	assert.Equal(t, config.Global, got.Global)
	require.Contains(t, got.SectorCaps, entities.SectorHighMarginService)
	require.NotNil(t, got.SectorCaps[entities.SectorHighMarginService].MaxAdvanceMultipleOfAvgMonthlySales)
	assert.InDelta(t, 0.5, *got.SectorCaps[entities.SectorHighMarginService].MaxAdvanceMultipleOfAvgMonthlySales, 1e-9)
}

func TestRiskConfigRepository_VersionConflict(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRiskConfigRepository(testDB.DB)
	ctx := context.Background()

	now := time.Now().UTC()
	first := entities.DefaultRiskConfig(now)
	require.NoError(t, repo.Put(ctx, first, 0))

	t.Run("second initial write conflicts", func(t *testing.T) {
		err := repo.Put(ctx, entities.DefaultRiskConfig(now), 0)
		assert.ErrorIs(t, err, entities.ErrConfigVersionConflict)
	})

	t.Run("update against current version succeeds", func(t *testing.T) {
		next := entities.DefaultRiskConfig(now)
		next.Version = 2
		next.Global.DefaultMdr = 0.025
		require.NoError(t, repo.Put(ctx, next, 1))

		got, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Version)
		assert.InDelta(t, 0.025, got.Global.DefaultMdr, 1e-9)
	})

	t.Run("update against stale version conflicts", func(t *testing.T) {
		stale := entities.DefaultRiskConfig(now)
		stale.Version = 2
		err := repo.Put(ctx, stale, 1)
		assert.ErrorIs(t, err, entities.ErrConfigVersionConflict)

		// Stored config is untouched
		got, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Version)
	})
}
