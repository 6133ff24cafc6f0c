package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tewankitchen/pos-api/internal/domain/entity"
	"github.com/tewankitchen/pos-api/internal/domain/enum"
	domainRepo "github.com/tewankitchen/pos-api/internal/domain/repository"
)

var water = entity.MenuItem{ID: 6, Name: "Water", Price: decimal.NewFromInt(10), Category: enum.CategoryBeverages}

func TestTableRepository_StartsAvailable(t *testing.T) {
	repo := NewTableRepository(6)
	tables, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 6)
	for i, tbl := range tables {
		assert.Equal(t, i+1, tbl.ID)
		assert.Equal(t, enum.TableStatusAvailable, tbl.Status)
		assert.Empty(t, tbl.Order)
	}
	assert.Equal(t, 6, repo.Count())
}

func TestTableRepository_UnknownTable(t *testing.T) {
	repo := NewTableRepository(2)
	_, err := repo.GetByID(context.Background(), 3)
	assert.True(t, errors.Is(err, domainRepo.ErrNotFound))

	err = repo.Update(context.Background(), 0, func(*entity.Table) error { return nil })
	assert.True(t, errors.Is(err, domainRepo.ErrNotFound))
}

func TestTableRepository_UpdateRollsBackOnError(t *testing.T) {
	repo := NewTableRepository(1)
	boom := errors.New("boom")
	err := repo.Update(context.Background(), 1, func(tbl *entity.Table) error {
		tbl.Status = enum.TableStatusOccupied
		tbl.Order = append(tbl.Order, entity.LineItem{MenuItem: water, Quantity: 1})
		return boom
	})
	require.ErrorIs(t, err, boom)

	tbl, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, tbl.IsOccupied())
	assert.Empty(t, tbl.Order)
}

func TestTableRepository_GetReturnsCopy(t *testing.T) {
	repo := NewTableRepository(1)
	require.NoError(t, repo.Update(context.Background(), 1, func(tbl *entity.Table) error {
		tbl.Order = entity.Order{{MenuItem: water, Quantity: 1}}
		tbl.Status = enum.TableStatusOccupied
		return nil
	}))

	tbl, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	tbl.Order[0].Quantity = 99

	again, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Order[0].Quantity)
}

func TestTableRepository_ConcurrentUpdates(t *testing.T) {
	repo := NewTableRepository(1)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Update(context.Background(), 1, func(tbl *entity.Table) error {
				tbl.Order = append(tbl.Order, entity.LineItem{MenuItem: water, Quantity: 1})
				return nil
			})
		}()
	}
	wg.Wait()

	tbl, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, tbl.Order, 50)
}

func TestLedgerRepository_AppendAndQuery(t *testing.T) {
	repo := NewLedgerRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Append(ctx, &entity.Transaction{
			ID:        snowflake.ID(100 + i),
			TableID:   i + 1,
			Items:     entity.Order{{MenuItem: water, Quantity: i + 1}},
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, snowflake.ID(100), all[0].ID)

	tx, err := repo.GetByID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 2, tx.TableID)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domainRepo.ErrNotFound)

	window, err := repo.Between(ctx, base, base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Len(t, window, 2)
}

func TestLedgerRepository_StoredCopyIsIsolated(t *testing.T) {
	repo := NewLedgerRepository()
	ctx := context.Background()
	tx := &entity.Transaction{ID: 1, Items: entity.Order{{MenuItem: water, Quantity: 1}}}
	require.NoError(t, repo.Append(ctx, tx))

	tx.Items[0].Quantity = 7
	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Items[0].Quantity)
}

func TestMemoryIdempotencyRepository(t *testing.T) {
	repo := NewMemoryIdempotencyRepository()
	ctx := context.Background()

	got, err := repo.GetByKey(ctx, "k1", "t1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{Key: "k1", TerminalID: "t1", ResponseCode: 201, ResponseBody: "first", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{Key: "k1", TerminalID: "t1", ResponseCode: 201, ResponseBody: "second", ExpiresAt: time.Now().Add(time.Hour)}))

	got, err = repo.GetByKey(ctx, "k1", "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.ResponseBody)

	other, err := repo.GetByKey(ctx, "k1", "t2")
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{Key: "old", TerminalID: "t1", ExpiresAt: time.Now().Add(-time.Minute)}))
	require.NoError(t, repo.DeleteExpired(ctx))
	gone, err := repo.GetByKey(ctx, "old", "t1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
