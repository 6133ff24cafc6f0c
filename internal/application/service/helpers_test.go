package service

import (
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"github.com/tewankitchen/pos-api/internal/domain/entity"
	"github.com/tewankitchen/pos-api/internal/infrastructure/repository"
	"github.com/tewankitchen/pos-api/pkg/money"
	"go.uber.org/zap"
)

type captureNotifier struct {
	mu  sync.Mutex
	txs []*entity.Transaction
}

func (n *captureNotifier) Enqueue(tx *entity.Transaction) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.txs = append(n.txs, tx.Clone())
	return true
}

func (n *captureNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.txs)
}

type fixture struct {
	menu     *MenuService
	tables   *TableService
	ledger   *LedgerService
	reports  *ReportService
	checkout *CheckoutService
	notifier *captureNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	notifier := &captureNotifier{}
	f := newFixtureWith(t, notifier)
	f.notifier = notifier
	return f
}

// newFixtureWith wires the services around the given notifier.
func newFixtureWith(t *testing.T, notifier TransactionNotifier) *fixture {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	tableRepo := repository.NewTableRepository(6)
	f := &fixture{
		menu:   NewMenuService(entity.DefaultMenu()),
		tables: NewTableService(tableRepo),
	}
	f.ledger = NewLedgerService(repository.NewLedgerRepository(), tableRepo, node, notifier, zap.NewNop())
	f.reports = NewReportService(f.ledger, time.UTC)
	f.checkout = NewCheckoutService(f.menu, f.tables, f.ledger, money.NewRates(10, 7, 0))
	return f
}

// cartOf builds a cart from menu item ids, one unit per occurrence.
func (f *fixture) cartOf(t *testing.T, ids ...int) *entity.Cart {
	t.Helper()
	c := entity.NewCart()
	for _, id := range ids {
		it, err := f.menu.Get(id)
		require.NoError(t, err)
		c.AddItem(it)
	}
	return c
}
