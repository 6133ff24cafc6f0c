package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tewankitchen/pos-api/internal/domain/entity"
	"github.com/tewankitchen/pos-api/internal/domain/enum"
	"github.com/tewankitchen/pos-api/pkg/money"
	"go.uber.org/zap"
)

// CheckoutState is a point-in-time view of one terminal's checkout.
type CheckoutState struct {
	TableID         int                `json:"table_id"`
	Cart            entity.Order       `json:"cart"`
	CartQuote       money.Breakdown    `json:"cart_quote"`
	DiscountPercent decimal.Decimal    `json:"discount_percent"`
	PaymentMethod   enum.PaymentMethod `json:"payment_method"`
	Rates           money.Rates        `json:"rates"`
}

// Bill is the quote for a table's committed order.
type Bill struct {
	Table     *entity.Table   `json:"table"`
	Breakdown money.Breakdown `json:"breakdown"`
	Rates     money.Rates     `json:"rates"`
}

// CheckoutService holds the state of one terminal: the selected table, the
// unconfirmed cart, the discount and the chosen payment method. Every
// command runs under one lock, so a terminal acts as a single actor.
type CheckoutService struct {
	mu sync.Mutex

	menu   *MenuService
	tables *TableService
	ledger *LedgerService
	base   money.Rates
	log    *zap.Logger

	tableID  int
	cart     *entity.Cart
	discount decimal.Decimal
	method   enum.PaymentMethod
}

// NewCheckoutService creates a checkout using base for service charge and tax.
func NewCheckoutService(menu *MenuService, tables *TableService, ledger *LedgerService, base money.Rates) *CheckoutService {
	base.DiscountPercent = decimal.Zero
	log := zap.NewNop()
	if ledger != nil && ledger.log != nil {
		log = ledger.log
	}
	return &CheckoutService{
		menu:     menu,
		tables:   tables,
		ledger:   ledger,
		base:     base,
		log:      log,
		cart:     entity.NewCart(),
		discount: decimal.Zero,
	}
}

// SelectTable makes tableID the target of cart commands. Moving to another
// table discards a non-empty cart, since the cart belongs to the table it
// was built for.
func (s *CheckoutService) SelectTable(ctx context.Context, tableID int) (*entity.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.tables.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if tableID != s.tableID {
		s.cart.Clear()
	}
	s.tableID = tableID
	return t, nil
}

// AddItem adds one unit of a menu item to the cart.
func (s *CheckoutService) AddItem(menuItemID int) (CheckoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tableID == 0 {
		return s.stateOr(ErrNoTableSelected)
	}
	item, err := s.menu.Get(menuItemID)
	if err != nil {
		return s.stateOr(err)
	}
	s.cart.AddItem(item)
	return s.stateLocked()
}

// ChangeQuantity adjusts a cart line by delta; the line goes away at zero.
func (s *CheckoutService) ChangeQuantity(menuItemID, delta int) (CheckoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tableID == 0 {
		return s.stateOr(ErrNoTableSelected)
	}
	s.cart.ChangeQuantity(menuItemID, delta)
	return s.stateLocked()
}

// RemoveItem drops a cart line.
func (s *CheckoutService) RemoveItem(menuItemID int) (CheckoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tableID == 0 {
		return s.stateOr(ErrNoTableSelected)
	}
	s.cart.RemoveItem(menuItemID)
	return s.stateLocked()
}

// ConfirmOrder sends the cart to the kitchen: its lines join the table's
// committed order and the cart empties.
func (s *CheckoutService) ConfirmOrder(ctx context.Context) (*entity.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tables.ConfirmOrder(ctx, s.tableID, s.cart)
}

// SetDiscountPercent stores the discount clamped to [0,100] and returns the
// stored value.
func (s *CheckoutService) SetDiscountPercent(p decimal.Decimal) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.discount = money.ClampPercent(p)
	return s.discount
}

// SetPaymentMethod chooses how the next bill is paid. PaymentMethodNone
// clears the choice.
func (s *CheckoutService) SetPaymentMethod(m enum.PaymentMethod) error {
	if m != enum.PaymentMethodNone && !m.IsValid() {
		return ErrPaymentMethodRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.method = m
	return nil
}

// Pay settles the selected table's committed order. On success the table
// selection, cart, discount and payment method are reset.
func (s *CheckoutService) Pay(ctx context.Context) (*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tableID == 0 {
		return nil, ErrNoTableSelected
	}
	tx, err := s.ledger.RecordPayment(ctx, s.tableID, s.method, s.ratesLocked())
	if err != nil {
		return nil, err
	}
	s.resetLocked()
	return tx, nil
}

// Reset abandons the checkout without touching any table.
func (s *CheckoutService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// Snapshot returns the current checkout state.
func (s *CheckoutService) Snapshot() CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedStateLocked()
}

// Rates returns the rates the next payment would use.
func (s *CheckoutService) Rates() money.Rates {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratesLocked()
}

// Bill quotes a table's committed order with the current rates.
func (s *CheckoutService) Bill(ctx context.Context, tableID int) (*Bill, error) {
	rates := s.Rates()

	t, err := s.tables.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	b, err := money.Calculate(t.Order.Lines(), rates)
	if err != nil {
		return nil, err
	}
	return &Bill{Table: t, Breakdown: b, Rates: rates}, nil
}

func (s *CheckoutService) ratesLocked() money.Rates {
	return s.base.WithDiscount(s.discount)
}

// stateLocked builds the view of the checkout. A quote error means the cart
// holds a line money.Calculate rejects; the state is still returned with a
// zero quote.
func (s *CheckoutService) stateLocked() (CheckoutState, error) {
	items := s.cart.Items()
	state := CheckoutState{
		TableID:         s.tableID,
		Cart:            items,
		DiscountPercent: s.discount,
		PaymentMethod:   s.method,
		Rates:           s.ratesLocked(),
	}
	quote, err := money.Calculate(items.Lines(), state.Rates)
	if err != nil {
		return state, fmt.Errorf("quote cart: %w", err)
	}
	state.CartQuote = quote
	return state, nil
}

// loggedStateLocked is stateLocked for callers with no error to return.
func (s *CheckoutService) loggedStateLocked() CheckoutState {
	state, err := s.stateLocked()
	if err != nil {
		s.log.Error("cart quote failed",
			zap.Int("table_id", s.tableID),
			zap.Error(err),
		)
	}
	return state
}

// stateOr returns the current state with cause, which takes precedence over
// a quote error.
func (s *CheckoutService) stateOr(cause error) (CheckoutState, error) {
	return s.loggedStateLocked(), cause
}

func (s *CheckoutService) resetLocked() {
	s.tableID = 0
	s.cart.Clear()
	s.discount = decimal.Zero
	s.method = enum.PaymentMethodNone
}

// CheckoutRegistry hands each terminal its own checkout.
type CheckoutRegistry struct {
	mu        sync.Mutex
	checkouts map[string]*CheckoutService
	factory   func() *CheckoutService
}

// NewCheckoutRegistry creates a registry whose checkouts share the given
// services.
func NewCheckoutRegistry(menu *MenuService, tables *TableService, ledger *LedgerService, base money.Rates) *CheckoutRegistry {
	return &CheckoutRegistry{
		checkouts: make(map[string]*CheckoutService),
		factory: func() *CheckoutService {
			return NewCheckoutService(menu, tables, ledger, base)
		},
	}
}

// For returns the checkout of terminalID, creating it on first use.
func (r *CheckoutRegistry) For(terminalID string) *CheckoutService {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.checkouts[terminalID]
	if !ok {
		c = r.factory()
		r.checkouts[terminalID] = c
	}
	return c
}
