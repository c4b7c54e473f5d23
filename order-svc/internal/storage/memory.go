package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"restorify/order-svc/internal/domain"
	"restorify/order-svc/internal/service"

	"github.com/shopspring/decimal"
)

type orderRecord struct {
	order  domain.Order
	lines  []domain.OrderLine
	qrCode []byte
}

// MemoryStore keeps the whole back office in process. Transactions are serialized behind
// txMu and stage their writes until commit, so a failed unit of work leaves no trace.
type MemoryStore struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	customers   map[string]struct{}
	staff       map[string]struct{}
	menu        map[string]domain.MenuItem
	bom         map[string][]domain.BillOfMaterialsEntry
	ingredients map[string]domain.Ingredient
	orders      map[string]*orderRecord
	feedback    []domain.Feedback

	lineSeq     int64
	feedbackSeq int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers:   make(map[string]struct{}),
		staff:       make(map[string]struct{}),
		menu:        make(map[string]domain.MenuItem),
		bom:         make(map[string][]domain.BillOfMaterialsEntry),
		ingredients: make(map[string]domain.Ingredient),
		orders:      make(map[string]*orderRecord),
	}
}

var (
	_ service.CatalogRepository  = (*MemoryStore)(nil)
	_ service.PartyDirectory     = (*MemoryStore)(nil)
	_ service.OrderRepository    = (*MemoryStore)(nil)
	_ service.UnitOfWork         = (*MemoryStore)(nil)
	_ service.FeedbackRepository = (*MemoryStore)(nil)
	_ service.Tx                 = (*memoryTx)(nil)
)

func (s *MemoryStore) AddCustomer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[id] = struct{}{}
}

func (s *MemoryStore) AddStaff(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff[id] = struct{}{}
}

func (s *MemoryStore) AddMenuItem(item domain.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu[item.ID] = item
}

func (s *MemoryStore) AddIngredient(ingredient domain.Ingredient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ingredients[ingredient.ID] = ingredient
}

// AddBillOfMaterialsEntry appends an entry, replacing an existing one for the same ingredient.
func (s *MemoryStore) AddBillOfMaterialsEntry(entry domain.BillOfMaterialsEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.bom[entry.MenuID]
	for i := range entries {
		if entries[i].IngredientID == entry.IngredientID {
			entries[i] = entry
			return
		}
	}
	s.bom[entry.MenuID] = append(entries, entry)
}

func (s *MemoryStore) Ingredient(id string) (domain.Ingredient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ingredient, ok := s.ingredients[id]
	return ingredient, ok
}

func (s *MemoryStore) GetMenuItem(_ context.Context, menuID string) (*domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.menu[menuID]
	if !ok {
		return nil, domain.ErrUnknownMenuItem
	}
	return &item, nil
}

func (s *MemoryStore) ListBillOfMaterials(_ context.Context, menuID string) ([]domain.BillOfMaterialsEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.BillOfMaterialsEntry, len(s.bom[menuID]))
	copy(entries, s.bom[menuID])
	return entries, nil
}

func (s *MemoryStore) CustomerExists(_ context.Context, customerID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.customers[customerID]
	return ok, nil
}

func (s *MemoryStore) StaffExists(_ context.Context, staffID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.staff[staffID]
	return ok, nil
}

func (s *MemoryStore) CreateOrder(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[order.ID]; exists {
		return domain.ErrDuplicateOrderID
	}
	stored := *order
	stored.Lines = nil
	s.orders[order.ID] = &orderRecord{order: stored}
	return nil
}

func (s *MemoryStore) GetOrder(_ context.Context, orderID string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	order := record.order
	order.Lines = append([]domain.OrderLine{}, record.lines...)
	return &order, nil
}

func (s *MemoryStore) ListOrders(_ context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]domain.Order, 0, len(s.orders))
	for _, record := range s.orders {
		orders = append(orders, record.order)
	}
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].Date.Equal(orders[j].Date) {
			return orders[i].Date.After(orders[j].Date)
		}
		return orders[i].ID > orders[j].ID
	})
	return orders, nil
}

func (s *MemoryStore) SaveQRCode(_ context.Context, orderID string, qr []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	record.qrCode = append([]byte(nil), qr...)
	return nil
}

func (s *MemoryStore) GetQRCode(_ context.Context, orderID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return append([]byte(nil), record.qrCode...), nil
}

func (s *MemoryStore) InsertFeedback(_ context.Context, feedback *domain.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedbackSeq++
	feedback.ID = s.feedbackSeq
	s.feedback = append(s.feedback, *feedback)
	return nil
}

func (s *MemoryStore) ListFeedback(_ context.Context) ([]domain.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	feedback := append([]domain.Feedback{}, s.feedback...)
	sort.Slice(feedback, func(i, j int) bool {
		if !feedback[i].Date.Equal(feedback[j].Date) {
			return feedback[i].Date.After(feedback[j].Date)
		}
		return feedback[i].ID > feedback[j].ID
	})
	return feedback, nil
}

func (s *MemoryStore) WithinTx(ctx context.Context, fn func(tx service.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memoryTx{
		store:     s,
		stock:     make(map[string]int),
		finalized: make(map[string]decimal.Decimal),
	}
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

type memoryTx struct {
	store     *MemoryStore
	stock     map[string]int
	lines     []domain.OrderLine
	finalized map[string]decimal.Decimal
}

func (t *memoryTx) LockOrder(_ context.Context, orderID string) (*domain.Order, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	record, ok := t.store.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	order := record.order
	if total, ok := t.finalized[orderID]; ok {
		order.Total = total
		order.Status = domain.OrderStatusFinalized
	}
	return &order, nil
}

func (t *memoryTx) LockIngredient(_ context.Context, ingredientID string) (*domain.Ingredient, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	ingredient, ok := t.store.ingredients[ingredientID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownIngredient, ingredientID)
	}
	if stock, ok := t.stock[ingredientID]; ok {
		ingredient.Stock = stock
	}
	return &ingredient, nil
}

func (t *memoryTx) DecrementStock(ctx context.Context, ingredientID string, amount int) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}
	ingredient, err := t.LockIngredient(ctx, ingredientID)
	if err != nil {
		return err
	}
	if ingredient.Stock < amount {
		return domain.ErrInsufficientStock
	}
	t.stock[ingredientID] = ingredient.Stock - amount
	return nil
}

func (t *memoryTx) InsertOrderLine(_ context.Context, line *domain.OrderLine) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, ok := t.store.orders[line.OrderID]; !ok {
		return domain.ErrOrderNotFound
	}
	t.store.lineSeq++
	line.ID = t.store.lineSeq
	t.lines = append(t.lines, *line)
	return nil
}

func (t *memoryTx) ListOrderLines(_ context.Context, orderID string) ([]domain.OrderLine, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	var lines []domain.OrderLine
	if record, ok := t.store.orders[orderID]; ok {
		lines = append(lines, record.lines...)
	}
	for _, line := range t.lines {
		if line.OrderID == orderID {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func (t *memoryTx) FinalizeOrder(_ context.Context, orderID string, total decimal.Decimal) error {
	t.finalized[orderID] = total
	return nil
}

func (t *memoryTx) commit() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for id, stock := range t.stock {
		ingredient := t.store.ingredients[id]
		ingredient.Stock = stock
		t.store.ingredients[id] = ingredient
	}
	for _, line := range t.lines {
		record := t.store.orders[line.OrderID]
		record.lines = append(record.lines, line)
	}
	for id, total := range t.finalized {
		record := t.store.orders[id]
		record.order.Total = total
		record.order.Status = domain.OrderStatusFinalized
	}
}
