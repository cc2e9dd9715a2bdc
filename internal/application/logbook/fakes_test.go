package logbook_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/logbook-api/internal/application/logbook"
	"github.com/jhoicas/logbook-api/internal/domain"
	"github.com/jhoicas/logbook-api/internal/domain/entity"
	"github.com/jhoicas/logbook-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria con semántica de transacción (snapshot + restore).
// ──────────────────────────────────────────────────────────────────────────────

type memLogRepo struct {
	mu         sync.Mutex
	entries    map[string]*entity.LogEntry
	seq        map[string]int
	next       int
	failUpdate error
}

func newMemLogRepo() *memLogRepo {
	return &memLogRepo{entries: map[string]*entity.LogEntry{}, seq: map[string]int{}}
}

func cloneEntry(e *entity.LogEntry) *entity.LogEntry {
	c := *e
	c.ItemsIssued = append([]entity.IssuedItem(nil), e.ItemsIssued...)
	c.ElectricityReadings = append([]entity.ElectricityReading(nil), e.ElectricityReadings...)
	c.DamageLossSummary = append([]entity.DamageLoss(nil), e.DamageLossSummary...)
	return &c
}

func (r *memLogRepo) Create(_ context.Context, e *entity.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.entries {
		if x.BookingID == e.BookingID {
			return domain.ErrDuplicate
		}
	}
	r.entries[e.ID] = cloneEntry(e)
	r.next++
	r.seq[e.ID] = r.next
	return nil
}

func (r *memLogRepo) GetByID(_ context.Context, id string) (*entity.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[id]; ok {
		return cloneEntry(e), nil
	}
	return nil, nil
}

func (r *memLogRepo) GetByBookingID(_ context.Context, bookingID string) (*entity.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.BookingID == bookingID {
			return cloneEntry(e), nil
		}
	}
	return nil, nil
}

func (r *memLogRepo) GetForUpdate(ctx context.Context, id string) (*entity.LogEntry, error) {
	return r.GetByID(ctx, id)
}

func (r *memLogRepo) List(_ context.Context, limit, offset int) ([]*entity.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.LogEntry, 0, len(r.entries))
	for _, e := range r.entries {
		all = append(all, cloneEntry(e))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return r.seq[all[i].ID] > r.seq[all[j].ID]
	})
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memLogRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries), nil
}

func (r *memLogRepo) Update(_ context.Context, e *entity.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate != nil {
		return r.failUpdate
	}
	if _, ok := r.entries[e.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, x := range r.entries {
		if id != e.ID && x.BookingID == e.BookingID {
			return domain.ErrDuplicate
		}
	}
	r.entries[e.ID] = cloneEntry(e)
	return nil
}

func (r *memLogRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *memLogRepo) snapshot() map[string]*entity.LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*entity.LogEntry, len(r.entries))
	for k, v := range r.entries {
		out[k] = cloneEntry(v)
	}
	return out
}

func (r *memLogRepo) restore(s map[string]*entity.LogEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = s
}

type memItemRepo struct {
	mu sync.Mutex
	// items por ID
	items map[string]*entity.InventoryItem
	// failModels hace fallar UpdateStock para esos modelos
	failModels map[string]error
}

func newMemItemRepo(items ...*entity.InventoryItem) *memItemRepo {
	r := &memItemRepo{items: map[string]*entity.InventoryItem{}, failModels: map[string]error{}}
	for _, it := range items {
		c := *it
		r.items[it.ID] = &c
	}
	return r
}

func (r *memItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.items {
		if x.Key() == item.Key() {
			return domain.ErrDuplicate
		}
	}
	c := *item
	r.items[item.ID] = &c
	return nil
}

func (r *memItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it, ok := r.items[id]; ok {
		c := *it
		return &c, nil
	}
	return nil, nil
}

func (r *memItemRepo) GetByKeyForUpdate(_ context.Context, key entity.ItemKey) (*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.Key() == key {
			c := *it
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) UpdateStock(_ context.Context, id string, quantity int, status entity.StockStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if err := r.failModels[it.Model]; err != nil {
		return err
	}
	it.QuantityInStock = quantity
	it.Status = status
	return nil
}

func (r *memItemRepo) List(_ context.Context, limit, offset int) ([]*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.InventoryItem, 0, len(r.items))
	for _, it := range r.items {
		c := *it
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Model < all[j].Model })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memItemRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items), nil
}

func (r *memItemRepo) quantity(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id].QuantityInStock
}

func (r *memItemRepo) status(id string) entity.StockStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id].Status
}

func (r *memItemRepo) snapshot() map[string]*entity.InventoryItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*entity.InventoryItem, len(r.items))
	for k, v := range r.items {
		c := *v
		out[k] = &c
	}
	return out
}

func (r *memItemRepo) restore(s map[string]*entity.InventoryItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = s
}

// memTx emula TxRunner: restaura el estado si fn falla; cada savepoint restaura solo inventario.
type memTx struct {
	logs  *memLogRepo
	items *memItemRepo
}

var _ logbook.TxRunner = (*memTx)(nil)

func (t *memTx) Run(ctx context.Context, fn func(
	logRepo repository.LogEntryRepository,
	itemRepo repository.InventoryItemRepository,
	savepoint logbook.SavepointFunc,
) error) error {
	logSnap, itemSnap := t.logs.snapshot(), t.items.snapshot()
	savepoint := func(ctx context.Context, fn func(repository.InventoryItemRepository) error) error {
		sp := t.items.snapshot()
		if err := fn(t.items); err != nil {
			t.items.restore(sp)
			return err
		}
		return nil
	}
	if err := fn(t.logs, t.items, savepoint); err != nil {
		t.logs.restore(logSnap)
		t.items.restore(itemSnap)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Publisher y recorder de prueba.
// ──────────────────────────────────────────────────────────────────────────────

type capturePublisher struct {
	mu       sync.Mutex
	verified []logbook.LogEntryVerifiedEvent
	lowStock []logbook.InventoryLowStockEvent
	err      error
}

func (p *capturePublisher) PublishLogEntryVerified(_ context.Context, ev logbook.LogEntryVerifiedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.verified = append(p.verified, ev)
	return p.err
}

func (p *capturePublisher) PublishLowStock(_ context.Context, ev logbook.InventoryLowStockEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lowStock = append(p.lowStock, ev)
	return p.err
}

type countingRecorder struct {
	mu         sync.Mutex
	outcomes   map[string]int
	deductions map[entity.StockStatus]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{outcomes: map[string]int{}, deductions: map[entity.StockStatus]int{}}
}

func (r *countingRecorder) ObserveVerification(outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[outcome]++
}

func (r *countingRecorder) ObserveStockDeduction(status entity.StockStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deductions[status]++
}

var errDB = errors.New("conexión perdida")
