// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Respalda los tests de los casos de uso y sirve de modo demo sin
// base de datos. Las semánticas relevantes del adaptador PostgreSQL se
// replican: nil cuando no existe, ErrDuplicate en claves únicas y rollback de
// la transacción completa si el callback falla.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
)

// Store contenedor de todas las colecciones. Un mutex global alcanza: el
// volumen de un test o una demo no justifica nada más fino.
type Store struct {
	mu sync.RWMutex

	items        map[string]*entity.StockItem
	movements    []*entity.Movement
	orders       map[string]*entity.Order
	deliveries   map[string]*entity.Delivery
	transactions map[string]*entity.Transaction
	dailySales   map[string]*entity.DailySales // clave: fecha|item
	branches     map[string]*entity.Branch
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		items:        make(map[string]*entity.StockItem),
		orders:       make(map[string]*entity.Order),
		deliveries:   make(map[string]*entity.Delivery),
		transactions: make(map[string]*entity.Transaction),
		dailySales:   make(map[string]*entity.DailySales),
		branches:     make(map[string]*entity.Branch),
	}
}

func salesKey(date time.Time, itemName string) string {
	return date.Format("2006-01-02") + "|" + itemName
}

// snapshot copia profunda de todas las colecciones (para rollback).
type snapshot struct {
	items        map[string]*entity.StockItem
	movements    []*entity.Movement
	orders       map[string]*entity.Order
	deliveries   map[string]*entity.Delivery
	transactions map[string]*entity.Transaction
	dailySales   map[string]*entity.DailySales
	branches     map[string]*entity.Branch
}

func (s *Store) take() snapshot {
	snap := snapshot{
		items:        make(map[string]*entity.StockItem, len(s.items)),
		movements:    make([]*entity.Movement, len(s.movements)),
		orders:       make(map[string]*entity.Order, len(s.orders)),
		deliveries:   make(map[string]*entity.Delivery, len(s.deliveries)),
		transactions: make(map[string]*entity.Transaction, len(s.transactions)),
		dailySales:   make(map[string]*entity.DailySales, len(s.dailySales)),
		branches:     make(map[string]*entity.Branch, len(s.branches)),
	}
	for k, v := range s.items {
		c := *v
		snap.items[k] = &c
	}
	for i, v := range s.movements {
		c := *v
		snap.movements[i] = &c
	}
	for k, v := range s.orders {
		c := *v
		snap.orders[k] = &c
	}
	for k, v := range s.deliveries {
		c := *v
		snap.deliveries[k] = &c
	}
	for k, v := range s.transactions {
		c := *v
		c.Lines = append([]entity.TransactionLine(nil), v.Lines...)
		snap.transactions[k] = &c
	}
	for k, v := range s.dailySales {
		c := *v
		snap.dailySales[k] = &c
	}
	for k, v := range s.branches {
		c := *v
		snap.branches[k] = &c
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.items = snap.items
	s.movements = snap.movements
	s.orders = snap.orders
	s.deliveries = snap.deliveries
	s.transactions = snap.transactions
	s.dailySales = snap.dailySales
	s.branches = snap.branches
}

// ── StockItemRepository ───────────────────────────────────────────────────────

// ItemRepo adaptador en memoria del maestro de artículos.
type ItemRepo struct{ s *Store }

// Items devuelve el adaptador de artículos.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

func (r *ItemRepo) Create(item *entity.StockItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *item
	r.s.items[item.ID] = &c
	return nil
}

func (r *ItemRepo) GetByID(id string) (*entity.StockItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	c := *it
	return &c, nil
}

// GetForUpdate en memoria equivale a GetByID: la exclusión la da el mutex
// global y la serialización de transacciones del TxRunner.
func (r *ItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	return r.GetByID(id)
}

func (r *ItemRepo) Update(item *entity.StockItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *item
	r.s.items[item.ID] = &c
	return nil
}

func (r *ItemRepo) Deactivate(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Active = false
	it.UpdatedAt = time.Now()
	return nil
}

func (r *ItemRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.items, id)
	return nil
}

func (r *ItemRepo) List(onlyActive bool, limit, offset int) ([]*entity.StockItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.StockItem
	for _, it := range r.s.items {
		if onlyActive && !it.Active {
			continue
		}
		c := *it
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r *ItemRepo) CountByStatus(status entity.StockStatus) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, it := range r.s.items {
		if it.Active && it.Status == status {
			n++
		}
	}
	return n, nil
}

// ── MovementRepository ────────────────────────────────────────────────────────

// MovementRepo adaptador en memoria del libro de movimientos.
type MovementRepo struct{ s *Store }

// Movements devuelve el adaptador del libro.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

func (r *MovementRepo) Create(m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *m
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) FindByCausalRef(ref string) (*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.CausalRef == ref {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) ExistsByItem(itemID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MovementRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, m := range r.s.movements {
		if m.ID == id {
			r.s.movements = append(r.s.movements[:i], r.s.movements[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *MovementRepo) ListLatest(n int) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Movement, 0, n)
	for i := len(r.s.movements) - 1; i >= 0 && len(out) < n; i-- {
		c := *r.s.movements[i]
		out = append(out, &c)
	}
	return out, nil
}

func (r *MovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Movement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].ItemID == itemID {
			c := *r.s.movements[i]
			out = append(out, &c)
		}
	}
	return paginate(out, limit, offset), nil
}

// ── OrderRepository ───────────────────────────────────────────────────────────

// OrderRepo adaptador en memoria de órdenes.
type OrderRepo struct{ s *Store }

// Orders devuelve el adaptador de órdenes.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

func (r *OrderRepo) Create(o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *o
	r.s.orders[o.ID] = &c
	return nil
}

func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	c := *o
	return &c, nil
}

func (r *OrderRepo) Update(o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *o
	r.s.orders[o.ID] = &c
	return nil
}

func (r *OrderRepo) List(status entity.OrderStatus, direction entity.OrderDirection, limit, offset int) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Order
	for _, o := range r.s.orders {
		if status != "" && o.Status != status {
			continue
		}
		if direction != "" && o.Direction != direction {
			continue
		}
		c := *o
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *OrderRepo) CountByStatus(status entity.OrderStatus) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, o := range r.s.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

// ── DeliveryRepository ────────────────────────────────────────────────────────

// DeliveryRepo adaptador en memoria de entregas.
type DeliveryRepo struct{ s *Store }

// Deliveries devuelve el adaptador de entregas.
func (s *Store) Deliveries() *DeliveryRepo { return &DeliveryRepo{s: s} }

func (r *DeliveryRepo) Create(d *entity.Delivery) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.deliveries {
		if existing.OrderID == d.OrderID {
			return domain.ErrDuplicate
		}
	}
	c := *d
	r.s.deliveries[d.ID] = &c
	return nil
}

func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.deliveries[id]
	if !ok {
		return nil, nil
	}
	c := *d
	return &c, nil
}

func (r *DeliveryRepo) GetByOrder(orderID string) (*entity.Delivery, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.deliveries {
		if d.OrderID == orderID {
			c := *d
			return &c, nil
		}
	}
	return nil, nil
}

func (r *DeliveryRepo) Update(d *entity.Delivery) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.deliveries[d.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *d
	r.s.deliveries[d.ID] = &c
	return nil
}

func (r *DeliveryRepo) List(status entity.DeliveryStatus, limit, offset int) ([]*entity.Delivery, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Delivery
	for _, d := range r.s.deliveries {
		if status != "" && d.Status != status {
			continue
		}
		c := *d
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *DeliveryRepo) CountByStatus(status entity.DeliveryStatus) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, d := range r.s.deliveries {
		if d.Status == status {
			n++
		}
	}
	return n, nil
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(in) {
			return nil
		}
		in = in[offset:]
	}
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
