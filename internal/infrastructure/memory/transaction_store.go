package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
)

// TransactionRepo adaptador en memoria de transacciones.
type TransactionRepo struct{ s *Store }

// Transactions devuelve el adaptador de transacciones.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }

func cloneTxn(t *entity.Transaction) *entity.Transaction {
	c := *t
	c.Lines = append([]entity.TransactionLine(nil), t.Lines...)
	return &c
}

func (r *TransactionRepo) Create(t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transactions[t.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.transactions[t.ID] = cloneTxn(t)
	return nil
}

func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return nil, nil
	}
	return cloneTxn(t), nil
}

func (r *TransactionRepo) UpdateStatus(id string, status entity.TransactionStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Status = status
	return nil
}

func (r *TransactionRepo) List(status entity.TransactionStatus, limit, offset int) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Transaction
	for _, t := range r.s.transactions {
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, cloneTxn(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, limit, offset), nil
}

func (r *TransactionRepo) SumConfirmedSales(date time.Time) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	sum := decimal.Zero
	for _, t := range r.s.transactions {
		if t.Type != entity.TransactionSale || t.Status != entity.TransactionConfirmed {
			continue
		}
		if t.Date.Before(dayStart) || !t.Date.Before(dayEnd) {
			continue
		}
		sum = sum.Add(t.FinalAmount)
	}
	return sum, nil
}

// DailySalesRepo adaptador en memoria del agregado diario.
type DailySalesRepo struct{ s *Store }

// DailySales devuelve el adaptador del agregado diario.
func (s *Store) DailySales() *DailySalesRepo { return &DailySalesRepo{s: s} }

func (r *DailySalesRepo) Upsert(d *entity.DailySales) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *d
	r.s.dailySales[salesKey(d.Date, d.ItemName)] = &c
	return nil
}

func (r *DailySalesRepo) Get(date time.Time, itemName string) (*entity.DailySales, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.dailySales[salesKey(date, itemName)]
	if !ok {
		return nil, nil
	}
	c := *d
	return &c, nil
}

func (r *DailySalesRepo) ListRange(from, to time.Time) ([]*entity.DailySales, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.DailySales
	for _, d := range r.s.dailySales {
		if d.Date.Before(from) || d.Date.After(to) {
			continue
		}
		c := *d
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ItemName < out[j].ItemName
	})
	return out, nil
}

// BranchRepo adaptador en memoria de sucursales.
type BranchRepo struct{ s *Store }

// Branches devuelve el adaptador de sucursales.
func (s *Store) Branches() *BranchRepo { return &BranchRepo{s: s} }

func (r *BranchRepo) Create(b *entity.Branch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.branches {
		if existing.Name == b.Name {
			return domain.ErrDuplicate
		}
	}
	if _, ok := r.s.branches[b.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *b
	r.s.branches[b.ID] = &c
	return nil
}

func (r *BranchRepo) GetByID(id string) (*entity.Branch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.branches[id]
	if !ok {
		return nil, nil
	}
	c := *b
	return &c, nil
}

func (r *BranchRepo) GetByName(name string) (*entity.Branch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.branches {
		if b.Name == name {
			c := *b
			return &c, nil
		}
	}
	return nil, nil
}

func (r *BranchRepo) List(limit, offset int) ([]*entity.Branch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Branch
	for _, b := range r.s.branches {
		c := *b
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}
