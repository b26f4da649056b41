package memory

import (
	"context"
	"sync"

	"github.com/forkast/branch-ops/internal/application/ledger"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner versión en memoria del runner transaccional. Serializa las
// transacciones con un mutex propio y toma una copia profunda del store antes
// de ejecutar el callback; si este falla, restaura la copia. Así un fallo a
// mitad de una confirmación multilinea no deja escrituras parciales, igual
// que el rollback de PostgreSQL.
type TxRunner struct {
	txMu  sync.Mutex
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos del store; restaura el snapshot si fn falla.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ledger.TxRepos) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.store.mu.Lock()
	snap := r.store.take()
	r.store.mu.Unlock()

	repos := ledger.TxRepos{
		Items:        r.store.Items(),
		Movements:    r.store.Movements(),
		Orders:       r.store.Orders(),
		Deliveries:   r.store.Deliveries(),
		Transactions: r.store.Transactions(),
		DailySales:   r.store.DailySales(),
	}

	if err := fn(repos); err != nil {
		r.store.mu.Lock()
		r.store.restore(snap)
		r.store.mu.Unlock()
		return err
	}
	return nil
}
