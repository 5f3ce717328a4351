package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
)

var _ repository.TransactionRepository = (*txRepo)(nil)

type txRepo struct {
	with func(func(*state) error) error
}

func (r *txRepo) Append(ctx context.Context, tx *entity.Transaction) error {
	return r.with(func(st *state) error {
		cp := *tx
		st.txs = append(st.txs, &cp)
		return nil
	})
}

func (r *txRepo) List(ctx context.Context, f entity.TransactionFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	err := r.with(func(st *state) error {
		for _, tx := range st.txs {
			if f.Type != "" && tx.Type != f.Type {
				continue
			}
			if !f.From.IsZero() && tx.CreatedAt.Before(f.From) {
				continue
			}
			if !f.To.IsZero() && !tx.CreatedAt.Before(f.To) {
				continue
			}
			cp := *tx
			out = append(out, &cp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	newestFirst(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *txRepo) ListByItem(ctx context.Context, itemName string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	err := r.with(func(st *state) error {
		for _, tx := range st.txs {
			if tx.ItemName == itemName {
				cp := *tx
				out = append(out, &cp)
			}
		}
		return nil
	})
	newestFirst(out)
	return out, err
}

func (r *txRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := r.with(func(st *state) error {
		kept := st.txs[:0:0]
		for _, tx := range st.txs {
			if tx.CreatedAt.Before(cutoff) {
				n++
				continue
			}
			kept = append(kept, tx)
		}
		st.txs = kept
		return nil
	})
	return n, err
}

// newestFirst orden estable: a igual fecha conserva el orden inverso de inserción.
func newestFirst(txs []*entity.Transaction) {
	for i, j := 0, len(txs)-1; i < j; i, j = i+1, j-1 {
		txs[i], txs[j] = txs[j], txs[i]
	}
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].CreatedAt.After(txs[j].CreatedAt) })
}
