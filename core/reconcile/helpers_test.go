package reconcile

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"order-ledger/core/date"

	"github.com/shopspring/decimal"
)

// memStore is an in-memory Store. WithinTx works on a copy that replaces the
// committed state only when fn succeeds.
type memStore struct {
	mu        sync.Mutex
	orders    map[int64]Order
	txCount   int
	commitErr error
	insertErr error
}

func newMemStore(orders ...Order) *memStore {
	s := &memStore{orders: make(map[int64]Order)}
	for _, o := range orders {
		s.orders[o.OrderNumber] = o
	}
	return s
}

func (s *memStore) OrderNumbers(ctx context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]int64, 0, len(s.orders))
	for k := range s.orders {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys, nil
}

func (s *memStore) FindByOrderNumbers(ctx context.Context, keys []int64) ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Order
	for _, k := range keys {
		if o, ok := s.orders[k]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, m Mutator) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txCount++

	work := make(map[int64]Order, len(s.orders))
	for k, v := range s.orders {
		work[k] = v
	}
	if err := fn(ctx, &memTx{orders: work, insertErr: s.insertErr}); err != nil {
		return err
	}
	if s.commitErr != nil {
		return s.commitErr
	}
	s.orders = work
	return nil
}

func (s *memStore) get(key int64) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[key]
	return o, ok
}

func (s *memStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type memTx struct {
	orders    map[int64]Order
	insertErr error
}

func (t *memTx) DeleteBatch(ctx context.Context, keys []int64) error {
	for _, k := range keys {
		delete(t.orders, k)
	}
	return nil
}

func (t *memTx) UpdateBatch(ctx context.Context, orders []Order) error {
	for _, o := range orders {
		if _, ok := t.orders[o.OrderNumber]; !ok {
			return fmt.Errorf("order %d not found", o.OrderNumber)
		}
		t.orders[o.OrderNumber] = o
	}
	return nil
}

func (t *memTx) InsertBatch(ctx context.Context, orders []Order) error {
	if t.insertErr != nil {
		return t.insertErr
	}
	for _, o := range orders {
		if _, ok := t.orders[o.OrderNumber]; ok {
			return fmt.Errorf("duplicate order %d", o.OrderNumber)
		}
		t.orders[o.OrderNumber] = o
	}
	return nil
}

// countingRates is a RateSource that records every lookup.
type countingRates struct {
	mu    sync.Mutex
	rates map[date.Date]decimal.Decimal
	calls map[date.Date]int
}

func newCountingRates(rates map[string]string) *countingRates {
	r := &countingRates{
		rates: make(map[date.Date]decimal.Decimal),
		calls: make(map[date.Date]int),
	}
	for day, rate := range rates {
		r.rates[date.MustParse(day)] = decimal.RequireFromString(rate)
	}
	return r
}

func (r *countingRates) Rate(ctx context.Context, day date.Date) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[day]++
	rate, ok := r.rates[day]
	if !ok {
		return decimal.Decimal{}, ErrNoQuotation
	}
	return rate, nil
}

func (r *countingRates) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		n += c
	}
	return n
}

func (r *countingRates) callsFor(day string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[date.MustParse(day)]
}

func order(seq, num int64, amount, day, local string) Order {
	return Order{
		SequenceNumber: seq,
		OrderNumber:    num,
		ForeignAmount:  decimal.RequireFromString(amount),
		DeliveryDate:   date.MustParse(day),
		LocalAmount:    decimal.RequireFromString(local),
	}
}

func candidate(seq, num int64, amount, day string) Candidate {
	return Candidate{
		SequenceNumber: seq,
		OrderNumber:    num,
		ForeignAmount:  decimal.RequireFromString(amount),
		DeliveryDate:   date.MustParse(day),
	}
}

// row renders a sheet row with a DD.MM.YYYY date.
func row(seq, num int64, amount, day string) []string {
	return []string{
		fmt.Sprint(seq),
		fmt.Sprint(num),
		amount,
		date.MustParse(day).Format(date.SheetLayout),
	}
}

var header = []string{"№", "заказ №", "стоимость,$", "срок поставки"}

func sheet(rows ...[]string) [][]string {
	return append([][]string{header}, rows...)
}
