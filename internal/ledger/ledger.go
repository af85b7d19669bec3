// Package ledger holds the append-only sales history and its query and
// aggregation paths.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Lixing-Zhang/shop-backend/internal/models"
	"github.com/shopspring/decimal"
)

// BucketMonth is the only supported aggregation granularity.
const BucketMonth = "month"

var (
	ErrUnsupportedBucket = errors.New("unsupported bucket")
	ErrInvalidPage       = errors.New("invalid page")
)

// Ledger is an append-only, concurrency-safe collection of sales records.
type Ledger struct {
	mu      sync.RWMutex
	records []models.SalesRecord
}

// New creates an empty ledger
func New() *Ledger {
	return &Ledger{}
}

// Append adds records to the end of the ledger. A batch becomes visible to
// readers all at once.
func (l *Ledger) Append(records ...models.SalesRecord) {
	if len(records) == 0 {
		return
	}
	l.mu.Lock()
	l.records = append(l.records, records...)
	l.mu.Unlock()
}

// Len returns the number of records in the ledger
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// snapshot returns a prefix of the ledger that later appends cannot touch.
// Appends only write past len, so the capped slice stays stable without the lock.
func (l *Ledger) snapshot() []models.SalesRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := len(l.records)
	return l.records[:n:n]
}

// Query returns one page of the records matching filter, in ledger order.
// Pages past the end are empty.
func (l *Ledger) Query(ctx context.Context, filter models.SalesFilter, page models.PageInfo) ([]models.SalesRecord, error) {
	if page.Page < 1 || page.Size < 1 {
		return nil, fmt.Errorf("%w: page %d size %d", ErrInvalidPage, page.Page, page.Size)
	}

	// Matches never outnumber the records, so bounds over the whole
	// snapshot are exact for the filtered sequence as well.
	records := l.snapshot()
	start, end := page.Bounds(len(records))

	result := make([]models.SalesRecord, 0, end-start)
	if start == end {
		return result, nil
	}
	matched := 0
	for _, r := range records {
		if !filter.Matches(r) {
			continue
		}
		if matched >= start {
			result = append(result, r)
		}
		matched++
		if matched >= end {
			break
		}
	}
	return result, nil
}

// Totals aggregates the total price of a year's sales into buckets.
func (l *Ledger) Totals(ctx context.Context, year int, bucket string) ([]decimal.Decimal, error) {
	if bucket != BucketMonth {
		return nil, fmt.Errorf("%w %q: only %q is supported", ErrUnsupportedBucket, bucket, BucketMonth)
	}
	return l.MonthlyTotals(ctx, year), nil
}

// MonthlyTotals sums the year's total prices per calendar month, January first.
func (l *Ledger) MonthlyTotals(ctx context.Context, year int) []decimal.Decimal {
	totals := make([]decimal.Decimal, 12)
	for i := range totals {
		totals[i] = decimal.Zero
	}
	for _, r := range l.snapshot() {
		if r.SaleDate.Year != year {
			continue
		}
		m := int(r.SaleDate.Month) - 1
		totals[m] = totals[m].Add(r.TotalPrice)
	}
	for i := range totals {
		totals[i] = models.RoundPrice(totals[i])
	}
	return totals
}
