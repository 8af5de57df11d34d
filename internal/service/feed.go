package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jask/listkit/internal/collection"
	"github.com/jask/listkit/internal/database/repository"
)

// FeedService serves the transaction feed newest first, one page at a time.
type FeedService struct {
	Transactions *repository.TransactionRepo
	Filters      repository.TransactionFilters
	PageSize     int
}

// Load returns the first page.
func (s *FeedService) Load(ctx context.Context) ([]repository.Transaction, error) {
	return s.LoadPage(ctx, 0)
}

// LoadPage returns the page starting at offset. An empty page means the
// feed is exhausted.
func (s *FeedService) LoadPage(ctx context.Context, offset int) ([]repository.Transaction, error) {
	if s.PageSize <= 0 {
		return nil, fmt.Errorf("feed: page size must be positive")
	}
	txs, err := s.Transactions.Page(ctx, s.Filters, offset, s.PageSize)
	if err != nil {
		return nil, fmt.Errorf("feed page at %d: %w", offset, err)
	}
	return txs, nil
}

// MonthID is the section id of the month t falls in.
func MonthID(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01")
}

// GroupByMonth groups consecutive transactions by calendar month in loc.
// Input is expected newest first, as the feed returns it.
func GroupByMonth(loc *time.Location) collection.SectionBuilder[repository.Transaction] {
	if loc == nil {
		loc = time.UTC
	}
	return func(txs []repository.Transaction) []collection.Section[repository.Transaction] {
		var out []collection.Section[repository.Transaction]
		for _, tx := range txs {
			id := MonthID(tx.Date, loc)
			if n := len(out); n > 0 && out[n-1].ID == id {
				out[n-1].Items = append(out[n-1].Items, tx)
				continue
			}
			out = append(out, collection.Section[repository.Transaction]{ID: id, Items: []repository.Transaction{tx}})
		}
		return out
	}
}
