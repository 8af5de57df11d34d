package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/listkit/internal/collection"
	"github.com/jask/listkit/internal/database/repository"
)

// SearchService ranks transactions against a free text query.
type SearchService struct {
	Transactions *repository.TransactionRepo
}

type scored struct {
	tx    repository.Transaction
	score int
}

// Search returns matching transactions, closest first. Ties keep feed order.
func (s *SearchService) Search(ctx context.Context, query string) ([]repository.Transaction, error) {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}
	all, err := s.Transactions.List(ctx, repository.TransactionFilters{})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	var hits []scored
	for _, tx := range all {
		if d, ok := match(q, tx); ok {
			hits = append(hits, scored{tx: tx, score: d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })

	out := make([]repository.Transaction, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.tx)
	}
	return out, nil
}

// Loader binds query into a list loader.
func (s *SearchService) Loader(query string) collection.Loader[repository.Transaction] {
	return func(ctx context.Context) ([]repository.Transaction, error) {
		return s.Search(ctx, query)
	}
}

// match scores q against the label and description of tx. Substrings score
// zero; otherwise the closest word must be within a third of the query.
func match(q string, tx repository.Transaction) (int, bool) {
	best := -1
	for _, field := range []string{strings.ToUpper(tx.Label()), strings.ToUpper(tx.Description)} {
		if strings.Contains(field, q) {
			return 0, true
		}
		candidates := append(strings.Fields(field), field)
		for _, c := range candidates {
			d := levenshtein.ComputeDistance(q, c)
			if best < 0 || d < best {
				best = d
			}
		}
	}
	limit := len(q) / 3
	if limit < 1 {
		limit = 1
	}
	return best, best >= 0 && best <= limit
}
