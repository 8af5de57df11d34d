package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jask/listkit/internal/database"
	"github.com/jask/listkit/internal/database/repository"
)

const sampleAccount = "Sample Checking"

type sample struct {
	desc     string
	merchant string
	category string
	min, max int64
}

var samples = []sample{
	{desc: "UBER EATS* SUSHI", merchant: "Uber Eats", category: "Restaurants", min: 1500, max: 6000},
	{desc: "AMAZON.COM*XYZ", merchant: "Amazon", category: "Shopping", min: 1000, max: 20000},
	{desc: "WOOLWORTHS 1234", merchant: "Woolworths", category: "Groceries", min: 2000, max: 25000},
	{desc: "SPOTIFY P0123", merchant: "Spotify", category: "Subscriptions", min: 1299, max: 1299},
	{desc: "MYKI TOPUP", category: "Transport", min: 1000, max: 5000},
	{desc: "ORIGIN ENERGY", category: "Utilities", min: 8000, max: 30000},
}

// Seeder writes demo transactions spread over the past few months.
type Seeder struct {
	Accounts     *repository.AccountRepo
	Categories   *repository.CategoryRepo
	Transactions *repository.TransactionRepo
	Rand         *rand.Rand
	Now          func() time.Time
}

// Seed inserts n transactions into the sample account, creating it if needed.
// Roughly one in ten is income and two in ten are pending. Categories are
// only assigned when the default category exists.
func (s *Seeder) Seed(ctx context.Context, n int) error {
	rng := s.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}

	acct, err := s.Accounts.ByName(ctx, sampleAccount)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if acct == nil {
		acct = &repository.Account{ID: uuid.NewString(), Name: sampleAccount, Institution: "Sample Bank", AccountType: "checking"}
		if err := s.Accounts.Upsert(ctx, *acct); err != nil {
			return fmt.Errorf("seed account: %w", err)
		}
	}

	known, err := s.Categories.Names(ctx)
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	categorize := func(tx *repository.Transaction, name string) {
		id := database.CategoryID(name)
		if _, ok := known[id]; ok {
			tx.CategoryID = &id
		}
	}

	for i := 0; i < n; i++ {
		tx := repository.Transaction{
			ID:        uuid.NewString(),
			AccountID: acct.ID,
			Date:      now.AddDate(0, 0, -rng.Intn(120)).Truncate(time.Second),
			Status:    "posted",
		}
		if rng.Intn(10) < 2 {
			tx.Status = "pending"
		}
		if rng.Intn(10) == 0 {
			tx.Description = "SALARY ACME"
			tx.AmountCents = 350000 + rng.Int63n(50000)
			categorize(&tx, "Income")
		} else {
			sm := samples[rng.Intn(len(samples))]
			tx.Description = sm.desc
			tx.AmountCents = -(sm.min + rng.Int63n(sm.max-sm.min+1))
			if sm.merchant != "" {
				merchant := sm.merchant
				tx.MerchantName = &merchant
			}
			categorize(&tx, sm.category)
		}
		if err := s.Transactions.Insert(ctx, tx); err != nil {
			return fmt.Errorf("seed transaction %d: %w", i, err)
		}
	}
	return nil
}
