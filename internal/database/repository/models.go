package repository

import "time"

// Account represents an account row.
type Account struct {
	ID          string
	Name        string
	Institution string
	AccountType string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Category represents a category row.
type Category struct {
	ID        string
	ParentID  *string
	Name      string
	SortOrder int
}

// Transaction represents a transaction row. It is the item type of the feed
// and search lists, so it also travels through the snapshot cache.
type Transaction struct {
	ID           string
	AccountID    string
	Date         time.Time
	AmountCents  int64
	Description  string
	MerchantName *string
	CategoryID   *string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity keys a transaction across reloads.
func (t Transaction) Identity() string { return t.ID }

// Label prefers the cleaned merchant name over the raw description.
func (t Transaction) Label() string {
	if t.MerchantName != nil && *t.MerchantName != "" {
		return *t.MerchantName
	}
	return t.Description
}

// Snapshot is one cached list.
type Snapshot struct {
	Key       string
	Payload   []byte
	ItemCount int
	StoredAt  time.Time
}
