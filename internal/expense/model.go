package expense

import (
	"time"

	"github.com/sohail/spendora/internal/expense/split"
	"github.com/sohail/spendora/internal/money"
)

// Expense is the unit of accounting. It is created once, atomically, with
// its split fully resolved and validated, and never mutated afterwards;
// corrections are modeled as delete-and-recreate so the balance
// aggregation stays simple and auditable.
type Expense struct {
	ID          string            `json:"id"`
	GroupID     *string           `json:"group_id,omitempty"`
	Payer       split.Participant `json:"payer"`
	Description string            `json:"description"`
	Total       money.Money       `json:"total"`
	Category    string            `json:"category"`
	SplitMode   split.Mode        `json:"split_mode,omitempty"`
	SplitData   string            `json:"-"`
	CreatedAt   time.Time         `json:"created_at"`
}

// HasSplit reports whether the expense carries split data. Personal
// expenses (no group) never do.
func (e *Expense) HasSplit() bool {
	return e.SplitData != ""
}

// Split decodes the persisted share breakdown. A malformed encoding
// returns split.ErrUnparseable; callers treat that as "no split data".
func (e *Expense) Split() (*split.Split, error) {
	return split.Decode(e.SplitData)
}
