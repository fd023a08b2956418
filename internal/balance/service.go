package balance

import (
	"context"

	"github.com/sohail/spendora/internal/expense"
)

// Store is the slice of the expense store the aggregator consumes: full
// history snapshots per scope. The engine itself performs no I/O; it folds
// whatever the store returned.
type Store interface {
	AllForUser(ctx context.Context, userID string) ([]*expense.Expense, error)
	AllByGroup(ctx context.Context, groupID string) ([]*expense.Expense, error)
}

// Service computes balance summaries from the expense history.
type Service struct {
	store Store
}

// NewService creates a new balance service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ForUser aggregates the user's entire expense history.
func (s *Service) ForUser(ctx context.Context, userID string) (Summary, error) {
	records, err := s.store.AllForUser(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Aggregate(userID, records), nil
}

// ForGroup aggregates a single group's history from the user's viewpoint.
func (s *Service) ForGroup(ctx context.Context, userID, groupID string) (Summary, error) {
	records, err := s.store.AllByGroup(ctx, groupID)
	if err != nil {
		return Summary{}, err
	}
	return Aggregate(userID, records), nil
}
