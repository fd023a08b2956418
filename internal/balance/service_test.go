package balance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohail/spendora/internal/expense"
	"github.com/sohail/spendora/internal/expense/split"
	"github.com/sohail/spendora/internal/money"
)

type fakeStore struct {
	byUser  map[string][]*expense.Expense
	byGroup map[string][]*expense.Expense
	err     error
}

func (f *fakeStore) AllForUser(ctx context.Context, userID string) ([]*expense.Expense, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

func (f *fakeStore) AllByGroup(ctx context.Context, groupID string) ([]*expense.Expense, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byGroup[groupID], nil
}

func encoded(t *testing.T, mode split.Mode, shares []split.Share) string {
	t.Helper()
	data, err := split.Encode(&split.Split{Mode: mode, Shares: shares})
	require.NoError(t, err)
	return data
}

func TestServiceForUser(t *testing.T) {
	gid := "g1"
	store := &fakeStore{byUser: map[string][]*expense.Expense{
		"u1": {
			{
				ID:      "e1",
				GroupID: &gid,
				Payer:   split.Participant{ID: "u1"},
				Total:   money.FromUnits(1200),
				SplitData: encoded(t, split.ModeEqual, []split.Share{
					{Participant: split.Participant{ID: "u1"}, Amount: 400},
					{Participant: split.Participant{ID: "u2"}, Amount: 400},
					{Participant: split.Participant{ID: "u3"}, Amount: 400},
				}),
			},
		},
	}}

	svc := NewService(store)
	sum, err := svc.ForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, money.Money(1200), sum.TotalPaid)
	assert.Equal(t, money.Money(800), sum.OwedToUser)
}

func TestServiceForGroup(t *testing.T) {
	gid := "g1"
	store := &fakeStore{byGroup: map[string][]*expense.Expense{
		"g1": {
			{
				ID:      "e1",
				GroupID: &gid,
				Payer:   split.Participant{ID: "u2"},
				Total:   money.FromUnits(1000),
				SplitData: encoded(t, split.ModeCustom, []split.Share{
					{Participant: split.Participant{ID: "u1"}, Amount: 250},
					{Participant: split.Participant{ID: "u2"}, Amount: 750},
				}),
			},
		},
	}}

	svc := NewService(store)
	sum, err := svc.ForGroup(context.Background(), "u1", "g1")
	require.NoError(t, err)
	assert.Equal(t, money.Money(0), sum.TotalPaid)
	assert.Equal(t, money.Money(250), sum.OwedByUser)
}

func TestServiceStoreError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(&fakeStore{err: boom})

	_, err := svc.ForUser(context.Background(), "u1")
	assert.ErrorIs(t, err, boom)

	_, err = svc.ForGroup(context.Background(), "u1", "g1")
	assert.ErrorIs(t, err, boom)
}
