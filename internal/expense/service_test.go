package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohail/spendora/internal/category"
	"github.com/sohail/spendora/internal/expense/split"
	"github.com/sohail/spendora/internal/money"
)

type fakeStore struct {
	created []*Expense
	byID    map[string]*Expense
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: make(map[string]*Expense)}
}

func (f *fakeStore) Create(ctx context.Context, e *Expense) (*Expense, error) {
	e.ID = "exp-" + string(rune('1'+len(f.created)))
	e.CreatedAt = time.Now()
	f.created = append(f.created, e)
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*Expense, error) {
	return f.byID[id], nil
}

func (f *fakeStore) ListForUser(ctx context.Context, userID string, limit, offset int) ([]*Expense, int, error) {
	return f.created, len(f.created), nil
}

func (f *fakeStore) ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]*Expense, int, error) {
	return f.created, len(f.created), nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return ErrExpenseNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeGroups struct {
	members map[string][]split.Participant
}

func (f *fakeGroups) Participants(ctx context.Context, groupID string) ([]split.Participant, error) {
	return f.members[groupID], nil
}

type fakeUsers struct{}

func (fakeUsers) Participant(ctx context.Context, userID string) (split.Participant, error) {
	return split.Participant{ID: userID, DisplayName: "user-" + userID}, nil
}

type fixedResolver struct {
	label string
	err   error
}

func (f fixedResolver) Resolve(ctx context.Context, description string, amount money.Money) (string, error) {
	return f.label, f.err
}

func strPtr(s string) *string { return &s }

func newTestService(store *fakeStore, resolver category.Resolver) *Service {
	groups := &fakeGroups{members: map[string][]split.Participant{
		"g1": {{ID: "u1"}, {ID: "u2"}, {ID: "u3"}},
		"g2": {},
	}}
	return NewService(store, groups, fakeUsers{}, resolver, split.NewFactory(), 50*time.Millisecond)
}

func TestCreateExpenseEqualSplit(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, category.Disabled{})

	e, err := svc.CreateExpense(context.Background(), "u1", &CreateExpenseRequest{
		GroupID:     strPtr("g1"),
		Description: "dinner",
		Amount:      "10.00",
		Category:    "Food",
	})
	require.NoError(t, err)
	require.Len(t, store.created, 1)

	assert.Equal(t, "u1", e.Payer.ID)
	assert.Equal(t, money.Money(1000), e.Total)
	assert.Equal(t, "Food", e.Category)
	assert.Equal(t, split.ModeEqual, e.SplitMode)

	sp, err := e.Split()
	require.NoError(t, err)
	require.Len(t, sp.Shares, 3)
	assert.Equal(t, money.Money(334), sp.Shares[0].Amount)
	assert.Equal(t, money.Money(333), sp.Shares[1].Amount)
	assert.Equal(t, money.Money(333), sp.Shares[2].Amount)
}

func TestCreateExpenseCustomSplit(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, category.Disabled{})

	e, err := svc.CreateExpense(context.Background(), "u1", &CreateExpenseRequest{
		GroupID:     strPtr("g1"),
		Description: "groceries",
		Amount:      "10.00",
		Category:    "Food",
		SplitMode:   "CUSTOM",
		Participants: []*ParticipantInput{
			{UserID: "u1", Amount: strPtr("4.00")},
			{UserID: "u2", Amount: strPtr("6.00")},
		},
	})
	require.NoError(t, err)

	sp, err := e.Split()
	require.NoError(t, err)
	assert.Equal(t, split.ModeCustom, sp.Mode)
	assert.Equal(t, money.Money(400), sp.Shares[0].Amount)
	assert.Equal(t, money.Money(600), sp.Shares[1].Amount)
}

func TestCreateExpenseRejectedSplitBlocksCreation(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, category.Disabled{})

	_, err := svc.CreateExpense(context.Background(), "u1", &CreateExpenseRequest{
		GroupID:     strPtr("g1"),
		Description: "groceries",
		Amount:      "10.00",
		SplitMode:   "CUSTOM",
		Participants: []*ParticipantInput{
			{UserID: "u1", Amount: strPtr("4.00")},
			{UserID: "u2", Amount: strPtr("5.00")},
		},
	})
	assert.ErrorIs(t, err, split.ErrSumMismatch)
	assert.Empty(t, store.created, "nothing may be persisted when the split is rejected")
}

func TestCreateExpenseValidation(t *testing.T) {
	tests := []struct {
		name    string
		payerID string
		req     *CreateExpenseRequest
		wantErr error
	}{
		{
			name:    "unparseable amount",
			payerID: "u1",
			req:     &CreateExpenseRequest{GroupID: strPtr("g1"), Description: "x", Amount: "ten"},
			wantErr: money.ErrInvalidAmount,
		},
		{
			name:    "zero amount",
			payerID: "u1",
			req:     &CreateExpenseRequest{GroupID: strPtr("g1"), Description: "x", Amount: "0"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			payerID: "u1",
			req:     &CreateExpenseRequest{GroupID: strPtr("g1"), Description: "x", Amount: "-5.00"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "personal expense with split mode",
			payerID: "u1",
			req:     &CreateExpenseRequest{Description: "x", Amount: "5.00", SplitMode: "EQUAL"},
			wantErr: ErrPersonalSplit,
		},
		{
			name:    "custom split without amounts",
			payerID: "u1",
			req: &CreateExpenseRequest{
				GroupID: strPtr("g1"), Description: "x", Amount: "5.00", SplitMode: "CUSTOM",
				Participants: []*ParticipantInput{{UserID: "u1"}, {UserID: "u2"}},
			},
			wantErr: split.ErrMismatchedContribution,
		},
		{
			name:    "custom split without participants",
			payerID: "u1",
			req:     &CreateExpenseRequest{GroupID: strPtr("g1"), Description: "x", Amount: "5.00", SplitMode: "CUSTOM"},
			wantErr: split.ErrMismatchedContribution,
		},
		{
			name:    "equal split in an empty group",
			payerID: "u1",
			req:     &CreateExpenseRequest{GroupID: strPtr("g2"), Description: "x", Amount: "5.00"},
			wantErr: ErrEmptyGroup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			svc := newTestService(store, category.Disabled{})

			_, err := svc.CreateExpense(context.Background(), tt.payerID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.created)
		})
	}
}

func TestCreateExpensePersonal(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, category.Disabled{})

	e, err := svc.CreateExpense(context.Background(), "u1", &CreateExpenseRequest{
		Description: "coffee",
		Amount:      "3.50",
		Category:    "Food",
	})
	require.NoError(t, err)
	assert.Nil(t, e.GroupID)
	assert.False(t, e.HasSplit())
}

func TestCreateExpenseCategoryResolution(t *testing.T) {
	t.Run("user category wins over classifier", func(t *testing.T) {
		svc := newTestService(newFakeStore(), fixedResolver{label: "Transport"})
		e, err := svc.CreateExpense(context.Background(), "u1", &CreateExpenseRequest{
			Description: "taxi", Amount: "9.00", Category: "Travel",
		})
		require.NoError(t, err)
		assert.Equal(t, "Travel", e.Category)
	})

	t.Run("classifier fills an empty category", func(t *testing.T) {
		svc := newTestService(newFakeStore(), fixedResolver{label: "Transport"})
		e, err := svc.CreateExpense(context.Background(), "u1", &CreateExpenseRequest{
			Description: "taxi", Amount: "9.00",
		})
		require.NoError(t, err)
		assert.Equal(t, "Transport", e.Category)
	})

	t.Run("classifier failure falls back silently", func(t *testing.T) {
		svc := newTestService(newFakeStore(), fixedResolver{err: category.ErrUnavailable})
		e, err := svc.CreateExpense(context.Background(), "u1", &CreateExpenseRequest{
			Description: "taxi", Amount: "9.00",
		})
		require.NoError(t, err)
		assert.Equal(t, DefaultCategory, e.Category)
	})
}

func TestDeleteExpense(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, category.Disabled{})

	e, err := svc.CreateExpense(context.Background(), "u1", &CreateExpenseRequest{
		Description: "coffee", Amount: "3.50", Category: "Food",
	})
	require.NoError(t, err)

	t.Run("only the payer may delete", func(t *testing.T) {
		err := svc.DeleteExpense(context.Background(), e.ID, "u2")
		assert.ErrorIs(t, err, ErrNotPayer)
	})

	t.Run("payer deletes", func(t *testing.T) {
		require.NoError(t, svc.DeleteExpense(context.Background(), e.ID, "u1"))
		assert.Equal(t, []string{e.ID}, store.deleted)
	})

	t.Run("missing expense", func(t *testing.T) {
		err := svc.DeleteExpense(context.Background(), "nope", "u1")
		assert.ErrorIs(t, err, ErrExpenseNotFound)
	})
}

func TestToResponseOmitsUnparseableShares(t *testing.T) {
	e := &Expense{
		ID:        "e1",
		Payer:     split.Participant{ID: "u1"},
		Total:     money.FromUnits(1000),
		SplitMode: split.ModeEqual,
		SplitData: "{broken",
		CreatedAt: time.Now(),
	}

	resp := e.ToResponse()
	assert.Nil(t, resp.Shares)
	assert.Equal(t, money.Money(1000), resp.Amount)
}

func TestCreateExpenseUnknownMode(t *testing.T) {
	svc := newTestService(newFakeStore(), category.Disabled{})
	_, err := svc.CreateExpense(context.Background(), "u1", &CreateExpenseRequest{
		GroupID: strPtr("g1"), Description: "x", Amount: "5.00", SplitMode: "PERCENTAGE",
		Participants: []*ParticipantInput{{UserID: "u1"}},
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, split.ErrMismatchedContribution))
}
