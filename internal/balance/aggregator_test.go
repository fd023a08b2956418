package balance

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohail/spendora/internal/expense"
	"github.com/sohail/spendora/internal/expense/split"
	"github.com/sohail/spendora/internal/money"
)

// record builds an expense whose split is encoded the way the repository
// stores it. An empty share list means a personal expense with no split.
func record(t *testing.T, payerID string, total int64, mode split.Mode, shareAmounts map[string]int64, order []string) *expense.Expense {
	t.Helper()

	e := &expense.Expense{
		ID:    payerID + "-exp",
		Payer: split.Participant{ID: payerID},
		Total: money.FromUnits(total),
	}
	if len(shareAmounts) == 0 {
		return e
	}

	s := &split.Split{Mode: mode}
	for _, id := range order {
		s.Shares = append(s.Shares, split.Share{
			Participant: split.Participant{ID: id},
			Amount:      money.FromUnits(shareAmounts[id]),
		})
	}
	data, err := split.Encode(s)
	require.NoError(t, err)
	e.SplitMode = mode
	e.SplitData = data
	return e
}

func malformedRecord(payerID string, total int64) *expense.Expense {
	return &expense.Expense{
		ID:        payerID + "-bad",
		Payer:     split.Participant{ID: payerID},
		Total:     money.FromUnits(total),
		SplitMode: split.ModeEqual,
		SplitData: `{"member":"x","amount":`,
	}
}

func TestAggregatePayerWithOwnShare(t *testing.T) {
	// u1 pays 1200 split equally three ways. Their own 400 stays theirs;
	// the other 800 is owed back.
	recs := []*expense.Expense{
		record(t, "u1", 1200, split.ModeEqual,
			map[string]int64{"u1": 400, "u2": 400, "u3": 400},
			[]string{"u1", "u2", "u3"}),
	}

	sum := Aggregate("u1", recs)
	assert.Equal(t, money.Money(1200), sum.TotalPaid)
	assert.Equal(t, money.Money(800), sum.OwedToUser)
	assert.Equal(t, money.Money(0), sum.OwedByUser)
	assert.Equal(t, 0, sum.UnparsedRecords)
	assert.Equal(t, money.Money(800), sum.Net())
}

func TestAggregateDelegatedPayment(t *testing.T) {
	// u1 pays but holds no share, so the whole total is owed back.
	recs := []*expense.Expense{
		record(t, "u1", 1000, split.ModeCustom,
			map[string]int64{"u2": 600, "u3": 400},
			[]string{"u2", "u3"}),
	}

	sum := Aggregate("u1", recs)
	assert.Equal(t, money.Money(1000), sum.TotalPaid)
	assert.Equal(t, money.Money(1000), sum.OwedToUser)
}

func TestAggregateNonPayerShare(t *testing.T) {
	recs := []*expense.Expense{
		record(t, "u1", 1000, split.ModeCustom,
			map[string]int64{"u1": 400, "u2": 600},
			[]string{"u1", "u2"}),
	}

	sum := Aggregate("u2", recs)
	assert.Equal(t, money.Money(0), sum.TotalPaid)
	assert.Equal(t, money.Money(0), sum.OwedToUser)
	assert.Equal(t, money.Money(600), sum.OwedByUser)
	assert.Equal(t, money.Money(-600), sum.Net())
}

func TestAggregateUnparsedRecords(t *testing.T) {
	t.Run("payer side keeps the paid total", func(t *testing.T) {
		sum := Aggregate("u1", []*expense.Expense{malformedRecord("u1", 1000)})
		assert.Equal(t, money.Money(1000), sum.TotalPaid)
		assert.Equal(t, money.Money(0), sum.OwedToUser)
		assert.Equal(t, 1, sum.UnparsedRecords)
	})

	t.Run("non-payer side adds no debt", func(t *testing.T) {
		sum := Aggregate("u2", []*expense.Expense{malformedRecord("u1", 1000)})
		assert.Equal(t, money.Money(0), sum.TotalPaid)
		assert.Equal(t, money.Money(0), sum.OwedByUser)
		assert.Equal(t, 1, sum.UnparsedRecords)
	})
}

func TestAggregatePersonalExpense(t *testing.T) {
	recs := []*expense.Expense{
		record(t, "u1", 2500, "", nil, nil),
	}

	sum := Aggregate("u1", recs)
	assert.Equal(t, money.Money(2500), sum.TotalPaid)
	assert.Equal(t, money.Money(0), sum.OwedToUser)
	assert.Equal(t, money.Money(0), sum.OwedByUser)

	// A stranger's personal expense is invisible.
	assert.Equal(t, Summary{}, Aggregate("u2", recs))
}

func TestAggregateOrderIndependentAndIdempotent(t *testing.T) {
	recs := []*expense.Expense{
		record(t, "u1", 1200, split.ModeEqual,
			map[string]int64{"u1": 400, "u2": 400, "u3": 400},
			[]string{"u1", "u2", "u3"}),
		record(t, "u2", 900, split.ModeEqual,
			map[string]int64{"u1": 300, "u2": 300, "u3": 300},
			[]string{"u1", "u2", "u3"}),
		record(t, "u3", 1000, split.ModeCustom,
			map[string]int64{"u1": 250, "u3": 750},
			[]string{"u1", "u3"}),
		malformedRecord("u2", 500),
		record(t, "u1", 2500, "", nil, nil),
	}

	want := Aggregate("u1", recs)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]*expense.Expense, len(recs))
		copy(shuffled, recs)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, Aggregate("u1", shuffled))
	}

	// Re-running over the same snapshot never drifts.
	assert.Equal(t, want, Aggregate("u1", recs))
	assert.Equal(t, want, Aggregate("u1", recs))
}

func TestAggregateEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Aggregate("u1", nil))
}
