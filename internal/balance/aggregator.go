// Package balance folds expense histories into per-user balance summaries.
//
// Aggregate is a pure function: no I/O, no shared state, and the same
// result for any permutation of its input. Summaries are derived on every
// request rather than incrementally maintained, so callers may refetch
// expense pages in any order and simply aggregate again.
package balance

import (
	"github.com/sohail/spendora/internal/expense"
	"github.com/sohail/spendora/internal/money"
)

// Summary is the viewing user's net monetary position over a set of
// expense records. UnparsedRecords counts records whose persisted split
// could not be decoded; those records still count toward TotalPaid when
// the user is the payer, but never adjust the owed components, so a parse
// failure can only under-report adjustments, never shrink amounts paid.
type Summary struct {
	TotalPaid       money.Money `json:"total_paid"`
	OwedToUser      money.Money `json:"owed_to_user"`
	OwedByUser      money.Money `json:"owed_by_user"`
	UnparsedRecords int         `json:"unparsed_records"`
}

// Net is the signed position: positive means the user is owed money.
func (s Summary) Net() money.Money {
	return s.OwedToUser.Sub(s.OwedByUser)
}

// Aggregate computes the balance summary for userID over the given
// records in a single pass.
//
// For each record:
//   - user is the payer: the total counts toward TotalPaid. With a split,
//     the total minus the payer's own share is owed back to the user; a
//     payer with no share entry delegated the whole expense, so the full
//     total is owed back.
//   - someone else paid and the split names the user: that share is owed
//     by the user.
//   - personal records (no split) affect TotalPaid only.
func Aggregate(userID string, records []*expense.Expense) Summary {
	var sum Summary

	for _, rec := range records {
		if rec.Payer.ID == userID {
			sum.TotalPaid = sum.TotalPaid.Add(rec.Total)
			if !rec.HasSplit() {
				continue
			}
			sp, err := rec.Split()
			if err != nil {
				sum.UnparsedRecords++
				continue
			}
			if own, ok := sp.ShareFor(userID); ok {
				sum.OwedToUser = sum.OwedToUser.Add(rec.Total.Sub(own.Amount))
			} else {
				// Fully delegated payment: the payer keeps no share.
				sum.OwedToUser = sum.OwedToUser.Add(rec.Total)
			}
			continue
		}

		if !rec.HasSplit() {
			continue
		}
		sp, err := rec.Split()
		if err != nil {
			sum.UnparsedRecords++
			continue
		}
		if share, ok := sp.ShareFor(userID); ok {
			sum.OwedByUser = sum.OwedByUser.Add(share.Amount)
		}
	}

	return sum
}
