package split

import (
	"errors"
	"fmt"

	"github.com/sohail/spendora/internal/money"
)

// Rejection reasons reported by Validate. They are surfaced to the caller
// verbatim so the user can fix their input; a bad split is never corrected
// silently.
var (
	ErrSumMismatch          = errors.New("shares do not sum to the expense total")
	ErrNegativeShare        = errors.New("share amount is negative")
	ErrDuplicateParticipant = errors.New("participant appears more than once")
)

// Validate checks that a proposed split is internally consistent with the
// expense total. Rules are checked in order and the first failure wins:
//
//  1. shares sum to the total exactly (integer minor units, zero tolerance)
//  2. every share amount is non-negative
//  3. no participant id repeats
func Validate(total money.Money, s *Split) error {
	var sum money.Money
	for _, sh := range s.Shares {
		sum = sum.Add(sh.Amount)
	}
	if sum != total {
		return fmt.Errorf("%w: shares sum to %s, total is %s", ErrSumMismatch, sum, total)
	}

	for _, sh := range s.Shares {
		if sh.Amount.IsNegative() {
			return fmt.Errorf("%w: participant %s has share %s", ErrNegativeShare, sh.Participant.ID, sh.Amount)
		}
	}

	seen := make(map[string]bool, len(s.Shares))
	for _, sh := range s.Shares {
		if seen[sh.Participant.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, sh.Participant.ID)
		}
		seen[sh.Participant.ID] = true
	}

	return nil
}
