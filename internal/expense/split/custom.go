package split

import (
	"github.com/sohail/spendora/internal/money"
)

// CustomStrategy assigns caller-supplied contributions verbatim, one per
// participant in order. It performs no redistribution; whether the amounts
// actually add up to the total is the validator's call, so a mismatched
// manual split is reported to the caller instead of being patched up here.
type CustomStrategy struct {
	amounts []money.Money
}

// Mode returns the split mode identifier.
func (s *CustomStrategy) Mode() Mode {
	return ModeCustom
}

// Compute pairs each participant with their explicit contribution.
func (s *CustomStrategy) Compute(total money.Money, participants []Participant) (*Split, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if len(s.amounts) != len(participants) {
		return nil, ErrMismatchedContribution
	}

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{Participant: p, Amount: s.amounts[i]}
	}

	return &Split{Mode: ModeCustom, Shares: shares}, nil
}
