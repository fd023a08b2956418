package split

import (
	"github.com/sohail/spendora/internal/money"
)

// EqualStrategy divides the total evenly among all participants.
//
// The division is done in integer minor units: every participant gets the
// integer quotient, and the remainder is handed out one unit at a time to
// the first participants in the given order. The shares therefore sum to
// the total exactly for any total and any participant count, which is the
// property a per-share floating-point division cannot guarantee.
type EqualStrategy struct{}

// Mode returns the split mode identifier.
func (s *EqualStrategy) Mode() Mode {
	return ModeEqual
}

// Compute divides the total evenly, remainder first.
func (s *EqualStrategy) Compute(total money.Money, participants []Participant) (*Split, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	amounts, err := total.Allocate(len(participants))
	if err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{Participant: p, Amount: amounts[i]}
	}

	return &Split{Mode: ModeEqual, Shares: shares}, nil
}
