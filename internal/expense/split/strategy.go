package split

import (
	"errors"
	"fmt"

	"github.com/sohail/spendora/internal/money"
)

// Mode identifies how an expense total is divided among participants.
type Mode string

const (
	ModeEqual  Mode = "EQUAL"
	ModeCustom Mode = "CUSTOM"
)

// Participant is a member of the split. Identity is an opaque string key;
// the engine never interprets it.
type Participant struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
}

// Share is one participant's portion of an expense total.
type Share struct {
	Participant Participant `json:"participant"`
	Amount      money.Money `json:"amount"`
}

// Split is the resolved division of an expense total. Shares are ordered
// and include the payer's own share when the payer participates.
type Split struct {
	Mode   Mode    `json:"mode"`
	Shares []Share `json:"shares"`
}

// ShareFor returns the share belonging to the given participant id.
func (s *Split) ShareFor(participantID string) (Share, bool) {
	for _, sh := range s.Shares {
		if sh.Participant.ID == participantID {
			return sh, true
		}
	}
	return Share{}, false
}

// Strategy computes a Split from a total and an ordered participant list.
type Strategy interface {
	// Compute produces a Split whose shares sum exactly to total.
	Compute(total money.Money, participants []Participant) (*Split, error)

	// Mode returns the mode identifier for this strategy.
	Mode() Mode
}

var (
	ErrNoParticipants         = errors.New("at least one participant is required")
	ErrMismatchedContribution = errors.New("one explicit amount is required per participant")
)

// Factory creates split strategies based on the requested mode.
type Factory struct{}

// NewFactory creates a new strategy factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy for the given mode. Explicit amounts are only
// meaningful for ModeCustom; ModeEqual takes none, which keeps the invalid
// combination of equal mode with custom amounts unrepresentable.
func (f *Factory) Create(mode Mode, explicit []money.Money) (Strategy, error) {
	switch mode {
	case ModeEqual:
		return &EqualStrategy{}, nil
	case ModeCustom:
		return &CustomStrategy{amounts: explicit}, nil
	default:
		return nil, fmt.Errorf("unknown split mode: %s", mode)
	}
}

// CreateFromString creates a strategy from a string mode (useful for API requests).
func (f *Factory) CreateFromString(mode string, explicit []money.Money) (Strategy, error) {
	return f.Create(Mode(mode), explicit)
}
