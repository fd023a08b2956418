package split

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sohail/spendora/internal/money"
)

// ErrUnparseable reports persisted split data that cannot be decoded.
// Consumers treat it as "no split data" rather than failing the whole
// operation: the balance aggregator skips the owed adjustments for such a
// record and counts it, and the API omits the share breakdown.
var ErrUnparseable = errors.New("split data is not parseable")

// Wire representation of a persisted split. Amounts travel as raw
// minor-unit integers so the encoding round-trips without loss.
type wireShare struct {
	Participant Participant `json:"participant"`
	Amount      int64       `json:"amount"`
}

type wireSplit struct {
	Mode   Mode        `json:"mode"`
	Shares []wireShare `json:"shares"`
}

// Encode serializes a split to its persisted textual form.
func Encode(s *Split) (string, error) {
	w := wireSplit{Mode: s.Mode, Shares: make([]wireShare, len(s.Shares))}
	for i, sh := range s.Shares {
		w.Shares[i] = wireShare{Participant: sh.Participant, Amount: sh.Amount.Units()}
	}
	data, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("encode split: %w", err)
	}
	return string(data), nil
}

// Decode parses the persisted textual form back into a Split. Any
// structural problem fails closed with ErrUnparseable.
func Decode(data string) (*Split, error) {
	var w wireSplit
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	if w.Mode != ModeEqual && w.Mode != ModeCustom {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrUnparseable, w.Mode)
	}
	if len(w.Shares) == 0 {
		return nil, fmt.Errorf("%w: no shares", ErrUnparseable)
	}

	s := &Split{Mode: w.Mode, Shares: make([]Share, len(w.Shares))}
	for i, sh := range w.Shares {
		if sh.Participant.ID == "" {
			return nil, fmt.Errorf("%w: share %d has no participant id", ErrUnparseable, i)
		}
		s.Shares[i] = Share{Participant: sh.Participant, Amount: money.FromUnits(sh.Amount)}
	}
	return s, nil
}
