package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohail/spendora/internal/money"
)

func participants(ids ...string) []Participant {
	ps := make([]Participant, len(ids))
	for i, id := range ids {
		ps[i] = Participant{ID: id}
	}
	return ps
}

func TestEqualStrategy(t *testing.T) {
	tests := []struct {
		name         string
		total        money.Money
		participants []Participant
		want         []money.Money
		wantErr      error
	}{
		{
			name:         "uneven remainder to first participants",
			total:        1000,
			participants: participants("a", "b", "c"),
			want:         []money.Money{334, 333, 333},
		},
		{
			name:         "even division",
			total:        900,
			participants: participants("a", "b", "c"),
			want:         []money.Money{300, 300, 300},
		},
		{
			name:         "single participant",
			total:        500,
			participants: participants("a"),
			want:         []money.Money{500},
		},
		{
			name:         "no participants",
			total:        500,
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &EqualStrategy{}
			got, err := s.Compute(tt.total, tt.participants)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ModeEqual, got.Mode)
			require.Len(t, got.Shares, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, tt.participants[i].ID, got.Shares[i].Participant.ID)
				assert.Equal(t, want, got.Shares[i].Amount)
			}
		})
	}
}

func TestCustomStrategy(t *testing.T) {
	t.Run("amounts taken verbatim", func(t *testing.T) {
		s := &CustomStrategy{amounts: []money.Money{400, 600}}
		got, err := s.Compute(1000, participants("a", "b"))
		require.NoError(t, err)
		assert.Equal(t, ModeCustom, got.Mode)
		assert.Equal(t, money.Money(400), got.Shares[0].Amount)
		assert.Equal(t, money.Money(600), got.Shares[1].Amount)
	})

	t.Run("amount count must match participant count", func(t *testing.T) {
		s := &CustomStrategy{amounts: []money.Money{400}}
		_, err := s.Compute(1000, participants("a", "b"))
		assert.ErrorIs(t, err, ErrMismatchedContribution)
	})

	t.Run("no participants", func(t *testing.T) {
		s := &CustomStrategy{}
		_, err := s.Compute(1000, nil)
		assert.ErrorIs(t, err, ErrNoParticipants)
	})
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	equal, err := f.Create(ModeEqual, nil)
	require.NoError(t, err)
	assert.Equal(t, ModeEqual, equal.Mode())

	custom, err := f.CreateFromString("CUSTOM", []money.Money{100, 200})
	require.NoError(t, err)
	assert.Equal(t, ModeCustom, custom.Mode())

	_, err = f.Create(Mode("PERCENTAGE"), nil)
	assert.Error(t, err)
}

func TestShareFor(t *testing.T) {
	s := &Split{
		Mode: ModeCustom,
		Shares: []Share{
			{Participant: Participant{ID: "a"}, Amount: 400},
			{Participant: Participant{ID: "b"}, Amount: 600},
		},
	}

	share, ok := s.ShareFor("b")
	require.True(t, ok)
	assert.Equal(t, money.Money(600), share.Amount)

	_, ok = s.ShareFor("missing")
	assert.False(t, ok)
}
