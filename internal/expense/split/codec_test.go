package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohail/spendora/internal/money"
)

func TestCodecRoundTrip(t *testing.T) {
	original := &Split{
		Mode: ModeCustom,
		Shares: []Share{
			{Participant: Participant{ID: "a", DisplayName: "Alice"}, Amount: money.FromUnits(400)},
			{Participant: Participant{ID: "b", DisplayName: "Bob"}, Amount: money.FromUnits(600)},
		},
	}

	encoded, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeFailsClosed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "not-json"},
		{name: "empty string", data: ""},
		{name: "wrong shape", data: `{"member":"a","amount":100}`},
		{name: "unknown mode", data: `{"mode":"HALVES","shares":[{"participant":{"id":"a"},"amount":100}]}`},
		{name: "no shares", data: `{"mode":"EQUAL","shares":[]}`},
		{name: "share without participant id", data: `{"mode":"EQUAL","shares":[{"participant":{"id":""},"amount":100}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			assert.ErrorIs(t, err, ErrUnparseable)
		})
	}
}
