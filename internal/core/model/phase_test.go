package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessorCycle(t *testing.T) {
	phase := PhasePrep
	var visited []Phase
	for i := 0; i < 7; i++ {
		phase = phase.Successor()
		visited = append(visited, phase)
	}
	assert.Equal(t, []Phase{
		PhaseRound, PhaseRest, PhaseRound, PhaseRest, PhaseRound, PhaseRest, PhaseRound,
	}, visited)
}

func TestCatalogEntries(t *testing.T) {
	cases := []struct {
		phase Phase
		label string
		key   string
		def   time.Duration
		step  time.Duration
		max   time.Duration
		next  Phase
	}{
		{PhasePrep, "Prepare", "PREP_TIME", 30 * time.Second, 15 * time.Second, 120 * time.Second, PhaseRound},
		{PhaseRound, "Round", "ROUND_TIME", 120 * time.Second, 30 * time.Second, 300 * time.Second, PhaseRest},
		{PhaseRest, "Rest", "REST_TIME", 60 * time.Second, 30 * time.Second, 300 * time.Second, PhaseRound},
	}
	for _, tc := range cases {
		t.Run(tc.phase.String(), func(t *testing.T) {
			assert.True(t, tc.phase.Valid())
			assert.Equal(t, tc.label, tc.phase.Label())
			assert.Equal(t, tc.key, tc.phase.ConfigKey())
			assert.Equal(t, tc.def, tc.phase.DefaultDuration())
			assert.Equal(t, tc.step, tc.phase.Step())
			assert.Equal(t, tc.max, tc.phase.MaxDuration())
			assert.Equal(t, tc.next, tc.phase.Successor())
		})
	}
}

func TestParsePhase(t *testing.T) {
	phase, err := ParsePhase(" Round ")
	require.NoError(t, err)
	assert.Equal(t, PhaseRound, phase)

	_, err = ParsePhase("cooldown")
	require.ErrorIs(t, err, ErrUnknownPhase)
	assert.False(t, Phase("cooldown").Valid())
}
