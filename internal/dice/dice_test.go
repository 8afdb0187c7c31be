package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perudohq/perudod/internal/randutil"
)

func TestDealRangeAndLength(t *testing.T) {
	roller := NewRoller(randutil.New(42))

	set := roller.Deal(5, 6)
	require.Len(t, set, 5)
	for _, v := range set {
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 6)
	}
}

func TestRerollPreservesLength(t *testing.T) {
	roller := NewRoller(randutil.New(7))

	for _, n := range []int{1, 3, 5} {
		set := roller.Deal(n, 6)
		rerolled := roller.Reroll(set, 6)
		assert.Len(t, rerolled, n)
		for _, v := range rerolled {
			assert.GreaterOrEqual(t, v, 1)
			assert.LessOrEqual(t, v, 6)
		}
	}
}

func TestRemoveOne(t *testing.T) {
	set := Set{3, 1, 4}

	set, err := set.RemoveOne()
	require.NoError(t, err)
	assert.Len(t, set, 2)

	set, err = set.RemoveOne()
	require.NoError(t, err)
	set, err = set.RemoveOne()
	require.NoError(t, err)
	assert.Empty(t, set)

	// Never goes negative
	set, err = set.RemoveOne()
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Empty(t, set)
}

func TestCountMatching(t *testing.T) {
	tests := []struct {
		name     string
		set      Set
		face     int
		wildcard int
		want     int
	}{
		{"plain match", Set{3, 3, 5, 2}, 3, 0, 2},
		{"no match", Set{4, 5, 6}, 2, 0, 0},
		{"wildcards count toward any face", Set{1, 3, 1, 5}, 3, 1, 3},
		{"wildcard disabled ignores ones", Set{1, 3, 1, 5}, 3, 0, 1},
		{"counting the wildcard face itself", Set{1, 1, 2}, 1, 1, 2},
		{"empty set", Set{}, 4, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.set.CountMatching(tt.face, tt.wildcard))
		})
	}
}
