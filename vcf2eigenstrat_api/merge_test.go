package vcf2eigenstrat_api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceReader returns a pull function over ints in the reader convention:
// one element per call, nil when exhausted
func sliceReader(values []int) func() (*int, error) {
	index := 0
	return func() (*int, error) {
		if index >= len(values) {
			return nil, nil
		}
		value := values[index]
		index++
		return &value, nil
	}
}

func intKey(v *int) int { return *v }

type joinedPair struct {
	left  *int
	right *int
}

func runJoin(t *testing.T, left []int, right []int) []joinedPair {
	var pairs []joinedPair
	err := OrderedJoin(
		sliceReader(left),
		sliceReader(right),
		intKey,
		intKey,
		func(l *int, r *int) error {
			pairs = append(pairs, joinedPair{l, r})
			return nil
		},
	)
	require.NoError(t, err)
	return pairs
}

func TestOrderedJoinPairsEveryKey(t *testing.T) {
	pairs := runJoin(t, []int{1, 3, 5, 7}, []int{2, 3, 6, 7, 9})

	// One pair per distinct key of the union, every pair has a side
	assert.Len(t, pairs, 7)
	for _, pair := range pairs {
		assert.True(t, pair.left != nil || pair.right != nil)
	}

	keys := make([]int, len(pairs))
	for i, pair := range pairs {
		if pair.left != nil {
			keys[i] = *pair.left
		} else {
			keys[i] = *pair.right
		}
	}
	assert.Equal(t, []int{1, 2, 3, 5, 6, 7, 9}, keys)

	assert.NotNil(t, pairs[2].left)
	assert.NotNil(t, pairs[2].right)
	assert.Nil(t, pairs[0].right)
	assert.Nil(t, pairs[1].left)
}

func TestOrderedJoinKeysNonDecreasing(t *testing.T) {
	pairs := runJoin(t, []int{1, 4, 5, 9, 12}, []int{2, 4, 8, 9, 20, 30})

	previous := -1
	for _, pair := range pairs {
		key := 0
		if pair.left != nil {
			key = *pair.left
		} else {
			key = *pair.right
		}
		assert.GreaterOrEqual(t, key, previous)
		previous = key
	}
}

func TestOrderedJoinDrainsSurvivingSide(t *testing.T) {
	pairs := runJoin(t, []int{1, 2}, []int{1, 2, 3, 4})
	assert.Len(t, pairs, 4)
	assert.Nil(t, pairs[2].left)
	assert.Nil(t, pairs[3].left)

	pairs = runJoin(t, []int{1, 2, 3}, nil)
	assert.Len(t, pairs, 3)
	for _, pair := range pairs {
		assert.NotNil(t, pair.left)
		assert.Nil(t, pair.right)
	}
}

func TestOrderedJoinEmpty(t *testing.T) {
	assert.Empty(t, runJoin(t, nil, nil))
}

func TestOrderedJoinStopsOnVisitError(t *testing.T) {
	calls := 0
	err := OrderedJoin(
		sliceReader([]int{1, 2, 3}),
		sliceReader(nil),
		intKey,
		intKey,
		func(l *int, r *int) error {
			calls++
			return assert.AnError
		},
	)
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
}
