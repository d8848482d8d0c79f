package partition

import (
	stderrors "errors"
	"testing"

	"github.com/go-sif/fedsplit/errors"
	"github.com/stretchr/testify/require"
)

func TestNodeRangeNonEmptyFromTenNodes(t *testing.T) {
	for nodeCount := 10; nodeCount <= 64; nodeCount++ {
		prevEnd := 0
		for label := 0; label < 10; label++ {
			start, end, err := NodeRange(label, nodeCount, RejectEmptyRange)
			require.Nil(t, err)
			require.Less(t, start, end)
			// ranges tile [0, nodeCount) in label order
			require.Equal(t, prevEnd, start)
			prevEnd = end
		}
		require.Equal(t, nodeCount, prevEnd)
	}
}

func TestNodeRangeClamp(t *testing.T) {
	start, end, err := NodeRange(0, 3, ClampEmptyRange)
	require.Nil(t, err)
	require.Equal(t, 0, start)
	require.Equal(t, 1, end)

	_, _, err = NodeRange(0, 3, RejectEmptyRange)
	var rangeErr errors.DegenerateRangeError
	require.True(t, stderrors.As(err, &rangeErr))
	require.Equal(t, 0, rangeErr.Label)
}

func TestEffectiveLimit(t *testing.T) {
	require.Equal(t, 50, (&Config{SampleLimit: AllRecords}).EffectiveLimit(50))
	require.Equal(t, 20, (&Config{SampleLimit: 20}).EffectiveLimit(50))
	require.Equal(t, 50, (&Config{SampleLimit: 80}).EffectiveLimit(50))
}

func TestIsUniformUsesPosition(t *testing.T) {
	conf := &Config{UniformFraction: 0.5}
	// 5 * 0.5 = 2.5, so positions 0, 1 and 2 are uniform
	require.True(t, conf.IsUniform(2, 5))
	require.False(t, conf.IsUniform(3, 5))
	require.False(t, (&Config{}).IsUniform(0, 5))
}

func TestValidateUnknownPolicy(t *testing.T) {
	err := (&Config{NodeCount: 10, RangePolicy: RangePolicy(9)}).Validate()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "RangePolicy")
}

func TestPerRecordSourceIsOrderIndependent(t *testing.T) {
	src := NewPerRecordSource(77)
	forward := make([]int, 100)
	for i := 0; i < 100; i++ {
		forward[i] = src.Intn(i, 13)
		require.GreaterOrEqual(t, forward[i], 0)
		require.Less(t, forward[i], 13)
	}
	for i := 99; i >= 0; i-- {
		require.Equal(t, forward[i], src.Intn(i, 13))
	}
	require.Equal(t, 0, src.Intn(5, 1))
}
