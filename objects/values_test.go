package objects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumberStringFormatting(t *testing.T) {
	tests := []struct {
		input Number
		want  string
	}{
		{Number(0), "0"},
		{Number(math.Copysign(0, -1)), "-0"},
		{Number(3), "3"},
		{Number(-3), "-3"},
		{Number(1.5), "1.5"},
		{Number(100), "100"},
		{Number(1e20), "100000000000000000000"},
		{Number(0.5), "0.5"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.input.String(), "input %v", float64(tt.input))
	}
}

func TestIsTruthy(t *testing.T) {
	require.False(t, IsTruthy(Nil{}))
	require.False(t, IsTruthy(Bool(false)))
	require.True(t, IsTruthy(Bool(true)))
	require.True(t, IsTruthy(Number(0)))
	require.True(t, IsTruthy(String("")))
}

func TestEqualsAcrossKinds(t *testing.T) {
	require.True(t, Equals(Nil{}, Nil{}))
	require.False(t, Equals(Nil{}, Bool(false)))
	require.True(t, Equals(Number(1), Number(1)))
	require.False(t, Equals(Number(1), String("1")))
	require.True(t, Equals(String("a"), String("a")))
}

func TestEqualsNaNIsNeverEqualToItself(t *testing.T) {
	nan := Number(math.NaN())
	require.False(t, Equals(nan, nan))
}
