package titer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromStr(t *testing.T) {
	cases := []struct {
		in   string
		want Titer
	}{
		{"*", DontCare},
		{"40", Regular(40)},
		{"<10", LessThan(10)},
		{">1280", MoreThan(1280)},
		{"~40", Dodgy(40)},
	}
	for _, c := range cases {
		got, err := FromStr(c.in)
		require.NoError(t, err, c.in)
		assert.True(t, c.want.Equal(got), "FromStr(%q) = %v, want %v", c.in, got, c.want)
	}
}

func TestFromStr_Invalid(t *testing.T) {
	for _, in := range []string{"", "-5", "abc", "<", ">>10", "40x", "1.5"} {
		_, err := FromStr(in)
		assert.ErrorIs(t, err, ErrInvalidTiter, in)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, in := range []string{"*", "40", "<10", ">1280", "~40", "0"} {
		parsed, err := FromStr(in)
		require.NoError(t, err)
		assert.Equal(t, in, parsed.String())
	}
}

func TestOrdering(t *testing.T) {
	assert.True(t, Regular(40).Less(Regular(80)))
	assert.False(t, Regular(80).Less(Regular(40)))
	assert.True(t, LessThan(40).Less(Regular(40)), "<40 orders as 39 < 40")
	assert.True(t, Regular(40).Less(MoreThan(40)), "40 < 41 (>40 orders as 41)")
	assert.False(t, DontCare.Less(Regular(40)))
	assert.False(t, Regular(40).Less(DontCare))
}

func TestDontCareEquality(t *testing.T) {
	assert.True(t, DontCare.Equal(DontCare))
	assert.False(t, DontCare.Equal(Regular(0)))
	assert.False(t, Invalid.Equal(DontCare))
}

func TestLoggedRoundTrip(t *testing.T) {
	// integer-power-of-2 ratios round-trip exactly.
	for _, v := range []int{10, 20, 40, 80, 160, 320, 640, 1280} {
		r := Regular(v)
		got := FromLogged(r.Logged())
		assert.True(t, r.Equal(got), "FromLogged(Logged(%d)) = %v", v, got)
	}
}

func TestLoggedWithThresholded(t *testing.T) {
	assert.InDelta(t, math.Log2(40.0/10)-1, LessThan(40).LoggedWithThresholded(), 1e-12)
	assert.InDelta(t, math.Log2(40.0/10)+1, MoreThan(40).LoggedWithThresholded(), 1e-12)
	assert.InDelta(t, math.Log2(40.0/10), Regular(40).LoggedWithThresholded(), 1e-12)
	assert.True(t, math.IsNaN(DontCare.LoggedWithThresholded()))
}

func TestLoggedForColumnBases(t *testing.T) {
	assert.InDelta(t, math.Log2(40.0/10), LessThan(40).LoggedForColumnBases(), 1e-12, "< is treated as regular")
	assert.InDelta(t, math.Log2(40.0/10)+1, MoreThan(40).LoggedForColumnBases(), 1e-12, "> is logged()+1")
	assert.Equal(t, -1.0, Dodgy(40).LoggedForColumnBases())
	assert.Equal(t, -1.0, DontCare.LoggedForColumnBases())
}

func TestMultiplyBy(t *testing.T) {
	assert.True(t, Regular(40).MultiplyBy(2).Equal(Regular(80)))
	assert.True(t, LessThan(40).MultiplyBy(2).Equal(LessThan(80)))
	assert.True(t, DontCare.MultiplyBy(2).Equal(DontCare))
	// rounds to nearest integer.
	assert.True(t, Regular(40).MultiplyBy(1.5).Equal(Regular(60)))
}
