package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceRange(t *testing.T) {
	cases := []struct {
		in       string
		wantLo   float64
		wantHi   float64
		wantNils bool
	}{
		{"25-30", 25, 30, false},
		{"$25-30", 25, 30, false},
		{" 12-16 ", 12, 16, false},
		{"25", 25, 25, false},
		{"", 0, 0, true},
		{"cheap", 0, 0, true},
	}

	for _, tc := range cases {
		lo, hi := ParsePriceRange(tc.in)
		if tc.wantNils {
			assert.Nil(t, lo, "input %q", tc.in)
			assert.Nil(t, hi, "input %q", tc.in)
			continue
		}
		require.NotNil(t, lo, "input %q", tc.in)
		require.NotNil(t, hi, "input %q", tc.in)
		assert.Equal(t, tc.wantLo, *lo)
		assert.Equal(t, tc.wantHi, *hi)
	}
}

func TestApplyPriceBounds(t *testing.T) {
	pr := "15-20"
	c := Cigar{PriceRange: &pr}
	c.ApplyPriceBounds()
	require.NotNil(t, c.PriceMin)
	require.NotNil(t, c.PriceMax)
	assert.Equal(t, 15.0, *c.PriceMin)
	assert.Equal(t, 20.0, *c.PriceMax)

	c.PriceRange = nil
	c.ApplyPriceBounds()
	assert.Nil(t, c.PriceMin)
	assert.Nil(t, c.PriceMax)
}
