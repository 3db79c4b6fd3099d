package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sboxeval "github.com/themarkrogers/ai-s-box"
	"github.com/themarkrogers/ai-s-box/utils"
)

func TestCheck_Consistent(t *testing.T) {
	sbox := sboxeval.SBox{3, 0, 2, 1}
	c, err := Check(sbox, 4, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, 4, c.DomainSize)
	assert.Equal(t, 4, c.ExpectedDomainSize)
	assert.Equal(t, 4, c.RangeSize)
	assert.Equal(t, 3, c.MaxOutputValue)
	assert.True(t, c.DomainConsistent)
	assert.True(t, c.RangeConsistent)
	assert.True(t, c.Bijective)
	assert.True(t, c.Applicable())
}

func TestCheck_UndersizedDomain(t *testing.T) {
	sbox := make(sboxeval.SBox, 10)
	c, err := Check(sbox, 10, 4, 4)
	require.NoError(t, err)

	assert.False(t, c.DomainConsistent)
	assert.True(t, c.RangeConsistent)
	assert.False(t, c.Applicable())
	assert.Equal(t, 10, c.DomainSize)
	assert.Equal(t, 16, c.ExpectedDomainSize)
}

func TestCheck_RangeBoundary(t *testing.T) {
	// 15 fits in 4 bits, 16 does not.
	c, err := Check(sboxeval.SBox{0, 15}, 2, 1, 4)
	require.NoError(t, err)
	assert.True(t, c.RangeConsistent)

	c, err = Check(sboxeval.SBox{0, 16}, 2, 1, 4)
	require.NoError(t, err)
	assert.False(t, c.RangeConsistent)
	assert.Equal(t, 16, c.MaxOutputValue)
}

func TestCheck_Empty(t *testing.T) {
	c, err := Check(sboxeval.SBox{}, 0, 0, 0)
	require.NoError(t, err)

	// 2^0 = 1, so an empty table never matches.
	assert.False(t, c.DomainConsistent)
	assert.True(t, c.RangeConsistent)
	assert.Equal(t, 0, c.MaxOutputValue)
}

func TestCheck_NotBijective(t *testing.T) {
	c, err := Check(sboxeval.SBox{0, 0, 1, 2}, 4, 2, 2)
	require.NoError(t, err)
	assert.False(t, c.Bijective)

	// n != m is never a permutation.
	c, err = Check(sboxeval.SBox{0, 1, 0, 1}, 4, 2, 1)
	require.NoError(t, err)
	assert.False(t, c.Bijective)
}

func TestCheck_InvalidWidths(t *testing.T) {
	_, err := Check(sboxeval.SBox{0}, 1, -1, 0)
	assert.True(t, errors.Is(err, utils.ErrInvalidLength))

	_, err = Check(sboxeval.SBox{0}, 1, 0, utils.MaxShift+1)
	assert.True(t, errors.Is(err, utils.ErrOverflow))
}
