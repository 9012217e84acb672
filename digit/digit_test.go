package digit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	for c := byte('1'); c <= '9'; c++ {
		d, err := Parse(c)
		require.NoError(t, err)
		assert.Equal(t, c, d.Char())
	}
}

func TestParseInvalid(t *testing.T) {
	for _, c := range []byte{'0', 'a', '.', ' '} {
		_, err := Parse(c)
		assert.Error(t, err)
	}
}

func TestOptionalNone(t *testing.T) {
	o, err := ParseOptional('0')
	require.NoError(t, err)
	assert.Equal(t, None, o)
	_, ok := o.Digit()
	assert.False(t, ok)

	o, err = ParseOptional('.')
	require.NoError(t, err)
	assert.Equal(t, None, o)
}

func TestOptionalOfDigit(t *testing.T) {
	d, err := Parse('5')
	require.NoError(t, err)
	o := Of(d)
	got, ok := o.Digit()
	require.True(t, ok)
	assert.Equal(t, d, got)
	assert.Equal(t, byte('5'), o.Char())
}

func TestSetBasics(t *testing.T) {
	s := Empty
	one, _ := Parse('1')
	five, _ := Parse('5')
	s = s.Insert(one).Insert(five)
	assert.Equal(t, 2, s.Count())
	assert.True(t, s.Contains(one))
	assert.True(t, s.Contains(five))

	smallest, ok := s.Smallest()
	require.True(t, ok)
	assert.Equal(t, one, smallest)

	s = s.Remove(one)
	assert.Equal(t, 1, s.Count())
	assert.False(t, s.Contains(one))
	assert.Equal(t, "5", s.String())
}

func TestAllNine(t *testing.T) {
	all := All()
	require.Len(t, all, 9)
	for i, d := range all {
		assert.Equal(t, uint8(i), d.Value())
	}
	assert.Equal(t, 9, All9.Count())
}
