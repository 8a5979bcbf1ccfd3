package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	v, overflow, err := ParseInt("127", 8)
	assert.NoError(t, err)
	assert.False(t, overflow)
	assert.Equal(t, int64(127), v)

	_, overflow, err = ParseInt("128", 8)
	assert.Error(t, err)
	assert.True(t, overflow)

	_, overflow, err = ParseInt("1_000", 64)
	assert.NoError(t, err)
	assert.False(t, overflow)

	_, overflow, err = ParseInt("ten", 64)
	assert.Error(t, err)
	assert.False(t, overflow)
}

func TestParseUint(t *testing.T) {
	v, _, err := ParseUint("0b101", 64)
	assert.NoError(t, err)
	assert.Equal(t, uint64(5), v)

	_, overflow, err := ParseUint("256", 8)
	assert.Error(t, err)
	assert.True(t, overflow)
}

func TestParseFloat(t *testing.T) {
	v, _, err := ParseFloat("2.5", 64)
	assert.NoError(t, err)
	assert.Equal(t, 2.5, v)

	_, overflow, err := ParseFloat("1e400", 64)
	assert.Error(t, err)
	assert.True(t, overflow)
}
