package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u64(v uint64) *uint64 { return &v }

func TestValidateQuantifiersAppliesOffset(t *testing.T) {
	min, max, err := ValidateQuantifiers(u64(3), u64(5), 1)
	require.NoError(t, err)
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, uint64(2), *min)
	assert.Equal(t, uint64(4), *max)
}

func TestValidateQuantifiersOffsetClampsToZero(t *testing.T) {
	min, _, err := ValidateQuantifiers(u64(1), nil, 5)
	require.NoError(t, err)
	require.NotNil(t, min)
	assert.Equal(t, uint64(0), *min, "an offset larger than the bound must clamp to 0, not underflow")
}

func TestValidateQuantifiersNilBoundsPassThrough(t *testing.T) {
	min, max, err := ValidateQuantifiers(nil, nil, 3)
	require.NoError(t, err)
	assert.Nil(t, min)
	assert.Nil(t, max)
}

func TestValidateQuantifiersRejectsUnsatisfiableRange(t *testing.T) {
	_, _, err := ValidateQuantifiers(u64(5), u64(2), 0)
	assert.Error(t, err)
}

func TestGetNumItemsPatternUnboundedMax(t *testing.T) {
	pattern, ok := GetNumItemsPattern(u64(2), nil)
	require.True(t, ok)
	assert.Equal(t, "{1,}", pattern)
}

func TestGetNumItemsPatternBoundedRange(t *testing.T) {
	pattern, ok := GetNumItemsPattern(u64(1), u64(3))
	require.True(t, ok)
	assert.Equal(t, "{0,2}", pattern)
}

func TestGetNumItemsPatternNoBoundsDefaultsMinZero(t *testing.T) {
	pattern, ok := GetNumItemsPattern(nil, nil)
	require.True(t, ok)
	assert.Equal(t, "{0,}", pattern)
}

func TestGetNumItemsPatternZeroMaxRulesOutFurtherItems(t *testing.T) {
	_, ok := GetNumItemsPattern(nil, u64(0))
	assert.False(t, ok)
}
