package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openadmissions/forms-intake-service/internal/system/constants"
)

func Test_CoerceDate_AllPatternsSameCalendarDate(t *testing.T) {

	// 2024-03-04 written in each supported pattern.
	inputs := []string{"2024-03-04", "03/04/2024"}

	for _, input := range inputs {
		coerced := CoerceValue(input, constants.DateValueType)
		require.NotNil(t, coerced, "expected %q to parse", input)
		parsed, ok := coerced.(time.Time)
		require.True(t, ok)
		assert.Equal(t, 2024, parsed.Year(), "input %q", input)
		assert.Equal(t, time.March, parsed.Month(), "input %q", input)
		assert.Equal(t, 4, parsed.Day(), "input %q", input)
	}
}

func Test_CoerceDate_AmbiguousStringResolvesAsMonthFirst(t *testing.T) {

	coerced := CoerceValue("03/04/2024", constants.DateValueType)
	require.NotNil(t, coerced)
	parsed := coerced.(time.Time)
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 4, parsed.Day())
}

func Test_CoerceDate_DayFirstWhenMonthImpossible(t *testing.T) {

	// 25 cannot be a month, so the DD/MM pattern is the one that parses.
	coerced := CoerceValue("25/12/2024", constants.DateValueType)
	require.NotNil(t, coerced)
	parsed := coerced.(time.Time)
	assert.Equal(t, time.December, parsed.Month())
	assert.Equal(t, 25, parsed.Day())
}

func Test_CoerceDate_NonMatchingReturnsNil(t *testing.T) {

	assert.Nil(t, CoerceValue("not a date", constants.DateValueType))
	assert.Nil(t, CoerceValue("2024/03/04", constants.DateValueType))
	assert.Nil(t, CoerceValue("", constants.DateValueType))
	assert.Nil(t, CoerceValue(nil, constants.DateValueType))
}

func Test_CoerceNumber(t *testing.T) {

	assert.Equal(t, 12.5, CoerceValue("12.5", constants.NumberValueType))
	assert.Equal(t, float64(7), CoerceValue(" 7 ", constants.NumberValueType))
	assert.Equal(t, 3.25, CoerceValue(3.25, constants.NumberValueType))
	assert.Nil(t, CoerceValue("twelve", constants.NumberValueType))
	assert.Nil(t, CoerceValue("", constants.NumberValueType))
}

func Test_CoerceText(t *testing.T) {

	assert.Equal(t, "hello", CoerceValue("  hello  ", constants.TextValueType))
	assert.Nil(t, CoerceValue("   ", constants.TextValueType))
	assert.Nil(t, CoerceValue(nil, constants.TextValueType))
}

func Test_CoerceJson_ParsesStringsAndPassesStructuresThrough(t *testing.T) {

	parsed := CoerceValue(`{"a": 1}`, constants.JsonValueType)
	obj, ok := parsed.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), obj["a"])

	structured := map[string]interface{}{"b": "2"}
	assert.Equal(t, structured, CoerceValue(structured, constants.JsonValueType))

	// Unparseable strings fall back to the raw string.
	assert.Equal(t, "{broken", CoerceValue("{broken", constants.JsonValueType))
}
