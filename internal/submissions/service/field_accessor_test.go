package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openadmissions/forms-intake-service/internal/submissions/model"
)

func Test_ResolveField_DirectKey(t *testing.T) {

	payload := model.Payload{"1.3": "Yaakov"}

	value, found := ResolveField(payload, "1.3")
	require.True(t, found)
	assert.Equal(t, "Yaakov", value)
}

func Test_ResolveField_PrefixedKeys(t *testing.T) {

	payload := model.Payload{
		"input_5": "via input prefix",
		"field_6": "via field prefix",
	}

	value, found := ResolveField(payload, "5")
	require.True(t, found)
	assert.Equal(t, "via input prefix", value)

	value, found = ResolveField(payload, "6")
	require.True(t, found)
	assert.Equal(t, "via field prefix", value)
}

func Test_ResolveField_DotsReplacedByUnderscores(t *testing.T) {

	payload := model.Payload{"1_3": "underscored"}

	value, found := ResolveField(payload, "1.3")
	require.True(t, found)
	assert.Equal(t, "underscored", value)
}

func Test_ResolveField_WhitespaceOnlyIsAbsent(t *testing.T) {

	payload := model.Payload{"7": "   "}

	_, found := ResolveField(payload, "7")
	assert.False(t, found)
}

func Test_ResolveField_MissReturnsAbsentNotError(t *testing.T) {

	_, found := ResolveField(model.Payload{}, "anything")
	assert.False(t, found)
}

func Test_ResolveField_Idempotent(t *testing.T) {

	payload := model.Payload{"input_9": " trimmed "}

	first, foundFirst := ResolveField(payload, "9")
	second, foundSecond := ResolveField(payload, "9")
	assert.Equal(t, foundFirst, foundSecond)
	assert.Equal(t, first, second)
	assert.Equal(t, "trimmed", first)
}

func Test_ResolveField_StructuredValuePassesThrough(t *testing.T) {

	nested := map[string]interface{}{"url": "http://host/file.pdf"}
	payload := model.Payload{"attachments": nested}

	value, found := ResolveField(payload, "attachments")
	require.True(t, found)
	assert.Equal(t, nested, value)
}
