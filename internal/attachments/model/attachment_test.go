package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseFileReferences_SingleObject(t *testing.T) {

	refs := ParseFileReferences(map[string]interface{}{"url": "http://host/file.pdf"})
	require.Len(t, refs, 1)
	assert.Equal(t, "http://host/file.pdf", refs[0].URL)
}

func Test_ParseFileReferences_JsonStringEquivalentToObject(t *testing.T) {

	fromObject := ParseFileReferences(map[string]interface{}{"url": "http://host/file.pdf"})
	fromString := ParseFileReferences(`{"url": "http://host/file.pdf"}`)

	assert.Equal(t, fromObject, fromString)
}

func Test_ParseFileReferences_List(t *testing.T) {

	refs := ParseFileReferences([]interface{}{
		map[string]interface{}{"url": "http://host/a.pdf"},
		map[string]interface{}{"url": "http://host/b.pdf", "name": "transcript.pdf"},
	})
	require.Len(t, refs, 2)
	assert.Equal(t, "http://host/a.pdf", refs[0].URL)
	assert.Equal(t, "transcript.pdf", refs[1].Name)
}

func Test_ParseFileReferences_KeyedMapping(t *testing.T) {

	refs := ParseFileReferences(map[string]interface{}{
		"report_card": map[string]interface{}{"url": "http://host/report.pdf"},
		"photo":       map[string]interface{}{"url": "http://host/photo.jpg"},
	})
	require.Len(t, refs, 2)

	urls := []string{refs[0].URL, refs[1].URL}
	assert.Contains(t, urls, "http://host/report.pdf")
	assert.Contains(t, urls, "http://host/photo.jpg")
}

func Test_ParseFileReferences_BareUrlString(t *testing.T) {

	refs := ParseFileReferences("http://host/direct.pdf")
	require.Len(t, refs, 1)
	assert.Equal(t, "http://host/direct.pdf", refs[0].URL)
}

func Test_ParseFileReferences_UnusableValuesDropped(t *testing.T) {

	assert.Empty(t, ParseFileReferences(nil))
	assert.Empty(t, ParseFileReferences(""))
	assert.Empty(t, ParseFileReferences("just some text"))
	assert.Empty(t, ParseFileReferences(42))
	assert.Empty(t, ParseFileReferences(map[string]interface{}{"url": "   "}))
}
