package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTable = `{
  "modules": [
    {
      "id": "EP01-Q01",
      "title": "紫微斗数入门",
      "question": "紫微斗数的起源是什么？",
      "prompt_template": "请解释[概念]",
      "episode": 1,
      "textbook_pages": "6",
      "key_concepts": ["起源", "十二宫位"],
      "video_url": "https://www.youtube.com/watch?v=jJMWFi0nJ6c",
      "start_time": "06:01",
      "end_time": "08:30"
    },
    {
      "id": "EP01-Q02",
      "title": "十二宫位",
      "question": "十二宫位分别代表什么？",
      "episode": 1,
      "textbook_pages": 8,
      "key_concepts": ["命宫"],
      "video_url": "https://www.youtube.com/watch?v=jJMWFi0nJ6c",
      "start_time": "08:30",
      "end_time": "12:00",
      "extra_field_from_future_version": true
    }
  ]
}`

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modules.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadValidTable(t *testing.T) {
	cat, err := Load(writeTable(t, validTable))
	require.NoError(t, err)

	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, "EP01-Q01", cat.At(0).ID)
	assert.Equal(t, "EP01-Q02", cat.At(1).ID)
	// numeric textbook_pages is accepted and normalized to a string
	assert.Equal(t, "8", cat.At(1).TextbookPages.String())
	// unknown fields are ignored, order is preserved
	assert.Equal(t, []string{"起源", "十二宫位"}, cat.At(0).KeyConcepts)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read module table")
}

func TestLoadMalformedJSON(t *testing.T) {
	_, err := Load(writeTable(t, "{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestLoadEmptyTable(t *testing.T) {
	_, err := Load(writeTable(t, `{"modules": []}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no modules")
}

func TestLoadMissingRequiredField(t *testing.T) {
	table := `{"modules": [{"id": "Q1", "title": "", "question": "q?", "episode": 1,
		"video_url": "https://www.youtube.com/watch?v=x"}]}`
	_, err := Load(writeTable(t, table))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no title")
}

func TestLoadDuplicateID(t *testing.T) {
	table := `{"modules": [
		{"id": "Q1", "title": "a", "question": "q?", "episode": 1, "video_url": "https://x"},
		{"id": "Q1", "title": "b", "question": "q?", "episode": 1, "video_url": "https://x"}
	]}`
	_, err := Load(writeTable(t, table))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestModulesReturnsACopy(t *testing.T) {
	cat, err := Load(writeTable(t, validTable))
	require.NoError(t, err)

	mods := cat.Modules()
	mods[0].Title = "mutated"
	assert.Equal(t, "紫微斗数入门", cat.At(0).Title, "catalog must stay immutable")
}
