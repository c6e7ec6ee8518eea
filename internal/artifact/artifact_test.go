package artifact

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasparro/pagegen/internal/schema"
)

func TestNewJSONWriterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := NewJSONWriter(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, w.Dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteFAQPage(t *testing.T) {
	w, err := NewJSONWriter(t.TempDir())
	require.NoError(t, err)

	page := &schema.FAQPage{
		PageType:    "faq",
		ProductName: "GlowBoost Vitamin C Serum",
		FAQItems: []schema.FAQItem{
			{Question: "Is it safe?", Answer: "Yes.", Category: "Safety"},
		},
		TotalQuestions: 1,
	}

	path, err := w.Write(context.Background(), "faq", page)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Dir, "faq.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded schema.FAQPage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *page, decoded)
}

func TestWriteFileNamePerPageType(t *testing.T) {
	w, err := NewJSONWriter(t.TempDir())
	require.NoError(t, err)

	cases := map[string]string{
		"faq":        "faq.json",
		"product":    "product_page.json",
		"comparison": "comparison_page.json",
	}
	for pageType, fileName := range cases {
		path, err := w.Write(context.Background(), pageType, map[string]any{"page_type": pageType})
		require.NoError(t, err)
		assert.Equal(t, fileName, filepath.Base(path))
	}
}

func TestWriteUnknownPageType(t *testing.T) {
	w, err := NewJSONWriter(t.TempDir())
	require.NoError(t, err)

	_, err = w.Write(context.Background(), "blog", map[string]any{})
	assert.Error(t, err)
}

func TestWriteDoesNotEscapeHTMLOrCurrency(t *testing.T) {
	w, err := NewJSONWriter(t.TempDir())
	require.NoError(t, err)

	path, err := w.Write(context.Background(), "product", map[string]any{"price": "₹699", "note": "a < b"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "₹699")
	assert.Contains(t, string(data), "a < b")
	assert.NotContains(t, string(data), `<`)
}

func TestWriteIsPrettyPrinted(t *testing.T) {
	w, err := NewJSONWriter(t.TempDir())
	require.NoError(t, err)

	path, err := w.Write(context.Background(), "faq", map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"a\"")
}
