package export

import (
	"encoding/json"
	"testing"

	"github.com/inkweld/inkweld/backend/go-services/internal/document"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"txt", "json"} {
		e, err := r.Get(name)
		require.NoError(t, err)
		require.Equal(t, name, e.Name())
	}

	_, err := r.Get("docx")
	require.Error(t, err)
}

func TestTextExporterStripsMarkup(t *testing.T) {
	d := &document.Document{
		Title:   "T",
		Content: []string{"<h1>Heading</h1><p>Body &amp; more</p>", "<p>Page two</p>"},
	}
	out, err := (&TextExporter{}).Export(d)
	require.NoError(t, err)

	text := string(out)
	require.Contains(t, text, "Heading\nBody & more")
	require.Contains(t, text, "\f")
	require.Contains(t, text, "Page two")
	require.NotContains(t, text, "<")
}

func TestJSONExporterShape(t *testing.T) {
	d := &document.Document{
		Title:     "Notes",
		Content:   []string{"<p>Hi</p>"},
		UpdatedAt: 42,
		Password:  "secret",
	}
	out, err := (&JSONExporter{}).Export(d)
	require.NoError(t, err)

	var dump map[string]any
	require.NoError(t, json.Unmarshal(out, &dump))
	require.Equal(t, "Notes", dump["title"])
	require.Equal(t, float64(42), dump["updatedAt"])
	require.NotContains(t, string(out), "secret")
}
