package export

import (
	"encoding/json"

	"github.com/inkweld/inkweld/backend/go-services/internal/document"
)

// JSONExporter emits the structured dump: title, pages and the last update
// time. Passwords never leave the store through an export path.
type JSONExporter struct{}

func (j *JSONExporter) Name() string        { return "json" }
func (j *JSONExporter) ContentType() string { return "application/json" }

func (j *JSONExporter) Export(d *document.Document) ([]byte, error) {
	dump := struct {
		Title     string   `json:"title"`
		Content   []string `json:"content"`
		UpdatedAt int64    `json:"updatedAt"`
	}{
		Title:     d.Title,
		Content:   d.Content,
		UpdatedAt: d.UpdatedAt,
	}
	return json.MarshalIndent(dump, "", "  ")
}
