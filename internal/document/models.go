package document

import (
	"encoding/json"
	"fmt"
)

const (
	// DefaultTitle is assigned to documents created by the "new document" action.
	DefaultTitle = "Untitled Document"
	// DefaultPage is the first page of a freshly created document.
	DefaultPage = "<h1>Start writing...</h1><p><br></p>"
	// BlankPage wraps empty legacy content so a migrated document still has
	// one renderable page.
	BlankPage = "<p><br></p>"
	// SharedTitlePrefix marks imported documents as externally sourced.
	SharedTitlePrefix = "Shared: "
)

// Document is the sole persisted entity. Content holds one opaque markup
// string per page, in reading order; the engine never interprets the markup.
// Timestamps are unix milliseconds, wire-compatible with the legacy
// persisted shape.
type Document struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   []string `json:"content"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
	Password  string   `json:"password,omitempty"`
}

// Clone returns a copy whose page slice does not alias the receiver's.
func (d *Document) Clone() *Document {
	c := *d
	c.Content = append([]string(nil), d.Content...)
	return &c
}

// storedDocument is the on-disk record shape. Content stays raw so the
// legacy form (a single JSON string) can be detected structurally.
type storedDocument struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	CreatedAt int64           `json:"createdAt"`
	UpdatedAt int64           `json:"updatedAt"`
	Password  string          `json:"password,omitempty"`
}

// DecodeCollection parses a persisted snapshot, migrating legacy records
// (content as one string) to the current page-sequence shape. Migration is
// idempotent: an already-migrated record decodes unchanged.
func DecodeCollection(data []byte) ([]*Document, error) {
	var raw []storedDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}

	docs := make([]*Document, 0, len(raw))
	for _, r := range raw {
		d := &Document{
			ID:        r.ID,
			Title:     r.Title,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			Password:  r.Password,
		}
		if err := migrateContent(r.Content, d); err != nil {
			return nil, fmt.Errorf("decode collection: document %s: %w", r.ID, err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// EncodeCollection serializes the full collection snapshot in the current shape.
func EncodeCollection(docs []*Document) ([]byte, error) {
	if docs == nil {
		docs = []*Document{}
	}
	return json.Marshal(docs)
}

func migrateContent(raw json.RawMessage, d *Document) error {
	if len(raw) == 0 {
		d.Content = []string{BlankPage}
		return nil
	}
	var pages []string
	if err := json.Unmarshal(raw, &pages); err == nil {
		d.Content = pages
		return nil
	}
	// legacy shape: one markup string for the whole document
	var blob string
	if err := json.Unmarshal(raw, &blob); err != nil {
		return fmt.Errorf("content is neither page list nor string: %w", err)
	}
	if blob == "" {
		blob = BlankPage
	}
	d.Content = []string{blob}
	return nil
}
