// Package share implements the self-contained share-link protocol: a
// document's title and flattened content travel inside the link itself, so
// no server round-trip is involved and link length scales with document size.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// VisibleSeparator joins pages when flattening for a share link. It is
// distinct from the internal page sentinel and meant to stay human-visible
// after import, since import collapses the document into a single page.
const VisibleSeparator = "<br><hr><br>"

// FragmentPrefix is the namespaced location-fragment path carrying a token.
const FragmentPrefix = "#/share/"

var (
	// ErrNotShareLink reports a fragment that does not carry a share token.
	ErrNotShareLink = errors.New("share: not a share link")
	// ErrInvalidEncoding reports a token that is not validly encoded.
	ErrInvalidEncoding = errors.New("share: token is not validly encoded")
	// ErrMalformedPayload reports decoded text that is not well-formed.
	ErrMalformedPayload = errors.New("share: payload is not well-formed")
	// ErrIncompletePayload reports a payload missing title or content.
	ErrIncompletePayload = errors.New("share: payload is missing title or content")
)

// Payload is the structured form carried by a share token.
type Payload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Encode flattens pages with the visible separator and packs the payload
// into a URL-fragment-safe token.
func Encode(title string, pages []string) string {
	p := Payload{Title: title, Content: strings.Join(pages, VisibleSeparator)}
	data, _ := json.Marshal(p)
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode reverses Encode. It fails with a typed error when the token is not
// validly encoded, the decoded text is not well-formed JSON, or the payload
// is missing either field; it never panics across the boundary.
func Decode(token string) (Payload, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		// links minted by older clients used standard base64 with padding
		data, err = base64.StdEncoding.DecodeString(token)
		if err != nil {
			return Payload{}, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
		}
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if p.Title == "" || p.Content == "" {
		return Payload{}, ErrIncompletePayload
	}
	return p, nil
}

// FragmentPath places a token in the application's location reference.
func FragmentPath(token string) string {
	return FragmentPrefix + token
}

// ParseFragment extracts the token from a location fragment, or reports
// ErrNotShareLink when the fragment carries something else.
func ParseFragment(fragment string) (string, error) {
	if !strings.HasPrefix(fragment, FragmentPrefix) {
		return "", ErrNotShareLink
	}
	token := strings.TrimPrefix(fragment, FragmentPrefix)
	if token == "" {
		return "", ErrNotShareLink
	}
	return token, nil
}
