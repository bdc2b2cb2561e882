package share

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	token := Encode("Notes", []string{"<p>Hi</p>"})
	p, err := Decode(token)
	require.NoError(t, err)
	require.Equal(t, "Notes", p.Title)
	require.Equal(t, "<p>Hi</p>", p.Content)
}

func TestEncodeFlattensWithVisibleSeparator(t *testing.T) {
	token := Encode("Multi", []string{"<h1>A</h1>", "<p>B</p>"})
	p, err := Decode(token)
	require.NoError(t, err)
	require.Equal(t, "<h1>A</h1>"+VisibleSeparator+"<p>B</p>", p.Content)
}

func TestTokenIsFragmentSafe(t *testing.T) {
	// markup with bytes whose base64 would otherwise produce + and /
	token := Encode("t", []string{"<p>\xff\xfe\xbf?&=</p>"})
	require.NotContains(t, token, "+")
	require.NotContains(t, token, "/")
	require.NotContains(t, token, "=")
}

func TestDecodeStdBase64Fallback(t *testing.T) {
	// a link minted the original way: btoa(JSON), standard alphabet with padding
	legacy := base64.StdEncoding.EncodeToString([]byte(`{"title":"Old","content":"<p>x</p>"}`))
	p, err := Decode(legacy)
	require.NoError(t, err)
	require.Equal(t, "Old", p.Title)
}

func TestDecodeFailures(t *testing.T) {
	_, err := Decode("!!!not-base64!!!")
	require.ErrorIs(t, err, ErrInvalidEncoding)

	notJSON := base64.RawURLEncoding.EncodeToString([]byte("<html>"))
	_, err = Decode(notJSON)
	require.ErrorIs(t, err, ErrMalformedPayload)

	missing := base64.RawURLEncoding.EncodeToString([]byte(`{"title":"only"}`))
	_, err = Decode(missing)
	require.ErrorIs(t, err, ErrIncompletePayload)

	empty := base64.RawURLEncoding.EncodeToString([]byte(`{"title":"","content":""}`))
	_, err = Decode(empty)
	require.ErrorIs(t, err, ErrIncompletePayload)
}

func TestFragmentPathParseFragment(t *testing.T) {
	token := Encode("Notes", []string{"<p>Hi</p>"})
	frag := FragmentPath(token)
	require.True(t, strings.HasPrefix(frag, "#/share/"))

	got, err := ParseFragment(frag)
	require.NoError(t, err)
	require.Equal(t, token, got)

	_, err = ParseFragment("#/settings")
	require.ErrorIs(t, err, ErrNotShareLink)
	_, err = ParseFragment("#/share/")
	require.ErrorIs(t, err, ErrNotShareLink)
}
