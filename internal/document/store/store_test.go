package store

import (
	"context"
	"testing"

	"github.com/inkweld/inkweld/backend/go-services/internal/document"
	"github.com/inkweld/inkweld/backend/go-services/internal/document/slot"
	"github.com/inkweld/inkweld/backend/go-services/internal/share"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*Store, *slot.MemorySlot) {
	s := slot.NewMemorySlot()
	st := New(s)
	st.Load(context.Background())
	return st, s
}

func TestCreateThenGet(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	created := st.Create(ctx)
	require.NotEmpty(t, created.ID)
	require.Equal(t, document.DefaultTitle, created.Title)
	require.Equal(t, []string{document.DefaultPage}, created.Content)
	require.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := st.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestGetUnknownID(t *testing.T) {
	st, _ := newTestStore()
	_, err := st.Get("no-such-id")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateBumpsUpdatedAtStrictly(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	d := st.Create(ctx)
	before := d.UpdatedAt

	d.Title = "Renamed"
	st.Update(ctx, d)

	got, err := st.Get(d.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Title)
	require.Greater(t, got.UpdatedAt, before)

	// a second immediate update must still move strictly forward
	st.Update(ctx, got)
	again, err := st.Get(d.ID)
	require.NoError(t, err)
	require.Greater(t, again.UpdatedAt, got.UpdatedAt)
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	st.Create(ctx)
	ghost := &document.Document{ID: "ghost", Title: "x", Content: []string{"<p>x</p>"}}
	st.Update(ctx, ghost)

	_, err := st.Get("ghost")
	require.ErrorIs(t, err, ErrNotFound)
	require.Len(t, st.List(), 1)
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	d := st.Create(ctx)
	created := d.CreatedAt

	d.CreatedAt = 0 // callers cannot rewrite the creation time
	st.Update(ctx, d)

	got, err := st.Get(d.ID)
	require.NoError(t, err)
	require.Equal(t, created, got.CreatedAt)
}

func TestDeleteCompleteness(t *testing.T) {
	st, s := newTestStore()
	ctx := context.Background()

	d := st.Create(ctx)
	st.Delete(ctx, d.ID)

	_, err := st.Get(d.ID)
	require.ErrorIs(t, err, ErrNotFound)

	data, ok, err := s.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotContains(t, string(data), d.ID)

	// absent id is not an error
	st.Delete(ctx, d.ID)
}

func TestPersistReloadKeepsPageOrder(t *testing.T) {
	st, s := newTestStore()
	ctx := context.Background()

	d := st.Create(ctx)
	d.Content = []string{"<h1>A</h1>", "<p>B</p>"}
	st.Update(ctx, d)

	reloaded := New(s)
	reloaded.Load(ctx)
	got, err := reloaded.Get(d.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"<h1>A</h1>", "<p>B</p>"}, got.Content)
}

func TestLoadMigratesLegacySnapshot(t *testing.T) {
	s := slot.NewMemorySlot()
	ctx := context.Background()
	legacy := `[{"id":"old-1","title":"Legacy","content":"<p>one blob</p>","createdAt":1,"updatedAt":2}]`
	require.NoError(t, s.Write(ctx, []byte(legacy)))

	st := New(s)
	st.Load(ctx)
	got, err := st.Get("old-1")
	require.NoError(t, err)
	require.Equal(t, []string{"<p>one blob</p>"}, got.Content)
}

func TestLoadCorruptSnapshotDegradesToEmpty(t *testing.T) {
	s := slot.NewMemorySlot()
	ctx := context.Background()
	require.NoError(t, s.Write(ctx, []byte("{{{ not json")))

	st := New(s)
	st.Load(ctx)
	require.Empty(t, st.List())

	// the store still works after the degraded load
	d := st.Create(ctx)
	_, err := st.Get(d.ID)
	require.NoError(t, err)
}

func TestLoadAbsentSlotIsEmptyNotError(t *testing.T) {
	st, _ := newTestStore()
	require.Empty(t, st.List())
}

func TestImportShared(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	st.Create(ctx)
	imported := st.ImportShared(ctx, share.Payload{Title: "Notes", Content: "<p>Hi</p>"})

	require.Contains(t, imported.Title, "Notes")
	require.Equal(t, []string{"<p>Hi</p>"}, imported.Content)

	got, err := st.Get(imported.ID)
	require.NoError(t, err)
	require.Equal(t, imported, got)
}

func TestImportDecodedTokenScenario(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	token := share.Encode("Notes", []string{"<p>Hi</p>"})
	p, err := share.Decode(token)
	require.NoError(t, err)

	d := st.ImportShared(ctx, p)
	require.Contains(t, d.Title, "Notes")
	require.Len(t, d.Content, 1)
	require.Contains(t, d.Content[0], "Hi")
}

func TestListSortsByUpdatedAtDescending(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	first := st.Create(ctx)
	second := st.Create(ctx)

	// touch the first so it becomes the most recent
	first.Title = "touched"
	st.Update(ctx, first)

	list := st.List()
	require.Len(t, list, 2)
	require.Equal(t, first.ID, list[0].ID)
	require.Equal(t, second.ID, list[1].ID)
}

func TestGetReturnsCopies(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	d := st.Create(ctx)
	got, err := st.Get(d.ID)
	require.NoError(t, err)
	got.Content[0] = "<p>mutated</p>"
	got.Title = "mutated"

	fresh, err := st.Get(d.ID)
	require.NoError(t, err)
	require.Equal(t, document.DefaultPage, fresh.Content[0])
	require.Equal(t, document.DefaultTitle, fresh.Title)
}
