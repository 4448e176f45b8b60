// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/cardstack-tui/internal/model"
	"github.com/jeranaias/cardstack-tui/internal/tree"
)

func openTestStore(t *testing.T) *ProjectStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "projects.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleProject(t *testing.T, name string) *model.Project {
	t.Helper()
	p := model.NewProject(name)
	st := tree.NewStore(p)
	root := st.CreateNode([]*model.Message{model.NewUserMessage("hello there")}, "")
	require.NotEmpty(t, root)
	st.CreateNode([]*model.Message{model.NewUserMessage("follow up")}, root)
	return p
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p := sampleProject(t, "alpha")
	require.NoError(t, store.Save(ctx, p))

	loaded, err := store.Load(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, loaded.ID)
	assert.Equal(t, "alpha", loaded.Name)
	assert.Equal(t, p.Len(), loaded.Len())
	assert.Equal(t, p.CurrentCardID, loaded.CurrentCardID)
	require.NoError(t, loaded.Validate())
}

func TestLoadMissingProject(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Load(context.Background(), "proj_missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestSaveRejectsCorruptTree(t *testing.T) {
	store := openTestStore(t)

	p := sampleProject(t, "broken")
	// Sever a parent back-pointer to violate the forest invariants.
	for _, id := range p.RootIDs {
		p.Node(id).Children = append(p.Node(id).Children, "card_ghost")
	}

	err := store.Save(context.Background(), p)
	assert.ErrorIs(t, err, model.ErrCorruptTree)
}

func TestListOrdersByPosition(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	a := sampleProject(t, "first")
	b := sampleProject(t, "second")
	c := sampleProject(t, "third")
	for _, p := range []*model.Project{a, b, c} {
		require.NoError(t, store.Save(ctx, p))
	}

	metas, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 3)
	assert.Equal(t, []string{"first", "second", "third"}, metaNames(metas))
	assert.Equal(t, 2, metas[0].CardCount)

	// Reorder moves third to the front.
	require.NoError(t, store.Reorder(ctx, []string{c.ID, a.ID, b.ID}))
	metas, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "first", "second"}, metaNames(metas))
}

func TestReorderKeepsUnlistedProjects(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	a := sampleProject(t, "a")
	b := sampleProject(t, "b")
	c := sampleProject(t, "c")
	for _, p := range []*model.Project{a, b, c} {
		require.NoError(t, store.Save(ctx, p))
	}

	// Only two ids listed; c must survive after them.
	require.NoError(t, store.Reorder(ctx, []string{b.ID, a.ID}))
	metas, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, metaNames(metas))
}

func TestSavePreservesPositionOnUpdate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	a := sampleProject(t, "a")
	b := sampleProject(t, "b")
	require.NoError(t, store.Save(ctx, a))
	require.NoError(t, store.Save(ctx, b))

	// Re-saving the first project must not move it to the end.
	a.Name = "a renamed"
	require.NoError(t, store.Save(ctx, a))

	metas, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a renamed", "b"}, metaNames(metas))
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p := sampleProject(t, "doomed")
	require.NoError(t, store.Save(ctx, p))
	require.NoError(t, store.Delete(ctx, p.ID))

	_, err := store.Load(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	err = store.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestRename(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p := sampleProject(t, "old name")
	require.NoError(t, store.Save(ctx, p))
	require.NoError(t, store.Rename(ctx, p.ID, "new name"))

	metas, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "new name", metas[0].Name)

	// The stored tree itself is untouched.
	loaded, err := store.Load(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Len(), loaded.Len())

	assert.ErrorIs(t, store.Rename(ctx, "proj_missing", "x"), ErrProjectNotFound)
}

func TestExportImportRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p := sampleProject(t, "exported")
	require.NoError(t, store.Save(ctx, p))

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, store.ExportJSON(ctx, p.ID, path))

	// Import into a fresh database.
	other := openTestStore(t)
	imported, err := other.ImportJSON(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, p.ID, imported.ID)
	assert.Equal(t, p.Len(), imported.Len())

	loaded, err := other.Load(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "exported", loaded.Name)
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.db")

	store, err := Open(path)
	require.NoError(t, err)

	p := sampleProject(t, "persisted")
	require.NoError(t, store.Save(context.Background(), p))
	require.NoError(t, store.Close())

	// Reopening sees the previous contents.
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	loaded, err := store.Load(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", loaded.Name)
}

func metaNames(metas []model.ProjectMeta) []string {
	names := make([]string, len(metas))
	for i, m := range metas {
		names[i] = m.Name
	}
	return names
}
