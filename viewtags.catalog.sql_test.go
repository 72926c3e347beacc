package viewtags

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteCatalog(t *testing.T) *SQLCatalog {
	t.Helper()
	cat, err := NewSQLCatalog(SQLCatalogConfig{
		Driver:      CatalogDriverSQLite,
		DSN:         ":memory:",
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cat.Close() })
	return cat
}

func TestSQLCatalog_SQLite_RegisterAndGet(t *testing.T) {
	ctx := context.Background()
	cat := newSQLiteCatalog(t)

	require.NoError(t, cat.Register(ctx, CatalogEntry{
		Name:        "Nav",
		Variants:    []string{"primary", "footer"},
		Description: "site navigation",
	}))

	entry, err := cat.Get(ctx, "Nav")
	require.NoError(t, err)
	assert.Equal(t, "Nav", entry.Name)
	assert.Equal(t, []string{"primary", "footer"}, entry.Variants)
	assert.Equal(t, "site navigation", entry.Description)
	assert.True(t, entry.HasVariant("FOOTER"))
}

func TestSQLCatalog_SQLite_Upsert(t *testing.T) {
	ctx := context.Background()
	cat := newSQLiteCatalog(t)

	require.NoError(t, cat.Register(ctx, CatalogEntry{Name: "Nav", Variants: []string{"primary"}}))
	require.NoError(t, cat.Register(ctx, CatalogEntry{Name: "Nav", Variants: []string{"wide"}, Description: "v2"}))

	entry, err := cat.Get(ctx, "Nav")
	require.NoError(t, err)
	assert.Equal(t, []string{"wide"}, entry.Variants)
	assert.Equal(t, "v2", entry.Description)

	list, err := cat.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLCatalog_SQLite_List(t *testing.T) {
	ctx := context.Background()
	cat := newSQLiteCatalog(t)

	list, err := cat.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, name := range []string{"Nav", "Card", "Footer"} {
		require.NoError(t, cat.Register(ctx, CatalogEntry{Name: name}))
	}

	list, err = cat.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Card", list[0].Name)
	assert.Equal(t, "Footer", list[1].Name)
	assert.Equal(t, "Nav", list[2].Name)
	assert.Empty(t, list[0].Variants)
}

func TestSQLCatalog_SQLite_NotFound(t *testing.T) {
	_, err := newSQLiteCatalog(t).Get(context.Background(), "Missing")
	require.Error(t, err)
	assert.True(t, IsCatalogNotFound(err))
}

func TestSQLCatalog_SQLite_EmptyName(t *testing.T) {
	err := newSQLiteCatalog(t).Register(context.Background(), CatalogEntry{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgCatalogEmptyName)
}

func TestSQLCatalog_SQLite_Migrations(t *testing.T) {
	ctx := context.Background()
	cat := newSQLiteCatalog(t)

	version, err := cat.CurrentSchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	// running again is a no-op
	require.NoError(t, cat.RunMigrations(ctx))
	version, err = cat.CurrentSchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestSQLCatalog_SQLite_TablePrefix(t *testing.T) {
	ctx := context.Background()
	cat, err := NewSQLCatalog(SQLCatalogConfig{
		Driver:      CatalogDriverSQLite,
		DSN:         ":memory:",
		TablePrefix: "site_",
		AutoMigrate: true,
	})
	require.NoError(t, err)
	defer cat.Close()

	assert.Equal(t, "site_"+CatalogTableComponents, cat.tableName())
	require.NoError(t, cat.Register(ctx, CatalogEntry{Name: "Nav"}))
	_, err = cat.Get(ctx, "Nav")
	assert.NoError(t, err)
}

func TestSQLCatalog_Close(t *testing.T) {
	ctx := context.Background()
	cat, err := NewSQLCatalog(SQLCatalogConfig{
		Driver:      CatalogDriverSQLite,
		DSN:         ":memory:",
		AutoMigrate: true,
	})
	require.NoError(t, err)

	require.NoError(t, cat.Close())

	err = cat.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgCatalogClosed)

	_, err = cat.Get(ctx, "Nav")
	assert.Error(t, err)
	_, err = cat.List(ctx)
	assert.Error(t, err)
	assert.Error(t, cat.Register(ctx, CatalogEntry{Name: "Nav"}))
}

func TestNewSQLCatalog_ConfigErrors(t *testing.T) {
	t.Run("empty DSN", func(t *testing.T) {
		_, err := NewSQLCatalog(SQLCatalogConfig{Driver: CatalogDriverSQLite})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgCatalogEmptyDSN)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewSQLCatalog(SQLCatalogConfig{Driver: "mysql", DSN: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgCatalogUnknownDrv)

		driver, ok := metadata(err, MetaKeyDriver)
		require.True(t, ok)
		assert.Equal(t, "mysql", driver)
	})
}
