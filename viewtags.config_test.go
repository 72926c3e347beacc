package viewtags

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
extension: .html.twig
strict: true
delimiters:
  open: "<%"
  close: "%>"
components:
  - name: Nav
    variants: [primary, footer]
    description: site navigation
  - name: Card
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, ".html.twig", cfg.Extension)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "<%", cfg.Delimiters.Open)
	assert.Equal(t, "%>", cfg.Delimiters.Close)
	assert.Nil(t, cfg.CatalogDB)
	require.Len(t, cfg.Components, 2)
	assert.Equal(t, []string{"primary", "footer"}, cfg.Components[0].Variants)
	assert.Equal(t, "site navigation", cfg.Components[0].Description)
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		errMsg string
	}{
		{"invalid yaml", "extension: [", ErrMsgConfigParse},
		{"component without name", "components:\n  - variants: [a]\n", ErrMsgCatalogEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewtags.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ".html.twig", cfg.Extension)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.yaml")
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgConfigRead)

		file, ok := metadata(err, MetaKeyFile)
		require.True(t, ok)
		assert.Equal(t, path, file)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("strict: {"), 0o600))

		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgConfigParse)
	})
}

func TestConfig_Options(t *testing.T) {
	cfg, err := ParseConfig([]byte(testConfigYAML))
	require.NoError(t, err)

	ext := MustNew(cfg.Options()...)
	assert.Equal(t, ".html.twig", ext.FileExtension())

	calls, err := ext.Plan("<% component 'Nav' 'primary' %>{% component 'Ignored' %}")
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "Nav/nav-primary.html.twig", calls[0].Ref.Path)
}

func TestConfig_Options_Empty(t *testing.T) {
	cfg, err := ParseConfig([]byte("{}"))
	require.NoError(t, err)

	ext := MustNew(cfg.Options()...)
	assert.Equal(t, DefaultExtension, ext.FileExtension())
}

func TestConfig_Catalog_Memory(t *testing.T) {
	ctx := context.Background()
	cfg, err := ParseConfig([]byte(testConfigYAML))
	require.NoError(t, err)

	cat, err := cfg.Catalog(ctx)
	require.NoError(t, err)
	defer cat.Close()

	_, ok := cat.(*MemoryCatalog)
	assert.True(t, ok)

	list, err := cat.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestConfig_Catalog_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg, err := ParseConfig([]byte(testConfigYAML + "catalog:\n  driver: sqlite\n  dsn: \":memory:\"\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.CatalogDB)

	cat, err := cfg.Catalog(ctx)
	require.NoError(t, err)
	defer cat.Close()

	_, ok := cat.(*SQLCatalog)
	assert.True(t, ok)

	entry, err := cat.Get(ctx, "Nav")
	require.NoError(t, err)
	assert.True(t, entry.HasVariant("footer"))
}

func TestConfig_Catalog_BadDriver(t *testing.T) {
	cfg := &Config{CatalogDB: &CatalogDBConfig{Driver: "oracle", DSN: "x"}}

	_, err := cfg.Catalog(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgCatalogUnknownDrv)
}
