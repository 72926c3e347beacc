package viewtags

import (
	"context"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML project file of the extension:
//
//	extension: .html.twig
//	strict: true
//	delimiters:
//	  open: "{%"
//	  close: "%}"
//	catalog:
//	  driver: sqlite
//	  dsn: file:components.db
//	components:
//	  - name: Navigation
//	    variants: [primary, footer]
type Config struct {
	Extension  string           `yaml:"extension,omitempty"`
	Strict     bool             `yaml:"strict,omitempty"`
	Delimiters DelimiterConfig  `yaml:"delimiters,omitempty"`
	CatalogDB  *CatalogDBConfig `yaml:"catalog,omitempty"`
	Components []CatalogEntry   `yaml:"components,omitempty"`
}

// DelimiterConfig holds the host block delimiters
type DelimiterConfig struct {
	Open  string `yaml:"open,omitempty"`
	Close string `yaml:"close,omitempty"`
}

// CatalogDBConfig selects a SQL catalog instead of the in-memory one
type CatalogDBConfig struct {
	Driver      string `yaml:"driver"`
	DSN         string `yaml:"dsn"`
	TablePrefix string `yaml:"table_prefix,omitempty"`
}

// LoadConfig reads and parses a YAML config file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError(ErrMsgConfigRead, path, err)
	}
	return parseConfig(data, path)
}

// ParseConfig parses YAML config data
func ParseConfig(data []byte) (*Config, error) {
	return parseConfig(data, "")
}

func parseConfig(data []byte, file string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, NewConfigError(ErrMsgConfigParse, file, err)
	}
	for _, c := range cfg.Components {
		if c.Name == "" {
			return nil, NewConfigError(ErrMsgCatalogEmptyName, file, nil)
		}
	}
	return &cfg, nil
}

// Options returns the extension options the config sets.
// The catalog is built separately with Catalog.
func (c *Config) Options() []Option {
	opts := []Option{WithStrictCatalog(c.Strict)}
	if c.Extension != "" {
		opts = append(opts, WithExtension(c.Extension))
	}
	if c.Delimiters.Open != "" || c.Delimiters.Close != "" {
		opts = append(opts, WithDelimiters(c.Delimiters.Open, c.Delimiters.Close))
	}
	return opts
}

// Catalog builds the configured catalog and registers the listed components in it.
// Without a catalog section the result is a MemoryCatalog.
func (c *Config) Catalog(ctx context.Context) (Catalog, error) {
	if c.CatalogDB == nil {
		return NewMemoryCatalog(c.Components...), nil
	}

	cat, err := NewSQLCatalog(SQLCatalogConfig{
		Driver:      c.CatalogDB.Driver,
		DSN:         c.CatalogDB.DSN,
		TablePrefix: c.CatalogDB.TablePrefix,
		AutoMigrate: true,
	})
	if err != nil {
		return nil, err
	}
	for _, entry := range c.Components {
		if err := cat.Register(ctx, entry); err != nil {
			_ = cat.Close()
			return nil, err
		}
	}
	return cat, nil
}
