package main

import (
	"context"
	"io"
	"os"

	"github.com/itsatony/go-viewtags"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, FilePermissions)
}

// loadConfig reads the config file, or returns an empty config when path is empty
func loadConfig(path string) (*viewtags.Config, error) {
	if path == "" {
		return &viewtags.Config{}, nil
	}
	return viewtags.LoadConfig(path)
}

// openCatalog builds the catalog of cfg. A non-empty dsn replaces the config's catalog section.
// The catalog is nil when neither names one and no components are listed.
func openCatalog(ctx context.Context, cfg *viewtags.Config, driver, dsn string) (viewtags.Catalog, error) {
	if dsn != "" {
		cfg.CatalogDB = &viewtags.CatalogDBConfig{Driver: driver, DSN: dsn}
	}
	if cfg.CatalogDB == nil && len(cfg.Components) == 0 {
		return nil, nil
	}
	return cfg.Catalog(ctx)
}
