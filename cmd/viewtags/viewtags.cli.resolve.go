package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/itsatony/go-viewtags"
)

// resolveConfig holds parsed resolve command configuration
type resolveConfig struct {
	name      string
	variant   string
	extension string
}

func runResolve(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseResolveFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	fmt.Fprintln(stdout, viewtags.ResolvePath(cfg.name, cfg.variant, cfg.extension))
	return ExitCodeSuccess
}

func parseResolveFlags(args []string) (*resolveConfig, error) {
	fs := flag.NewFlagSet(CmdNameResolve, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &resolveConfig{}

	fs.StringVar(&cfg.name, FlagName, "", "")
	fs.StringVar(&cfg.name, FlagNameShort, "", "")
	fs.StringVar(&cfg.variant, FlagVariant, "", "")
	fs.StringVar(&cfg.variant, FlagVariantShort, "", "")
	fs.StringVar(&cfg.extension, FlagExtension, viewtags.DefaultExtension, "")
	fs.StringVar(&cfg.extension, FlagExtensionShort, viewtags.DefaultExtension, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.name == "" {
		return nil, errors.New(ErrMsgMissingName)
	}

	return cfg, nil
}
