package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/itsatony/go-viewtags"
)

// Build info settings recorded by the go toolchain
const (
	buildSettingRevision = "vcs.revision"
	buildSettingTime     = "vcs.time"
	buildSettingModified = "vcs.modified"
)

// versionInfo is what the version command reports: the binary's build
// stamp plus the compile defaults and catalog drivers it ships with.
type versionInfo struct {
	Version   string   `json:"version"`
	Commit    string   `json:"commit"`
	Modified  bool     `json:"modified"`
	BuildTime string   `json:"build_time"`
	GoVersion string   `json:"go_version"`
	Tags      []string `json:"tags"`
	Extension string   `json:"extension"`
	Drivers   []string `json:"catalog_drivers"`
}

// readBuildInfo is replaced in tests
var readBuildInfo = debug.ReadBuildInfo

func runVersion(args []string, stdout, stderr io.Writer) int {
	format, err := parseVersionFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFormat, err)
		return ExitCodeUsageError
	}

	info := buildVersionInfo()
	if format == OutputFormatJSON {
		data, _ := json.MarshalIndent(info, "", "  ")
		fmt.Fprintln(stdout, string(data))
		return ExitCodeSuccess
	}

	commit := info.Commit
	if info.Modified {
		commit += VersionDirtySuffix
	}
	fmt.Fprintf(stdout, VersionTextTemplate+FmtNewline,
		info.Version, commit, info.BuildTime, info.GoVersion,
		strings.Join(info.Tags, ", "), info.Extension, strings.Join(info.Drivers, ", "))
	return ExitCodeSuccess
}

func parseVersionFlags(args []string) (string, error) {
	fs := flag.NewFlagSet(CmdNameVersion, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var format string
	fs.StringVar(&format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&format, FlagFormatShort, FlagDefaultFormat, "")
	if err := fs.Parse(args); err != nil {
		return "", err
	}

	if format != OutputFormatText && format != OutputFormatJSON {
		return "", errors.New(ErrMsgInvalidFormat)
	}
	return format, nil
}

func buildVersionInfo() *versionInfo {
	info := &versionInfo{
		Version:   VersionUnknown,
		Commit:    VersionUnknown,
		BuildTime: VersionUnknown,
		GoVersion: runtime.Version(),
		Tags:      []string{viewtags.TagNameComponent, viewtags.TagNameView},
		Extension: viewtags.DefaultExtension,
		Drivers:   []string{viewtags.CatalogDriverPostgres, viewtags.CatalogDriverSQLite},
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if bi.Main.Version != "" {
		info.Version = bi.Main.Version
	}
	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case buildSettingRevision:
			info.Commit = s.Value
		case buildSettingTime:
			info.BuildTime = s.Value
		case buildSettingModified:
			info.Modified = s.Value == "true"
		}
	}
	return info
}
