package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/itsatony/go-cuserr"

	"github.com/itsatony/go-viewtags"
)

// lintConfig holds parsed lint command configuration
type lintConfig struct {
	templatePath  string
	configPath    string
	format        string
	catalogDSN    string
	catalogDriver string
}

// lintOutput represents JSON output for lint
type lintOutput struct {
	Valid  bool                 `json:"valid"`
	Issues []viewtags.LintIssue `json:"issues,omitempty"`
}

func runLint(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseLintFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	source, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	projectCfg, err := loadConfig(cfg.configPath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgConfigFailed, err)
		return ExitCodeInputError
	}

	ctx := context.Background()
	catalog, err := openCatalog(ctx, projectCfg, cfg.catalogDriver, cfg.catalogDSN)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgCatalogFailed, err)
		return ExitCodeInputError
	}
	if catalog != nil {
		defer catalog.Close()
	}

	opts := projectCfg.Options()
	if catalog != nil {
		opts = append(opts, viewtags.WithCatalog(catalog))
	}
	ext, err := viewtags.New(opts...)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLintFailed, err)
		return ExitCodeError
	}

	issues, err := lintTemplate(ctx, ext, string(source))
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLintFailed, err)
		return ExitCodeError
	}

	if cfg.format == OutputFormatJSON {
		return outputLintJSON(issues, stdout)
	}
	return outputLintText(issues, stdout)
}

func parseLintFlags(args []string) (*lintConfig, error) {
	fs := flag.NewFlagSet(CmdNameLint, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &lintConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.configPath, FlagConfig, "", "")
	fs.StringVar(&cfg.configPath, FlagConfigShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")
	fs.StringVar(&cfg.catalogDSN, FlagCatalogDB, "", "")
	fs.StringVar(&cfg.catalogDriver, FlagCatalogDriver, FlagDefaultCatalogDriver, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

// lintTemplate runs the extension's lint and reports a syntax error as a single issue
func lintTemplate(ctx context.Context, ext *viewtags.Extension, source string) ([]viewtags.LintIssue, error) {
	issues, err := ext.Lint(ctx, source)
	if err == nil {
		return issues, nil
	}
	if !viewtags.IsParseError(err) {
		return nil, err
	}

	line, col := 1, 1
	var customErr *cuserr.CustomError
	if errors.As(err, &customErr) {
		line = metadataInt(customErr, viewtags.MetaKeyLine, line)
		col = metadataInt(customErr, viewtags.MetaKeyColumn, col)
	}
	return []viewtags.LintIssue{{
		Pos:     viewtags.Position{Line: line, Column: col},
		Message: err.Error(),
		Err:     err,
	}}, nil
}

func metadataInt(err *cuserr.CustomError, key string, fallback int) int {
	v, ok := err.GetMetadata(key)
	if !ok {
		return fallback
	}
	n, convErr := strconv.Atoi(v)
	if convErr != nil {
		return fallback
	}
	return n
}

func outputLintText(issues []viewtags.LintIssue, stdout io.Writer) int {
	if len(issues) == 0 {
		fmt.Fprintln(stdout, LintTextNoIssues)
		return ExitCodeSuccess
	}

	fmt.Fprintln(stdout, LintTextIssueHeader)
	for _, issue := range issues {
		label := issue.Component
		if label == "" {
			label = issue.Tag
		}
		fmt.Fprintf(stdout, LintTextIssueFormat+FmtNewline,
			label, issue.Message, issue.Pos.Line, issue.Pos.Column)
	}
	fmt.Fprintf(stdout, LintTextIssueSummary+FmtNewline, len(issues))

	return ExitCodeValidationError
}

func outputLintJSON(issues []viewtags.LintIssue, stdout io.Writer) int {
	output := lintOutput{
		Valid:  len(issues) == 0,
		Issues: issues,
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ")
	fmt.Fprintln(stdout, string(jsonBytes))

	if len(issues) > 0 {
		return ExitCodeValidationError
	}
	return ExitCodeSuccess
}
