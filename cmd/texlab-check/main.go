// Command texlab-check parses and diagnoses a single LaTeX or BibTeX
// file from the command line, exercising the syntax and diagnostics
// layers without the full LSP transport — useful for CI and for
// debugging the parsers directly against a file on disk.
package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"texlab.dev/core/internal/file"
	"texlab.dev/core/internal/workspace"
)

var rootCmd = &cobra.Command{
	Use:   "texlab-check <file.tex|file.bib>",
	Short: "Parse a LaTeX or BibTeX file and print its diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.Flags().Bool("quiet", false, "print nothing, only set the exit code")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	abs, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	uri := file.Normalize((&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String())

	log, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	ws, err := workspace.New(log)
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	defer ws.Close()

	doc, err := ws.Load(uri)
	if err != nil {
		return fmt.Errorf("load %s: %w", args[0], err)
	}

	diags := doc.Diagnostics
	hasError := false
	for _, d := range diags {
		pos, err := doc.Index.Offset(d.Range.Start)
		if err != nil {
			continue
		}
		if d.Severity == file.SeverityError {
			hasError = true
		}
		if !quiet {
			fmt.Printf("%s:%d:%d: %s: %s [%s]\n", args[0], pos.Line+1, pos.Character+1, severityString(d.Severity), d.Message, d.Code)
		}
	}

	if hasError {
		os.Exit(1)
	}
	return nil
}

func severityString(s file.Severity) string {
	switch s {
	case file.SeverityError:
		return "error"
	case file.SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}
