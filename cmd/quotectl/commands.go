package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quote-digest/internal/domain"
	"github.com/jsamuelsen/quote-digest/internal/extract"
)

const (
	outputJSON       = "json"
	outputStructured = "structured"
)

// errInvalidQuotes makes validate exit non-zero after printing its report.
var errInvalidQuotes = errors.New("some quotes are invalid")

type quoteOut struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
	Link   string `json:"link,omitempty"`
}

type parseOut struct {
	Format   extract.Format `json:"format"`
	Count    int            `json:"count"`
	Quotes   []quoteOut     `json:"quotes"`
	Warnings []string       `json:"warnings,omitempty"`
}

type problemOut struct {
	Index    int      `json:"index"`
	Text     string   `json:"text"`
	Problems []string `json:"problems"`
}

type validateOut struct {
	Format  extract.Format `json:"format"`
	Valid   int            `json:"valid"`
	Invalid []problemOut   `json:"invalid,omitempty"`
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quotectl",
		Short:         "Preview how quote files are read",
		Long:          "quotectl runs the submission service's extractors locally. Pass - as the file to read stdin.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newParseCmd(), newBulkCmd(), newValidateCmd())

	return root
}

func newParseCmd() *cobra.Command {
	var (
		contentType string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Extract quotes from a file the way an upload would",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, name, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			res, err := extract.Extract(content, name, contentType)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", name, err)
			}

			switch output {
			case outputStructured:
				text, err := extract.MarshalStructured(res.Quotes)
				if err != nil {
					return err
				}

				_, err = io.WriteString(cmd.OutOrStdout(), text)

				return err
			case outputJSON:
				return writeJSON(cmd.OutOrStdout(), parseOut{
					Format:   res.Format,
					Count:    len(res.Quotes),
					Quotes:   toOut(res.Quotes),
					Warnings: res.Warnings,
				})
			default:
				return fmt.Errorf("unknown output %q, want %s or %s", output, outputJSON, outputStructured)
			}
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "declared MIME type, as a browser would send it")
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "output format: json or structured")

	return cmd
}

func newBulkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk <file>",
		Short: "Split pasted text (or a JSON array) into quotes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, _, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			quotes := extract.ParseBulk(string(content))

			return writeJSON(cmd.OutOrStdout(), parseOut{
				Count:  len(quotes),
				Quotes: toOut(quotes),
			})
		},
	}
}

func newValidateCmd() *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Extract quotes and check each has text, a source and an http(s) link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, name, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			if err := extract.DefaultUploadPolicy().Check(name, content); err != nil {
				return err
			}

			res, err := extract.Extract(content, name, contentType)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", name, err)
			}

			report := validateOut{Format: res.Format}

			for i, q := range res.Quotes {
				if problems := q.EntryProblems(); len(problems) > 0 {
					report.Invalid = append(report.Invalid, problemOut{Index: i, Text: q.Text, Problems: problems})
					continue
				}

				report.Valid++
			}

			if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}

			if len(report.Invalid) > 0 {
				return fmt.Errorf("%w: %d of %d", errInvalidQuotes, len(report.Invalid), len(res.Quotes))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "declared MIME type, as a browser would send it")

	return cmd
}

// readInput returns the file content and the name used for format detection.
func readInput(cmd *cobra.Command, path string) ([]byte, string, error) {
	if path == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}

		return content, "", nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}

	return content, filepath.Base(path), nil
}

func toOut(quotes []domain.Quote) []quoteOut {
	out := make([]quoteOut, len(quotes))
	for i, q := range quotes {
		out[i] = quoteOut{Text: q.Text, Source: q.Source, Link: q.Link}
	}

	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
