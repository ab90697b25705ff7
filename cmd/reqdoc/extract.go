package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tsawler/reqdoc"
	"github.com/tsawler/reqdoc/export"
)

func newExtractCmd(a *app) *cobra.Command {
	var (
		sections  []string
		outFile   string
		foundOnly bool
	)

	cmd := &cobra.Command{
		Use:   "extract <document|->",
		Short: "Extract catalog sections from a document",
		Example: `  reqdoc extract analiz.docx
  reqdoc extract analiz.docx --section scope --section integrations -o yaml
  reqdoc extract analiz.odt -o xlsx --out analiz.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(a.cfg.Output)
			if err != nil {
				return err
			}
			if f == export.FormatXLSX && outFile == "" {
				return fmt.Errorf("xlsx output needs --out")
			}
			cat, err := a.catalog()
			if err != nil {
				return err
			}

			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			doc, err := reqdoc.FromBytes(data, inputName(args[0])).
				Catalog(cat).
				Sections(sections...).
				Logger(a.logger).
				Concurrency(a.cfg.Concurrency).
				ConvertConfig(a.cfg.ConvertConfig()).
				Document(cmd.Context())
			if err != nil {
				return err
			}

			config := export.DefaultConfig()
			config.Format = f
			config.FoundOnly = foundOnly
			exporter := export.NewExporterWithConfig(config)

			if outFile != "" {
				if err := exporter.ExportToFile(doc, outFile); err != nil {
					return err
				}
				a.logger.Info("results written", "file", outFile, "sections", len(doc.Sections))
				return nil
			}
			return exporter.Export(doc, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringSliceVarP(&sections, "section", "s", nil, "section id to extract (repeatable; default: all)")
	cmd.Flags().StringP("output", "o", "json", "output format: json, yaml, markdown or xlsx")
	cmd.Flags().StringVar(&outFile, "out", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&foundOnly, "found-only", false, "leave out sections that were not found")
	return cmd
}

// readInput reads a document path, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return data, nil
}

func inputName(path string) string {
	if path == "-" {
		return ""
	}
	return filepath.Base(path)
}
