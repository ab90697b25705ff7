package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsawler/reqdoc/catalog"
)

func newSectionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "Inspect and validate section catalogs",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the sections of the configured catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND\tTITLE")
			for _, s := range cat.Sections() {
				kind := string(s.Kind)
				if s.IsVertical() {
					kind += " (" + string(s.Layout) + ")"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, kind, s.Title)
			}
			return tw.Flush()
		},
	}

	validate := &cobra.Command{
		Use:   "validate <catalog.yaml>",
		Short: "Check a catalog file against the catalog schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading catalog: %w", err)
			}
			cat, err := catalog.Parse(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d sections, version %d\n", args[0], cat.Len(), cat.Version)
			return nil
		},
	}

	def := &cobra.Command{
		Use:   "default",
		Short: "Print the embedded default catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(catalog.DefaultYAML())
			return err
		},
	}

	cmd.AddCommand(list, validate, def)
	return cmd
}
