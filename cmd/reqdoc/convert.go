package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/reqdoc/convert"
	"github.com/tsawler/reqdoc/dom"
)

func newConvertCmd(a *app) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert <document|->",
		Short: "Print the HTML or Markdown the extraction engine sees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			out, err := convert.NewRegistryWithConfig(a.cfg.ConvertConfig()).Convert(cmd.Context(), data, inputName(args[0]))
			if err != nil {
				return err
			}
			for _, m := range out.Messages {
				a.logger.Warn("converter message", "format", out.Format.String(), "message", m)
			}

			switch strings.ToLower(to) {
			case "html":
				_, err = io.WriteString(cmd.OutOrStdout(), out.HTML)
				return err
			case "markdown", "md":
				d, err := dom.ParseString(out.HTML)
				if err != nil {
					return err
				}
				md, err := d.Markdown()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), md)
				return err
			default:
				return fmt.Errorf("unsupported target %q: use html or markdown", to)
			}
		},
	}

	cmd.Flags().StringVar(&to, "to", "html", "target: html or markdown")
	return cmd
}
