// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bartekus/autograde/cmd/autograde/internal/clierr"
	"github.com/bartekus/autograde/internal/render"
	"github.com/bartekus/autograde/internal/report"
)

const (
	formatTerminal = "terminal"
	formatMarkdown = "markdown"
)

func newSummaryCmd(a *app) *cobra.Command {
	var (
		format  string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "summary <report.json>",
		Short: "Show the items and totals of a written report",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := report.Read(args[0])
			if err != nil {
				return clierr.Wrap(clierr.CodeInput, "summary", err)
			}
			a.log().Debug("read report", zap.String("path", args[0]), zap.Int("items", len(rep.Tests)))

			var out string
			switch format {
			case formatTerminal:
				theme := render.DefaultTheme()
				if noColor {
					theme = render.MonoTheme()
				}
				out = render.NewTerminal(theme).Render(rep)
			case formatMarkdown:
				out = render.Markdown(rep)
			default:
				return clierr.Newf(clierr.CodeUsage, "summary: unknown format %q (want %s or %s)", format, formatTerminal, formatMarkdown)
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTerminal, "output format: terminal or markdown")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors in terminal output")

	return cmd
}
