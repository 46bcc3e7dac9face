package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/TFMV/orbitgraph/host"
	"github.com/TFMV/orbitgraph/ingest"
)

func (a *app) runCmd() *cobra.Command {
	var (
		inputFormat string
		domain      string
		theme       string
	)

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Open an interactive window on the graph of a stats, csv or log file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if theme != "" {
				a.cfg.Style.Theme = theme
			}
			seed, err := ingest.ProcessFile(args[0], inputFormat, domain)
			if err != nil {
				return err
			}
			gopts, err := a.cfg.GraphOptions()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			game, err := host.New(ctx, seed, host.Options{
				Width:     a.cfg.Window.Width,
				Height:    a.cfg.Window.Height,
				Title:     a.cfg.Window.Title + " - " + seed.Name,
				TPS:       a.cfg.Window.TPS,
				OpenLinks: a.cfg.Interaction.OpenLinks,
				Graph:     gopts,
				Logger:    a.logger,
				Out:       cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}
			return game.Run()
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "Input format: json, csv or log (default from the file extension)")
	cmd.Flags().StringVar(&domain, "domain", "", "Main domain when the input does not name one")
	cmd.Flags().StringVar(&theme, "theme", "", "Colour theme: light or dark")
	return cmd
}
