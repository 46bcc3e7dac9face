package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/TFMV/orbitgraph/ingest"
	"github.com/TFMV/orbitgraph/render"
)

func (a *app) renderCmd() *cobra.Command {
	var (
		format      string
		output      string
		inputFormat string
		domain      string
		theme       string
		width       float64
		height      float64
		seed        int64
		maxTicks    int
		timeout     time.Duration
		noLabels    bool
		timestamp   bool
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Settle the layout headless and write it as svg, png, ascii, json, dot or html",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options := a.cfg.RenderOptions(format)
			flags := cmd.Flags()
			if flags.Changed("theme") {
				options.Theme = theme
			}
			if flags.Changed("width") {
				options.Width = width
			}
			if flags.Changed("height") {
				options.Height = height
			}
			if flags.Changed("seed") {
				options.Seed = seed
			}
			if flags.Changed("max-ticks") {
				options.MaxTicks = maxTicks
			}
			if flags.Changed("timeout") {
				options.Timeout = timeout
			}
			options.ShowLabels = options.ShowLabels && !noLabels
			options.Timestamp = timestamp

			in, err := ingest.ProcessFile(args[0], inputFormat, domain)
			if err != nil {
				return err
			}
			a.logger.Debug("seed loaded", "name", in.Name, "satellites", len(in.Satellites))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			start := time.Now()
			res, err := render.Generate(ctx, in, options)
			if err != nil {
				return err
			}
			if !res.Stable {
				a.logger.Warn("layout did not settle", "ticks", res.Ticks, "elapsed", time.Since(start))
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(res.Data)
				return err
			}
			if err := os.WriteFile(output, res.Data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			Good.Fprintf(cmd.OutOrStdout(), "  %s Rendered %s (%d satellites, %d ticks) to %s\n",
				StatusIcon(true), in.Name, len(in.Satellites), res.Ticks, output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&format, "format", "f", "", "Output format (default [render] format)")
	flags.StringVarP(&output, "output", "o", "", "Output file, - or empty for stdout")
	flags.StringVar(&inputFormat, "input-format", "", "Input format: json, csv or log (default from the file extension)")
	flags.StringVar(&domain, "domain", "", "Main domain when the input does not name one")
	flags.StringVar(&theme, "theme", "", "Colour theme: light or dark")
	flags.Float64Var(&width, "width", 0, "Output width")
	flags.Float64Var(&height, "height", 0, "Output height")
	flags.Int64Var(&seed, "seed", 0, "Seed for spawn positions and noise")
	flags.IntVar(&maxTicks, "max-ticks", 0, "Cap on layout ticks")
	flags.DurationVar(&timeout, "timeout", 0, "Cap on layout time; the partial layout is rendered")
	flags.BoolVar(&noLabels, "no-labels", false, "Hide node labels")
	flags.BoolVar(&timestamp, "timestamp", false, "Include the generation time in the output")
	return cmd
}

func (a *app) formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List render output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, f := range render.Formats() {
				r, err := render.GetRenderer(f)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %-6s %s\n", Brand.Sprint(f), Subtle.Sprint(r.Description()))
			}
			return nil
		},
	}
}
