// Command timeline renders timeline charts to SVG from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/timeline-chart/internal/dto"
	"github.com/GregMSThompson/timeline-chart/internal/importer"
	"github.com/GregMSThompson/timeline-chart/internal/services"
	"github.com/GregMSThompson/timeline-chart/pkg/logger"
)

type renderer interface {
	Render(ctx context.Context, req dto.TimelineRequest) ([]byte, error)
	Demo(ctx context.Context) ([]byte, error)
}

func main() {
	if err := newRootCmd(services.NewRenderService()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(svc renderer) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "timeline",
		Short:        "Render timeline charts as SVG",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log := logger.New(logLevel, logger.NewConsoleHandler)
			cmd.SetContext(logger.ToContext(cmd.Context(), log))
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(newRenderCmd(svc), newDemoCmd(svc))
	return root
}

func newRenderCmd(svc renderer) *cobra.Command {
	var (
		outputPath string
		axis       string
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a timeline from a YAML, JSON or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req, err := importer.Load(args[0])
			if err != nil {
				return fmt.Errorf("load timeline: %w", err)
			}
			if cmd.Flags().Changed("axis") {
				req.AxisPosition = &axis
			}

			svg, err := svc.Render(ctx, req)
			if err != nil {
				return fmt.Errorf("render timeline: %w", err)
			}
			logger.FromContext(ctx).Info("timeline rendered", "source", args[0], "ranges", len(req.Ranges))
			return writeOutput(cmd.OutOrStdout(), outputPath, svg)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&axis, "axis", "bottom", "Axis position: top, bottom, left, right")
	return cmd
}

func newDemoCmd(svc renderer) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render the built-in demo timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svg, err := svc.Demo(cmd.Context())
			if err != nil {
				return fmt.Errorf("render demo: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), outputPath, svg)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func writeOutput(stdout io.Writer, path string, svg []byte) error {
	if path == "" {
		_, err := stdout.Write(svg)
		return err
	}
	if err := os.WriteFile(path, svg, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
