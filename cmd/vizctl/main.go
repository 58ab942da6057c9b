// Command vizctl inspects CSV and XLSX files and renders plots from the
// command line, locally or through a running visualizer.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/charts"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/client"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/config"
	"github.com/SubhojitGuin/jalshakti-data-visualizer/internal/dataset"
)

type plotOptions struct {
	x      string
	y      string
	kind   string
	out    string
	server string
	width  int
	height int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "vizctl",
		Short:        "Plot columns of CSV and XLSX files",
		Version:      config.GetVersion(),
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newColumnsCmd(), newPlotCmd())
	return rootCmd
}

func newColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns FILE",
		Short: "List the columns of a file with their inferred types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadFile(args[0])
			if err != nil {
				return err
			}
			return printColumns(cmd.OutOrStdout(), ds)
		},
	}
}

func newPlotCmd() *cobra.Command {
	opts := plotOptions{}
	def := charts.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "plot FILE",
		Short: "Render a plot of two columns to a PNG file",
		Long: `Render a Line, Bar, Scatter or Histogram plot of the Y column against
the X column. With --server the file is sent to a running visualizer and the
image it returns is saved instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.x, "x", "", "X-axis column")
	cmd.Flags().StringVar(&opts.y, "y", "", "Y-axis column")
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "line", "Plot type: line, bar, scatter or histogram")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "plot.png", "Output PNG path")
	cmd.Flags().StringVar(&opts.server, "server", "", "Render through the visualizer at this URL")
	cmd.Flags().IntVar(&opts.width, "width", def.Width, "Image width in pixels (local rendering)")
	cmd.Flags().IntVar(&opts.height, "height", def.Height, "Image height in pixels (local rendering)")
	cmd.MarkFlagRequired("x")
	cmd.MarkFlagRequired("y")

	return cmd
}

func runPlot(ctx context.Context, out io.Writer, path string, opts plotOptions) error {
	kind, err := charts.ParseKind(opts.kind)
	if err != nil {
		return err
	}

	var png []byte
	if opts.server != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if ctx == nil {
			ctx = context.Background()
		}
		png, err = client.New(opts.server).Render(ctx, filepath.Base(path), data, opts.x, opts.y, kind.String())
		if err != nil {
			return err
		}
	} else {
		ds, err := loadFile(path)
		if err != nil {
			return err
		}
		renderer := charts.NewRenderer(charts.Options{Width: opts.width, Height: opts.height})
		chart, err := renderer.Render(ds, opts.x, opts.y, kind)
		if err != nil {
			return err
		}
		if png, err = charts.Encode(chart); err != nil {
			return err
		}
	}

	if err := os.WriteFile(opts.out, png, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(out, "Wrote %s (%d bytes)\n", opts.out, len(png))
	return nil
}

func loadFile(path string) (*dataset.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return dataset.Load(data, filepath.Base(path))
}

func printColumns(w io.Writer, ds *dataset.Dataset) error {
	fmt.Fprintf(w, "%s: %d rows, %d columns\n", ds.Source(), ds.NumRows(), ds.NumColumns())
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tTYPE\tVALUES")
	for _, name := range ds.Columns() {
		col, _ := ds.Column(name)
		fmt.Fprintf(tw, "%s\t%s\t%d\n", name, col.Type, col.Present())
	}
	return tw.Flush()
}
