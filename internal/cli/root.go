// Package cli wires the configuration surface, job list and scheduler into
// the image-tiler command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"imagetiler/internal/adapters/localfs"
	"imagetiler/internal/adapters/vips"
	"imagetiler/internal/config"
	"imagetiler/internal/joblist"
	"imagetiler/internal/pack"
	"imagetiler/internal/service"
)

// NewRootCmd builds the image-tiler root command. Flag defaults come from
// the environment (IMAGE_TILER_*), flags win over the environment.
func NewRootCmd() *cobra.Command {
	cfg := config.FromEnv()

	cmd := &cobra.Command{
		Use:           "image-tiler",
		Short:         "Generate DeepZoom tile bundles from images",
		Long:          "Generate Google DeepZoom tiles from images using libvips,\nthen merge each tile tree into a single binary blob with a metadata index.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.InputsFile, "inputs", "", "file with input image paths, one per line")
	flags.StringVar(&cfg.OutputsFile, "outputs", "", "file with tile folder paths, one per line")
	flags.IntVar(&cfg.TileSize, "tile-size", cfg.TileSize, "tile size in pixels")
	flags.StringVar(&cfg.Suffix, "suffix", cfg.Suffix, "tile format: .png, .jpg, .jpeg")
	flags.IntVar(&cfg.JPEGQuality, "jpeg-quality", cfg.JPEGQuality, "JPEG quality 1-100")
	flags.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "number of parallel workers (0 = host parallelism)")
	flags.BoolVar(&cfg.KeepTiles, "keep-tiles", cfg.KeepTiles, "keep original tile files after merging")

	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	jobs, err := joblist.Read(cfg.InputsFile, cfg.OutputsFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	if len(jobs) == 0 {
		fmt.Fprintln(out, "No tasks to process.")
		return nil
	}

	keep := "no"
	if cfg.KeepTiles {
		keep = "yes"
	}
	fmt.Fprintf(out, "Configuration:\n")
	fmt.Fprintf(out, "  Tile size: %d\n", cfg.TileSize)
	fmt.Fprintf(out, "  Format: %s\n", cfg.Suffix)
	fmt.Fprintf(out, "  JPEG quality: %d\n", cfg.JPEGQuality)
	fmt.Fprintf(out, "  Workers: %d\n", cfg.Concurrency)
	fmt.Fprintf(out, "  Keep tiles: %s\n", keep)
	fmt.Fprintf(out, "\nProcessing %d images...\n\n", len(jobs))

	reporter := service.NewReporter(out, errOut)
	tiler := vips.NewTiler(vips.Options{
		Binary:      cfg.VipsBinary,
		TileSize:    cfg.TileSize,
		Suffix:      cfg.Suffix,
		JPEGQuality: cfg.JPEGQuality,
	})
	packer := pack.NewPacker(localfs.NewLister(), pack.NewGzipCompressor())
	runner := service.NewRunner(tiler, packer, reporter, cfg.TileSize, cfg.KeepTiles)
	scheduler := service.NewScheduler(runner)

	summary, failures := scheduler.Run(cmd.Context(), jobs, cfg.Concurrency)

	fmt.Fprintf(out, "\nCompleted: %d/%d images\n", summary.Succeeded, summary.Total)
	if summary.Failed > 0 {
		fmt.Fprintf(errOut, "Warning: %d images failed to process\n", summary.Failed)
		return failures
	}
	fmt.Fprintln(out, "All images processed successfully!")
	return nil
}
