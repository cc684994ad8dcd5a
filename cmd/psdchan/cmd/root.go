package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/psdpack/psdpack/channel"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "psdchan",
	Short: "Pack and unpack raw Photoshop channel data",
	Long: `psdchan applies the PSD row-framed PackBits codec to raw channel
dumps: a pack'd file is the per-row length table followed by the
compressed rows, exactly as stored inside a PSD or PSB file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Int("height", 0, "channel height in rows")
	rootCmd.PersistentFlags().Int("width", 0, "channel width in samples")
	rootCmd.PersistentFlags().Int("depth", 8, "bits per sample (8, 16 or 32)")
	rootCmd.PersistentFlags().Bool("psb", false, "use PSB (large document) 4-byte row-length fields")
}

// dimensions reads the shared geometry flags and derives bytes per sample
// and the format version.
func dimensions(cmd *cobra.Command) (height, width, bytesPerSample int, v channel.Version, err error) {
	height, _ = cmd.Flags().GetInt("height")
	width, _ = cmd.Flags().GetInt("width")
	depth, _ := cmd.Flags().GetInt("depth")
	psb, _ := cmd.Flags().GetBool("psb")

	if height <= 0 || width <= 0 {
		return 0, 0, 0, 0, fmt.Errorf("--height and --width are required and must be positive")
	}
	switch depth {
	case 8, 16, 32:
	default:
		return 0, 0, 0, 0, fmt.Errorf("unsupported depth %d: must be 8, 16 or 32", depth)
	}

	v = channel.PSD
	if psb {
		v = channel.PSB
	}
	return height, width, depth / 8, v, nil
}
