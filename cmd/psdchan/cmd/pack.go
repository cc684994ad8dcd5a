package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/psdpack/psdpack/channel"
)

// packCmd represents the pack command
var packCmd = &cobra.Command{
	Use:   "pack <input> <output>",
	Short: "Compress a raw channel dump",
	Long: `Compress a raw row-major channel dump into the framed form stored
inside PSD files: the big-endian row-length table followed by one
PackBits stream per row.

Example:
  psdchan pack --height 600 --width 800 channel.raw channel.rle`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		height, width, bytesPerSample, version, err := dimensions(cmd)
		if err != nil {
			return err
		}
		predict, _ := cmd.Flags().GetBool("predict")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		if predict {
			if bytesPerSample > 2 {
				return fmt.Errorf("--predict supports 8- and 16-bit samples only")
			}
			if err := channel.EncodePredictionRows(data, width, bytesPerSample); err != nil {
				return err
			}
		}

		compressed, err := channel.EncodeImage(data, height, width, bytesPerSample, version)
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[1], compressed, 0644); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d -> %d bytes (%.1f%%)\n",
			args[1], len(data), len(compressed),
			float64(len(compressed))/float64(max(len(data), 1))*100)
		return nil
	},
}

func init() {
	packCmd.Flags().Bool("predict", false, "apply the per-row delta transform before compressing")
	rootCmd.AddCommand(packCmd)
}
