package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/psdpack/psdpack/channel"
)

// unpackCmd represents the unpack command
var unpackCmd = &cobra.Command{
	Use:   "unpack <input> <output>",
	Short: "Decompress a framed channel buffer",
	Long: `Decompress a framed channel buffer back into the raw row-major
dump of height*width samples.

Example:
  psdchan unpack --height 600 --width 800 channel.rle channel.raw`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		height, width, bytesPerSample, version, err := dimensions(cmd)
		if err != nil {
			return err
		}
		predict, _ := cmd.Flags().GetBool("predict")

		compressed, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		data, err := channel.DecodeParallel(compressed, height, width, bytesPerSample, version)
		if err != nil {
			return err
		}

		if predict {
			if bytesPerSample > 2 {
				return fmt.Errorf("--predict supports 8- and 16-bit samples only")
			}
			if err := channel.DecodePredictionRows(data, width, bytesPerSample); err != nil {
				return err
			}
		}

		return os.WriteFile(args[1], data, 0644)
	},
}

func init() {
	unpackCmd.Flags().Bool("predict", false, "reverse the per-row delta transform after decompressing")
	rootCmd.AddCommand(unpackCmd)
}
