package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/psdpack/psdpack/channel"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <input>",
	Short: "Show the row-length table of a framed channel buffer",
	Long: `Parse the row-length table of a framed channel buffer and report
per-row compressed sizes without decompressing any pixel data.

Example:
  psdchan info --height 600 channel.rle`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		height, _ := cmd.Flags().GetInt("height")
		psb, _ := cmd.Flags().GetBool("psb")
		if height <= 0 {
			return fmt.Errorf("--height is required and must be positive")
		}

		version := channel.PSD
		if psb {
			version = channel.PSB
		}

		compressed, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		lengths, err := channel.RowLengths(compressed, height, version)
		if err != nil {
			return err
		}

		tableSize := height * version.RowLengthSize()
		total := tableSize
		minLen, maxLen := lengths[0], lengths[0]
		for _, n := range lengths {
			total += n
			if n < minLen {
				minLen = n
			}
			if n > maxLen {
				maxLen = n
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "format:       %s\n", version)
		fmt.Fprintf(out, "rows:         %d\n", height)
		fmt.Fprintf(out, "table size:   %d bytes\n", tableSize)
		fmt.Fprintf(out, "row lengths:  min %d, max %d\n", minLen, maxLen)
		fmt.Fprintf(out, "declared:     %d bytes\n", total)
		fmt.Fprintf(out, "actual:       %d bytes\n", len(compressed))
		if total != len(compressed) {
			fmt.Fprintf(out, "warning: declared size does not match buffer size\n")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
