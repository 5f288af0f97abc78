package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/h1w0xxx/molrec/internal/sdf"
)

var indexCmd = &cobra.Command{
	Use:   "index <file.sdf>",
	Short: "Write the byte-offset index used to pick random molecules",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	offsets, err := sdf.BuildIndex(in)
	if err != nil {
		return fmt.Errorf("indexing %s: %w", args[0], err)
	}

	idxPath := sdf.IndexPath(args[0])
	out, err := os.Create(idxPath)
	if err != nil {
		return err
	}
	if err := sdf.WriteIndex(out, offsets); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d molecules\n", idxPath, len(offsets))
	return nil
}
