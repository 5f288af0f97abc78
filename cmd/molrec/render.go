package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/h1w0xxx/molrec/internal/molecule"
	"github.com/h1w0xxx/molrec/internal/render"
	"github.com/h1w0xxx/molrec/internal/sdf"
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a molfile to PNG with chiral carbons highlighted",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringP("output", "o", "molecule.png", "Output PNG path")
	renderCmd.Flags().Int("size", 600, "Longest image side in pixels")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	size, _ := cmd.Flags().GetInt("size")

	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading molfile: %w", err)
	}
	mol, err := sdf.ParseMolBlock(string(text), parseOptions())
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}
	molecule.Hydrogenate(mol)

	chiral := molecule.ChiralCarbons(mol)
	cols, rows := render.AutoGrid(len(chiral))
	cfg, err := render.NewConfig(mol, size, cols, rows)
	if err != nil {
		return err
	}
	cfg.FontPath = viper.GetString("font")
	for _, idx := range chiral {
		cfg.Highlight[idx] = true
	}

	img, _, err := render.PNG(mol, cfg)
	if err != nil {
		return fmt.Errorf("drawing molecule: %w", err)
	}
	if err := os.WriteFile(output, img, 0o644); err != nil {
		return err
	}
	slog.Info("rendered molecule", "name", mol.Name, "output", output, "chiral", len(chiral))
	for _, idx := range chiral {
		fmt.Fprintf(cmd.OutOrStdout(), "chiral carbon %d in %s\n", idx+1, cfg.Region(mol, idx))
	}
	return nil
}
