package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/h1w0xxx/molrec/internal/molecule"
	"github.com/h1w0xxx/molrec/internal/sdf"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a molfile or SD file and print its atoms and bonds",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("chiral", false, "Also list chiral carbons")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	chiral, _ := cmd.Flags().GetBool("chiral")

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening molfile: %w", err)
	}
	defer f.Close()

	mols, errs := sdf.ReadSDF(f, parseOptions())
	out := cmd.OutOrStdout()
	for i, mol := range mols {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if chiral {
			molecule.Hydrogenate(mol)
		}
		printMolecule(out, mol, chiral)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func printMolecule(out io.Writer, mol *molecule.Molecule, chiral bool) {
	fmt.Fprintf(out, "%s: %d atoms, %d bonds\n", mol.Name, len(mol.Atoms), len(mol.Bonds))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tELEMENT\tX\tY\tZ\tCHARGE\tMASS")
	for i, a := range mol.Atoms {
		charge := fmt.Sprint(a.Charge)
		if a.Radical {
			charge = "radical"
		}
		fmt.Fprintf(tw, "%d\t%s\t%.4f\t%.4f\t%.4f\t%s\t%d\n", i+1, a.Element, a.X, a.Y, a.Z, charge, a.MassDifference)
	}
	tw.Flush()

	tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FROM\tTO\tORDER")
	for _, b := range mol.Bonds {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", b.From+1, b.To+1, b.Order)
	}
	tw.Flush()

	if chiral {
		centres := molecule.ChiralCarbons(mol)
		for i := range centres {
			centres[i]++
		}
		fmt.Fprintf(out, "chiral carbons: %v\n", centres)
	}
}
