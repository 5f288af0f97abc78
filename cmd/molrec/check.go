package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/h1w0xxx/molrec/internal/mdl"
	"github.com/h1w0xxx/molrec/internal/molecule"
)

var checkAtomCmd = &cobra.Command{
	Use:   "check-atom <line>",
	Short: "Parse a single atom block line and print its fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckAtom,
}

var checkBondCmd = &cobra.Command{
	Use:   "check-bond <line>",
	Short: "Parse a single bond block line and print its fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckBond,
}

func init() {
	checkBondCmd.Flags().Int("atoms", 999, "Atom count the bond indices are checked against")
	rootCmd.AddCommand(checkAtomCmd, checkBondCmd)
}

func runCheckAtom(cmd *cobra.Command, args []string) error {
	rec, err := mdl.ParseAtom(args[0])
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer tw.Flush()
	row := func(k string, v any) { fmt.Fprintf(tw, "%s\t%v\n", k, v) }

	row("dialect", rec.Dialect)
	row("symbol", rec.Symbol)
	row("x", rec.X)
	row("y", rec.Y)
	row("z", rec.Z)
	row("mass difference", rec.MassDifference)
	row("charge code", rec.ChargeCode)
	row("stereo parity", rec.StereoParity)
	row("hydrogen count", rec.HydrogenCount)
	row("stereo care", rec.StereoCareBox)
	row("valence", rec.Valence)
	row("H0 designator", rec.H0Designator)
	row("atom map", rec.AtomMap)
	row("inversion", rec.Inversion)
	row("exact change", rec.ExactChange)

	if atom, err := rec.CreateAtom(molecule.Factory{}); err != nil {
		row("atom", err)
	} else {
		row("atom", fmt.Sprintf("%s (Z=%d) charge %d radical %t", atom.Element, atom.AtomicNumber, atom.Charge, atom.Radical))
	}
	return nil
}

func runCheckBond(cmd *cobra.Command, args []string) error {
	atoms, _ := cmd.Flags().GetInt("atoms")
	p := mdl.BondParser{
		AllowSelfBonds: viper.GetBool("allow_self_bonds"),
		Logger:         slog.Default(),
	}
	rec, err := p.Parse(args[0], atoms)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer tw.Flush()
	row := func(k string, v any) { fmt.Fprintf(tw, "%s\t%v\n", k, v) }

	row("dialect", rec.Dialect)
	row("atom 1", rec.Atom1+1)
	row("atom 2", rec.Atom2+1)
	row("type", rec.TypeCode)
	row("stereo", rec.Stereo)
	row("topology", rec.Topology)
	row("reacting center", rec.ReactingCenter)
	row("molecule order", rec.BondOrderForMolecule())
	if q, err := rec.BondOrderForQuery(); err != nil {
		row("query order", err)
	} else {
		row("query order", q)
	}
	return nil
}
