package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/h1w0xxx/molrec/internal/sdf"
)

var rootCmd = &cobra.Command{
	Use:          "molrec",
	Short:        "MDL molfile record parser",
	Long:         "molrec parses V2000 molfile atom and bond records, renders molecules and serves them over HTTP.",
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().Bool("allow-self-bonds", false, "Accept bonds from an atom to itself (they are dropped with a warning)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("font", "", "TrueType font for atom labels (default: built-in face)")

	_ = viper.BindPFlag("allow_self_bonds", rootCmd.PersistentFlags().Lookup("allow-self-bonds"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("font", rootCmd.PersistentFlags().Lookup("font"))
}

func initConfig() {
	viper.SetEnvPrefix("MOLREC")
	viper.AutomaticEnv()

	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// parseOptions builds reader options from the bound flags.
func parseOptions() sdf.Options {
	return sdf.Options{
		AllowSelfBonds: viper.GetBool("allow_self_bonds"),
		Logger:         slog.Default(),
	}
}
