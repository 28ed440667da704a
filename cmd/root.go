// Package cmd is for command line interactions with the smap application
package cmd

import (
	"log"
	"os"
	"strings"

	"github.com/jjtimmons/smap/config"
	"github.com/jjtimmons/smap/internal/command"
	"github.com/jjtimmons/smap/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "smap",
	Short: `Map coordinates between the sequence objects of a genome database.
Children, parents, alignments and exons are stitched into one coordinate system`,
	Version:           "0.1.0",
	PersistentPreRunE: readSettings,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	RootCmd.PersistentFlags().StringP("store", "s", "", "YAML object store")
	RootCmd.PersistentFlags().StringSliceP("dna", "d", nil, "comma separated list of FASTA files with object DNA")
	RootCmd.PersistentFlags().String("settings", config.RootSettingsFile, "settings file")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "log objects left out of each map")

	viper.BindPFlag("store", RootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("dna", RootCmd.PersistentFlags().Lookup("dna"))
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())
}

// readSettings merges the settings file into Viper before any command runs.
func readSettings(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("settings")
	if err != nil {
		return err
	}
	return config.Read(viper.GetViper(), path)
}

// loadStore reads the object store and DNA named in the settings.
func loadStore(conf *config.Config) *store.Mem {
	if conf.Store == "" {
		stderr.Fatal("no object store: set --store, SMAP_STORE or store in the settings file")
	}

	st, err := store.LoadYAML(conf.Store)
	if err != nil {
		stderr.Fatal(err)
	}
	if err := st.LoadFASTA(conf.DNA...); err != nil {
		stderr.Fatal(err)
	}
	return st
}

// newRunner builds a Runner on the configured store that prints to cmd's output.
func newRunner(cmd *cobra.Command) (*command.Runner, *config.Config) {
	conf, err := config.New()
	if err != nil {
		stderr.Fatal(err)
	}

	return &command.Runner{
		Store:   loadStore(conf),
		Out:     cmd.OutOrStdout(),
		Verbose: conf.Verbose,
		Dump:    dumpOptions(conf),
	}, conf
}
