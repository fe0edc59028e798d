// Package main is the flightsearch command: the web server plus a few
// subcommands that query the flight API from the terminal.
// Its responsibility is wiring dependencies together. No business logic belongs here.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pkordes/flight-search/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "flightsearch",
	Short: "Flight search web app and command-line client",
	Long: `flightsearch serves the flight search web UI and its JSON API.

Configuration comes from environment variables (RAPIDAPI_KEY, PORT, ...),
from flightsearch.yaml in the working directory, or from flags. Flags win
over the environment, which wins over the file.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./flightsearch.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error")
	_ = viper.BindPFlag("LOG_LEVEL", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("flightsearch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads the application config through viper, so every key can
// come from a flag, the environment or the config file.
func loadConfig() (config.Config, error) {
	return config.LoadFrom(viper.GetString)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
