package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "qrcodegen",
	Short: "Encode text into QR Code symbols",
}

// Execute runs the root command, printing any error to stderr and exiting
// with a non-zero status.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ~/.qrcodegen/config.yaml)")
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".qrcodegen/config.yaml"
	}
	return home + "/.qrcodegen/config.yaml"
}
