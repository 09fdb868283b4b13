package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a round would use, as YAML.

The output includes --difficulty and --ghost overrides and can be saved
as ~/.tetris/configs/tetris.yaml to start customizing.

Examples:
  tetris config
  tetris config --difficulty hard > ~/.tetris/configs/tetris.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	exitOnError("loading config", err)

	out, err := cfg.YAML()
	exitOnError("encoding config", err)

	fmt.Print(string(out))
}
