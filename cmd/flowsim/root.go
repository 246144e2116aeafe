package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flowsim",
	Short: "Flowsim is a sequential-modular chemical flowsheet solver",
	Long:  `Flowsim simulates continuous chemical plants described as YAML flowsheets, solving recycle loops to steady state and stepping dynamics forward in time.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the plant definition")
}
