package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prochem/flowsim"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of flowsim",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("flowsim version %s\n", strings.TrimSpace(flowsim.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
