package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prochem/flowsim"
	"github.com/prochem/flowsim/pkg/loader"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the flowsheet for consistency",
	Long:  `Loads the plant definition and reports dangling stream references, units missing from the calculation order, contested stream ownership and unresolved parameter files.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Flowsheet is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	if !cmd.Flags().Changed("dir") && len(args) > 0 {
		dir = args[0]
	}

	plant, err := loader.LoadPlant(dir)
	if err != nil {
		return err
	}

	return flowsim.Validate(plant.Topology, plant.Parameters)
}
