package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prochem/flowsim/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Solve the flowsheet to steady state",
	Long:  `Loads the plant definition, iterates the calculation order until the recycle loops converge, and prints the resulting stream table. With --steps it then walks a dynamic trajectory from the converged state.`,
	Run: func(cmd *cobra.Command, args []string) {
		plantDir, _ := cmd.Flags().GetString("dir")
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			plantDir = args[0]
		}

		opts := cli.RunOptions{}
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Tolerance, _ = cmd.Flags().GetFloat64("tolerance")
		opts.MaxPasses, _ = cmd.Flags().GetInt("max-passes")
		opts.Steps, _ = cmd.Flags().GetInt("steps")
		opts.DtHours, _ = cmd.Flags().GetFloat64("dt")
		opts.RedisAddr, _ = cmd.Flags().GetString("redis")
		opts.RunID, _ = cmd.Flags().GetString("run-id")

		if opts.Steps > 0 && opts.DtHours <= 0 {
			fmt.Println("Error: --steps requires a positive --dt.")
			os.Exit(1)
		}

		if err := cli.RunSolve(plantDir, opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("debug", false, "Log solver passes to stderr")
	runCmd.Flags().BoolP("quiet", "q", false, "Suppress the banner and stream table")
	runCmd.Flags().Bool("json", false, "Emit results as JSON instead of a table")
	runCmd.Flags().Float64("tolerance", 0, "Convergence tolerance (0 uses the default)")
	runCmd.Flags().Int("max-passes", 0, "Pass cap per solve (0 uses the default)")
	runCmd.Flags().Int("steps", 0, "Number of dynamic steps after the steady-state solve")
	runCmd.Flags().Float64("dt", 0, "Dynamic step size in hours")
	runCmd.Flags().String("redis", "", "Redis address for snapshot persistence")
	runCmd.Flags().String("run-id", "", "Snapshot key (defaults to the plant name)")

	// Make 'run' the default if no command is provided
	rootCmd.Run = runCmd.Run
}
