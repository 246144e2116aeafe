/*
Package flowsim is a sequential-modular flowsheet solver for continuous
chemical processes. It simulates a plant as a directed graph of unit
operations exchanging material streams through a shared registry, and
iterates the declared calculation order until recycle loops converge.

# Concept

A flowsheet declares three things: streams (with optional seed states),
unit operations (splitters, joins, reactors, heat exchangers, separators,
strippers, compressors), and a calculation order. Each pass, the solver
replays the order literally; a recycle mixer may appear twice so the loop
closes within a single sweep. Streams start unknown unless seeded, and the
unknown state propagates through the graph until the recycle tear streams
settle. The solve converges when the largest stream change between
successive passes stays below tolerance.

# Key Features

  - Sequential-modular solving: each unit is a self-contained model reading
    its inlets and writing its outlets, with single-writer ownership
    enforced by the stream registry.
  - Steady state and dynamics: Solve iterates to convergence, Advance steps
    the current state forward in time.
  - Data-driven plants: flowsheet, unit parameters, component correlations
    and reaction kinetics all load from YAML.
  - Deterministic execution: the same seeded topology always produces the
    same converged state.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/prochem/flowsim"
	)

	func main() {
		// Load the plant definition (flowsheet.yaml, components/, reactions/)
		eng, err := flowsim.New("./my-plant")
		if err != nil {
			log.Fatal(err)
		}

		result, err := eng.Solve(context.Background())
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("converged in %d iterations (residual %.2e)\n",
			result.Iterations, result.Residual)
		for name, stream := range result.Streams {
			fmt.Printf("%-24s %8.2f kmol/h  %6.1f K\n",
				name, stream.Flow, stream.Temperature)
		}
	}
*/
package flowsim
