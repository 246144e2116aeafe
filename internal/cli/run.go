package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/prochem/flowsim"
	"github.com/prochem/flowsim/internal/presentation/tui"
	redisstore "github.com/prochem/flowsim/pkg/adapters/redis"
	"github.com/prochem/flowsim/pkg/domain"
)

// RunOptions control a solve session.
type RunOptions struct {
	Debug bool
	Quiet bool
	JSON  bool

	// Tolerance and MaxPasses override solver defaults when positive.
	Tolerance float64
	MaxPasses int

	// Steps and DtHours drive an optional dynamic trajectory after the
	// steady-state solve.
	Steps   int
	DtHours float64

	// RedisAddr enables snapshot persistence; RunID keys the entry.
	RedisAddr string
	RunID     string
}

// RunSolve loads a plant, solves it to steady state and reports the
// result. With Steps set it then walks a dynamic trajectory from the
// converged state.
func RunSolve(plantDir string, opts RunOptions) error {
	if !opts.Quiet && !opts.JSON {
		tui.PrintBanner()
	}

	logger := createLogger(opts.Debug)

	engineOpts := []flowsim.Option{
		flowsim.WithLogger(logger),
		flowsim.WithLifecycleHooks(createDebugHooks(logger)),
	}
	if opts.Tolerance > 0 {
		engineOpts = append(engineOpts, flowsim.WithTolerance(opts.Tolerance))
	}
	if opts.MaxPasses > 0 {
		engineOpts = append(engineOpts, flowsim.WithMaxPasses(opts.MaxPasses))
	}

	eng, err := flowsim.New(plantDir, engineOpts...)
	if err != nil {
		return err
	}

	sc := NewSignalContext(context.Background())
	defer sc.Cancel()

	result, err := eng.Solve(sc)
	if err != nil {
		var conv *domain.ConvergenceFailure
		if errors.As(err, &conv) && !opts.JSON {
			tui.NewReport(os.Stdout).RenderFailure(conv)
		}
		return err
	}

	if err := report(result, opts); err != nil {
		return err
	}

	for step := 1; step <= opts.Steps; step++ {
		if sc.Err() != nil {
			printSystemMessage("interrupted at step %d (%v)", step, sc.Signal())
			break
		}
		result, err = eng.Advance(sc, opts.DtHours)
		if err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
		if opts.JSON {
			if err := report(result, opts); err != nil {
				return err
			}
		} else if !opts.Quiet {
			printSystemMessage("t = %.3f h, residual %.3e", float64(step)*opts.DtHours, result.Residual)
		}
	}

	if opts.RedisAddr != "" {
		store := redisstore.New(opts.RedisAddr, "", 0)
		defer store.Close()
		runID := opts.RunID
		if runID == "" {
			runID = eng.Name
		}
		if err := store.Save(context.Background(), runID, eng.Snapshot()); err != nil {
			return fmt.Errorf("failed to persist snapshot: %w", err)
		}
		if !opts.Quiet && !opts.JSON {
			printSystemMessage("snapshot saved as %q", runID)
		}
	}

	return nil
}

func report(result *domain.Result, opts RunOptions) error {
	if opts.JSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	if !opts.Quiet {
		tui.NewReport(os.Stdout).Render(result)
	}
	return nil
}
