// liftplan is a lifted relational planner: it loads a YAML planning
// problem, searches for a plan with greedy best-first search over the
// relational successor engine, and optionally archives the run.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"liftplan/internal/config"
	"liftplan/internal/database"
	"liftplan/internal/heuristic"
	"liftplan/internal/logging"
	"liftplan/internal/search"
	"liftplan/internal/store"
	"liftplan/internal/successor"
	"liftplan/internal/task"
)

var (
	cfgPath       string
	verbose       bool
	heuristicName string
	joinOrder     string
	workers       int
	maxExpansions int
	timeout       time.Duration
	noArchive     bool
	historyLimit  int

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "liftplan",
	Short: "liftplan - a lifted relational planner",
	Long: `liftplan searches symbolic planning problems without grounding them first.

Action schemas are instantiated on demand by a small relational query
engine: each applicability query is a join over the relations touched by
the schema's preconditions, and successors are produced as immutable
state values.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		applyFlags(cmd)
		if verbose {
			cfg.Logging.Level = "debug"
			cfg.Logging.Development = true
		}
		return logging.Initialize(cfg.Logging.Level, cfg.Logging.Development)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

var solveCmd = &cobra.Command{
	Use:   "solve [problem.yaml]",
	Short: "Search for a plan solving the given problem",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

var historyCmd = &cobra.Command{
	Use:   "history [problem-name]",
	Short: "Show archived runs from the plan store",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

// applyFlags overlays explicitly set flags onto the loaded config.
func applyFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("heuristic") {
		cfg.Search.Heuristic = heuristicName
	}
	if cmd.Flags().Changed("join-order") {
		cfg.Search.JoinOrder = joinOrder
	}
	if cmd.Flags().Changed("workers") {
		cfg.Search.Workers = workers
	}
	if cmd.Flags().Changed("max-expansions") {
		cfg.Search.MaxExpansions = maxExpansions
	}
	if cmd.Flags().Changed("no-archive") && noArchive {
		cfg.Store.Enabled = false
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	log := logging.Get(logging.CategoryBoot)

	t, err := task.Load(args[0])
	if err != nil {
		return err
	}

	h, err := heuristic.New(cfg.Search.Heuristic, t)
	if err != nil {
		return err
	}
	order, err := database.NewOrderStrategy(cfg.Search.JoinOrder)
	if err != nil {
		return err
	}
	gen := successor.New(t, order)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.Infow("starting search",
		"problem", t.Name,
		"heuristic", h.Name(),
		"join_order", order.Name(),
		"workers", cfg.Search.Workers)

	start := time.Now()
	result, err := search.Greedy(ctx, gen, h, search.Options{
		MaxExpansions: cfg.Search.MaxExpansions,
		Workers:       cfg.Search.Workers,
	})
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	if !result.Solved {
		fmt.Printf("no plan found (%d expansions, %s)\n", result.Expansions, elapsed.Round(time.Millisecond))
	} else {
		fmt.Printf("plan found: %d steps (%d expansions, %s)\n", len(result.Plan), result.Expansions, elapsed.Round(time.Millisecond))
		for i, step := range result.Plan {
			fmt.Printf("%3d. %s", i+1, step.Schema)
			for _, a := range step.Arguments {
				fmt.Printf(" %s", a)
			}
			fmt.Println()
		}
	}

	if cfg.Store.Enabled {
		archive, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer archive.Close()
		id, err := archive.Record(store.Run{
			Problem:    t.Name,
			Heuristic:  h.Name(),
			JoinOrder:  order.Name(),
			Solved:     result.Solved,
			Expansions: result.Expansions,
			Generated:  result.Generated,
			Plan:       result.Plan,
			WallTime:   elapsed,
		})
		if err != nil {
			return err
		}
		log.Infow("run archived", "id", id, "path", archive.Path())
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	problem := ""
	if len(args) == 1 {
		problem = args[0]
	}
	archive, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer archive.Close()

	runs, err := archive.History(problem, historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no archived runs")
		return nil
	}
	for _, r := range runs {
		status := "unsolved"
		if r.Solved {
			status = fmt.Sprintf("%d steps", r.PlanLength)
		}
		fmt.Printf("%s  %-20s %-10s %-15s %-10s %6d exp  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Problem, r.Heuristic, r.JoinOrder, status, r.Expansions,
			r.WallTime.Round(time.Millisecond))
	}
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	solveCmd.Flags().StringVar(&heuristicName, "heuristic", "goalcount", "heuristic: blind or goalcount")
	solveCmd.Flags().StringVar(&joinOrder, "join-order", "smallest-first", "join order: declared or smallest-first")
	solveCmd.Flags().IntVar(&workers, "workers", 1, "parallel heuristic evaluation workers")
	solveCmd.Flags().IntVar(&maxExpansions, "max-expansions", 0, "stop after this many expansions (0 = unbounded)")
	solveCmd.Flags().DurationVar(&timeout, "timeout", 0, "abort the search after this duration (0 = none)")
	solveCmd.Flags().BoolVar(&noArchive, "no-archive", false, "do not record the run in the plan store")

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to show")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
