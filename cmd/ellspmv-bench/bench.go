package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ellkernel/ellspmv"
	"github.com/ellkernel/ellspmv/ellmat"
	"github.com/ellkernel/ellspmv/hwy"
	"github.com/ellkernel/ellspmv/hwy/contrib/workerpool"
	"github.com/spf13/cobra"
)

var (
	benchRows    int
	benchCols    int
	benchK       int
	benchR       int
	benchThreads []int
	benchIters   int
	benchAtomic  bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run Spmv over a random matrix across thread counts and report throughput",
	Run: func(cmd *cobra.Command, args []string) {
		runBench()
	},
}

func init() {
	benchCmd.Flags().IntVar(&benchRows, "rows", 4096, "row count")
	benchCmd.Flags().IntVar(&benchCols, "cols", 4096, "column count")
	benchCmd.Flags().IntVar(&benchK, "k", 8, "non-zeros per row")
	benchCmd.Flags().IntVar(&benchR, "r", 1, "RHS width")
	benchCmd.Flags().IntSliceVar(&benchThreads, "threads", []int{1, 2, 4, 8}, "worker counts to sweep")
	benchCmd.Flags().IntVar(&benchIters, "iters", 20, "iterations per thread count")
	benchCmd.Flags().BoolVar(&benchAtomic, "atomic-demo", false, "also time ParallelForAtomicBatched as a work-stealing comparison baseline")
	rootCmd.AddCommand(benchCmd)
}

func runBench() {
	logger.Info("generating matrix", "rows", benchRows, "cols", benchCols, "k", benchK, "r", benchR,
		"dispatch", hwy.CurrentName(), "width", hwy.CurrentWidth())

	rng := rand.New(rand.NewSource(1))
	a := randomMatrix(rng, benchRows, benchCols, benchK)
	b := randomRHS(rng, benchCols, benchR)
	c := ellmat.NewDense[float64](benchRows, benchR)

	for _, workers := range benchThreads {
		exec := ellspmv.NewExecutor(workers)
		start := time.Now()
		for i := 0; i < benchIters; i++ {
			ellspmv.Spmv(exec, a, b, c)
		}
		elapsed := time.Since(start)
		exec.Close()

		flops := 2.0 * float64(benchRows) * float64(benchK) * float64(benchR) * float64(benchIters)
		gflops := flops / elapsed.Seconds() / 1e9
		logger.Info("bench result", "workers", workers, "elapsed", elapsed, "gflops", gflops)
		fmt.Printf("workers=%-3d elapsed=%-12s gflops=%.3f\n", workers, elapsed, gflops)
	}

	if benchAtomic {
		pool := workerpool.New(0)
		defer pool.Close()
		elapsed := atomicWorkStealingDemo(pool, benchRows)
		logger.Info("atomic work-stealing baseline", "rows", benchRows, "elapsed", elapsed)
		fmt.Printf("atomic-demo rows=%-8d elapsed=%s\n", benchRows, elapsed)
	}
}

// atomicWorkStealingDemo exercises workerpool's ParallelForAtomicBatched as
// a comparison baseline against the static ParallelFor partition the
// dispatcher actually uses.
func atomicWorkStealingDemo(pool *workerpool.Pool, n int) time.Duration {
	start := time.Now()
	pool.ParallelForAtomicBatched(n, 64, func(start, end int) {
		for i := start; i < end; i++ {
			_ = i * i
		}
	})
	return time.Since(start)
}
