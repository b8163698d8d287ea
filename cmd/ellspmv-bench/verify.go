package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/ellkernel/ellspmv"
	"github.com/ellkernel/ellspmv/ellmat"
	"github.com/spf13/cobra"
)

var (
	verifyRows      int
	verifyCols      int
	verifyK         int
	verifyR         int
	verifyWorkers   int
	verifyTolerance float64
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check Spmv against a naive reference over a random matrix",
	Run: func(cmd *cobra.Command, args []string) {
		runVerify()
	},
}

func init() {
	verifyCmd.Flags().IntVar(&verifyRows, "rows", 256, "row count")
	verifyCmd.Flags().IntVar(&verifyCols, "cols", 256, "column count")
	verifyCmd.Flags().IntVar(&verifyK, "k", 6, "non-zeros per row")
	verifyCmd.Flags().IntVar(&verifyR, "r", 1, "RHS width")
	verifyCmd.Flags().IntVar(&verifyWorkers, "workers", 0, "worker count (0 = GOMAXPROCS)")
	verifyCmd.Flags().Float64Var(&verifyTolerance, "tolerance", 1e-9, "max allowed abs difference vs the reference")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify() {
	rng := rand.New(rand.NewSource(1))
	a := randomMatrix(rng, verifyRows, verifyCols, verifyK)
	b := randomRHS(rng, verifyCols, verifyR)
	want := naiveSpmv(a, b)

	c := ellmat.NewDense[float64](verifyRows, verifyR)
	exec := ellspmv.NewExecutor(verifyWorkers)
	defer exec.Close()
	ellspmv.Spmv(exec, a, b, c)

	diff := maxAbsDiff(c, want)
	logger.Info("verify result", "rows", verifyRows, "cols", verifyCols, "k", verifyK, "r", verifyR, "maxAbsDiff", diff)

	if diff > verifyTolerance {
		fmt.Printf("FAIL: max abs diff %.3e exceeds tolerance %.3e\n", diff, verifyTolerance)
		os.Exit(1)
	}
	fmt.Printf("OK: max abs diff %.3e within tolerance %.3e\n", diff, verifyTolerance)
}
