// Command gritrun is a minimal demo driver: it loads a text mesh, runs
// the engine to convergence, and writes the result back out in the same
// grammar. It exists to exercise engine.Update end to end, in the spirit
// of the teacher's core/example_test.go runnable examples promoted to a
// small standalone main.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gritmesh/grit/engine"
	"github.com/gritmesh/grit/meshio"
	"github.com/gritmesh/grit/param"
	"github.com/gritmesh/grit/scheduler"
)

func main() {
	in := flag.String("in", "", "input text mesh path")
	out := flag.String("out", "", "output text mesh path")
	subdomains := flag.Int("subdomains", 1, "number of slab subdomains")
	maxIterations := flag.Int("max-iterations", 0, "scheduler iteration cap (0 = unbounded)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *in == "" || *out == "" {
		logger.Error("gritrun: -in and -out are required")
		os.Exit(2)
	}

	f, err := os.Open(*in)
	if err != nil {
		logger.Error("gritrun: open input", "error", err)
		os.Exit(1)
	}
	m, store, err := meshio.Load(f, logger)
	_ = f.Close()
	if err != nil {
		logger.Error("gritrun: load mesh", "error", err)
		os.Exit(1)
	}

	p := param.New(
		param.WithNumberOfSubdomains(*subdomains),
		param.WithMaxIterations("scheduler", *maxIterations),
	)

	eng := engine.New(m, store, logger)
	mon := &scheduler.CountMonitor{}
	if err := eng.Update(p, mon); err != nil {
		logger.Error("gritrun: update", "error", err)
		os.Exit(1)
	}
	logger.Info("gritrun: converged", "iterations", mon.Iterations, "operations", mon.Total)

	w, err := os.Create(*out)
	if err != nil {
		logger.Error("gritrun: create output", "error", err)
		os.Exit(1)
	}
	defer w.Close()
	if err := meshio.Write(w, eng.Mesh, eng.Store); err != nil {
		logger.Error("gritrun: write mesh", "error", err)
		os.Exit(1)
	}
}
