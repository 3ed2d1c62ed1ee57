package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"m68kmem/emu/log"
	"m68kmem/hw/bus"
	"m68kmem/hw/report"
	"m68kmem/hw/trace"
	"m68kmem/scenario"
)

// scenarioRun holds the buffered output of a single scenario.
type scenarioRun struct {
	trace  bytes.Buffer
	out    bytes.Buffer
	events int
	failed bool
}

// runScenario runs f on its own bus, writing trace lines and results to run.
func runScenario(f *scenario.File, cfg Config, opts Output, run *scenarioRun) {
	var l bus.Listener = bus.ListenerFunc(func(bus.Event) { run.events++ })
	if opts.Trace != nil {
		l = bus.Multi(trace.New(&run.trace, cfg.Trace.flags(opts.Verbose)), l)
	}

	outcome := f.Run(cfg.busConfig(f.Name), l)
	run.failed = writeOutcome(&run.out, outcome, opts.JSON) > 0
	log.ModEmu.DebugZ("scenario run").
		String("scenario", f.Name).
		Int("events", run.events).
		Bool("failed", run.failed).
		End()
}

// writeOutcome prints the results of a scenario, followed by the region
// statistics, and returns the number of failures.
func writeOutcome(w io.Writer, o *scenario.Outcome, asJSON bool) int {
	fmt.Fprintf(w, "== %s\n", o.Name)
	nfail := 0
	for _, r := range o.Results {
		switch {
		case r.Failure != "":
			nfail++
			fmt.Fprintf(w, "  FAIL  %s: %s\n", r.What, r.Failure)
		case r.Err != nil:
			fmt.Fprintf(w, "  ok    %s (%s)\n", r.What, bus.KindOf(r.Err).String())
		default:
			fmt.Fprintf(w, "  ok    %s\n", r.What)
		}
	}
	fmt.Fprintf(w, "  %d results, %d failures, %d bus faults\n", len(o.Results), nfail, o.Faults.Count)

	rep := report.FromBus(o.Bus)
	var err error
	if asJSON {
		err = rep.WriteJSON(w)
	} else {
		err = rep.WriteText(w)
	}
	if err != nil {
		log.ModEmu.ErrorZ("failed to write report").Error("err", err).End()
	}
	return nfail
}

// runMain runs all scenario files given on the command line, in parallel,
// each on its own bus. Output is printed in command line order.
func runMain(args Run, cfg Config) int {
	if args.Trace != nil {
		defer args.Trace.Close()
	}

	runs := make([]scenarioRun, len(args.Scenarios))
	loadErrs := make([]error, len(args.Scenarios))

	var g errgroup.Group
	jobs := args.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	g.SetLimit(jobs)

	for i, path := range args.Scenarios {
		g.Go(func() error {
			f, err := scenario.Load(path)
			if err != nil {
				loadErrs[i] = err
				return err
			}
			runScenario(f, cfg, args.Output, &runs[i])
			return nil
		})
	}
	werr := g.Wait()

	exitcode := 0
	for i := range runs {
		if loadErrs[i] != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", loadErrs[i])
			exitcode = 1
			continue
		}
		if args.Trace != nil {
			args.Trace.Write(runs[i].trace.Bytes())
		}
		os.Stdout.Write(runs[i].out.Bytes())
		if runs[i].failed {
			exitcode = 1
		}
	}

	if werr != nil {
		log.ModEmu.DebugZ("some scenarios could not be loaded").Error("first", werr).End()
	}
	return exitcode
}
