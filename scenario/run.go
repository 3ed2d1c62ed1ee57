package scenario

import (
	"fmt"

	"m68kmem/emu/log"
	"m68kmem/hw/bus"
)

// Result is the outcome of a single region registration or step.
type Result struct {
	What  string
	Value uint32
	Err   error

	// Failure describes the unmet expectation, empty on success.
	Failure string
}

type Outcome struct {
	Name    string
	Bus     *bus.Bus
	Results []Result

	// Faults accounts for all bus errors, expected or not. Step indices
	// stand in for the program counter.
	Faults bus.FaultState
}

// Failures returns the results whose expectations weren't met.
func (o *Outcome) Failures() []Result {
	var failed []Result
	for _, r := range o.Results {
		if r.Failure != "" {
			failed = append(failed, r)
		}
	}
	return failed
}

// Run creates a bus from cfg, overridden by the scenario bus section, maps the
// scenario regions and runs all steps. Bus events go to l, which may be nil.
//
// Unmet expectations don't stop the run, they are reported in the outcome.
func (f *File) Run(cfg bus.Config, l bus.Listener) *Outcome {
	if f.Bus.Extent != 0 {
		cfg.Extent = f.Bus.Extent
	}
	if f.Bus.MaxRegions != 0 {
		cfg.MaxRegions = f.Bus.MaxRegions
	}
	if cfg.Name == "" {
		cfg.Name = f.Name
	}

	b := bus.New(cfg)
	b.SetListener(l)

	out := &Outcome{Name: f.Name, Bus: b}
	var latch bus.FaultLatch

	for i, rs := range f.Regions {
		res := Result{What: fmt.Sprintf("map $%08X-$%08X", rs.Base, rs.End)}
		r, err := b.MapNamed(rs.Name, rs.Base, rs.End, rs.Writable)
		res.Err = err
		if err == nil && len(rs.Data) > 0 {
			res.Err = r.Load(0, rs.bytes())
		}
		res.Failure = checkErr(res.Err, rs.ExpectErr)
		out.add(res, i)
	}

	for i, s := range f.Steps {
		res := f.runStep(b, s)
		if latch.Raise(res.Err, uint32(i)) {
			latch.Acknowledge()
		}
		out.add(res, i)
	}

	out.Faults = latch.State()
	log.ModScenario.InfoZ("scenario done").
		String("scenario", f.Name).
		Int("results", len(out.Results)).
		Int("failures", len(out.Failures())).
		Uint("faults", uint64(out.Faults.Count)).
		End()
	return out
}

func (o *Outcome) add(res Result, idx int) {
	log.ModScenario.DebugZ(res.What).
		String("scenario", o.Name).
		Int("idx", idx).
		Hex32("val", res.Value).
		Error("err", res.Err).
		String("failure", res.Failure).
		End()
	o.Results = append(o.Results, res)
}

func (f *File) runStep(b *bus.Bus, s Step) Result {
	res := Result{What: s.String()}
	w := s.width()

	switch s.Op {
	case OpRead:
		res.Value, res.Err = b.Read(s.Addr, w)
	case OpPeek:
		res.Value, res.Err = b.Peek(s.Addr, w)
	case OpWrite:
		res.Err = b.Write(s.Addr, w, s.Value)
	case OpMove:
		res.Err = b.Move(s.Src, s.Dest, w, s.Count)
	}

	res.Failure = checkErr(res.Err, s.ExpectErr)
	if res.Failure == "" && s.Expect != nil && res.Err == nil && res.Value != *s.Expect {
		res.Failure = fmt.Sprintf("got $%X, want $%X", res.Value, *s.Expect)
	}
	return res
}

func checkErr(err error, want bus.ErrorKind) string {
	got := bus.KindOf(err)
	if got == want {
		return ""
	}
	if want == bus.Ok {
		return fmt.Sprintf("unexpected error: %v", err)
	}
	return fmt.Sprintf("got %s, want %s", got.String(), want.String())
}
