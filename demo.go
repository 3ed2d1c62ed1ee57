package main

import (
	"fmt"
	"os"

	"m68kmem/hw/bus"
	"m68kmem/scenario"
)

func u32(v uint32) *uint32 { return &v }

// demoScenario exercises reads and writes of all sizes, the usual failure
// cases and a block move.
var demoScenario = scenario.File{
	Name: "demo",
	// The expected outcomes assume a 24-bit bus, whatever the configuration.
	Bus: scenario.Bus{Extent: bus.DefaultExtent},
	Regions: []scenario.Region{
		{Name: "ram", Base: 0x1000, End: 0x1FFF, Writable: true},
		{Name: "rom", Base: 0x20, End: 0x2F, Data: []int{0x4E, 0x71, 0x4E, 0x75, 0x60, 0xFE, 0x13, 0x40}},
		{Name: "buf", Base: 0x40, End: 0x4F, Writable: true},
		{Name: "high", Base: 0xFFF000, End: 0x1000000, ExpectErr: bus.BusLimitExceeded},
	},
	Steps: []scenario.Step{
		{Op: scenario.OpWrite, Width: 8, Addr: 0x1000, Value: 0xAA},
		{Op: scenario.OpRead, Width: 8, Addr: 0x1000, Expect: u32(0xAA)},
		{Op: scenario.OpWrite, Width: 16, Addr: 0x1010, Value: 0xBBCC},
		{Op: scenario.OpRead, Width: 16, Addr: 0x1010, Expect: u32(0xBBCC)},
		{Op: scenario.OpWrite, Width: 32, Addr: 0x1020, Value: 0x13400000},
		{Op: scenario.OpRead, Width: 32, Addr: 0x1020, Expect: u32(0x13400000)},
		{Op: scenario.OpRead, Width: 32, Addr: 0xFFFFFFF0, ExpectErr: bus.ReservedRange},
		{Op: scenario.OpRead, Width: 16, Addr: 0x3000, ExpectErr: bus.Unmapped},
		{Op: scenario.OpRead, Width: 32, Addr: 0x1FFE, ExpectErr: bus.OutOfBounds},
		{Op: scenario.OpWrite, Width: 16, Addr: 0x20, Value: 0xFFFF, ExpectErr: bus.ReadOnlyViolation},
		{Op: scenario.OpRead, Width: 16, Addr: 0x20, Expect: u32(0x4E71)},
		{Op: scenario.OpMove, Width: 8, Src: 0x20, Dest: 0x40, Count: 8},
		{Op: scenario.OpRead, Width: 32, Addr: 0x44, Expect: u32(0x60FE1340)},
		{Op: scenario.OpMove, Width: 16, Src: 0x40, Dest: 0x20, Count: 4, ExpectErr: bus.ReadOnlyViolation},
	},
}

func demoMain(args Demo, cfg Config) int {
	if args.Trace != nil {
		defer args.Trace.Close()
	}

	fmt.Println("======================================")
	fmt.Println("M68K MEMORY VALIDATOR")
	fmt.Println("======================================")

	var run scenarioRun
	runScenario(&demoScenario, cfg, args.Output, &run)

	if args.Trace != nil {
		args.Trace.Write(run.trace.Bytes())
	}
	os.Stdout.Write(run.out.Bytes())

	if run.failed {
		return 1
	}
	return 0
}
