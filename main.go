package main

import (
	"fmt"
	"os"
)

const version = "v0.1.0"

func main() {
	args := parseArgs(os.Args[1:])
	if args.mode == versionMode {
		fmt.Println("m68kmem", version)
		return
	}

	cfg, err := LoadConfigOrDefault(args.Config)
	checkf(err, "failed to load configuration")

	switch args.mode {
	case demoMode:
		os.Exit(demoMain(args.Demo, cfg))
	case runMode:
		os.Exit(runMain(args.Run, cfg))
	}
}
