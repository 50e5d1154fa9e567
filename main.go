package main

import (
	"context"
	"log"
	"os"
	"runtime/pprof"

	"github.com/lumipallolabs/anticipate/internal/cli"
	"github.com/lumipallolabs/anticipate/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Enable CPU profiling if CPUPROFILE env var is set
	if cpuProfile := os.Getenv("CPUPROFILE"); cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", cpuProfile)
	}
	defer logging.Close()

	return cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}
