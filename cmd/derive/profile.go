package main

import (
	"os"
	"runtime/pprof"
)

// startProfile collects a CPU profile into path until the returned stop is called.
// The profile can be fed back to the compiler as default.pgo.
func startProfile(path string) (stop func() error, err error) {
	if path == "" {
		return func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() error {
		pprof.StopCPUProfile()
		return f.Close()
	}, nil
}
