// Command simulate replays an SWF-like job trace through one of the
// registered scheduling policies and reports the resulting makespan,
// wait-time statistics, and cluster utilisation.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
