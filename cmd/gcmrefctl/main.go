// Command gcmrefctl is a thin CLI wrapper around the gcm/packet reference
// engine: it exercises one packet operation or the H-subkey probe from the
// command line, for manual checks against a verification harness.
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
