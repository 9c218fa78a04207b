// Command cloudpulse is the cloudpulse CLI: a one-shot AWS cost/security
// audit (`cloudpulse audit`) and a long-running telemetry + audit HTTP
// service (`cloudpulse serve`).
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
