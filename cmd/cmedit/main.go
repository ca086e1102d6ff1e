// Command cmedit imports, edits and renders content models from the command
// line. Models travel as JSON on stdin/stdout so invocations can be piped.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
