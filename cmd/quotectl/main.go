// Package main is quotectl, a local companion to the submission service: it
// runs the same extractors on a file so users can preview what an upload
// will store.
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
