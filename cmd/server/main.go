package main

import (
	"context"
	"fmt"
	"os"
)

// main wires the CLI. Business logic lives in internal packages; cmd/server
// only builds dependencies and the server lifecycle.
func main() {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
