// Command menet assembles growth-coupled process networks from YAML model
// definitions, validates them and writes snapshots or exports.
package main

import (
	"context"
	"fmt"
	"os"
)

var exitFunc = os.Exit

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		exitFunc(1)
	}
}
