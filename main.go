// Package main provides the entry point for pmicdump.
// pmicdump decodes and edits PMIC register dumps.
//
// For the full CLI, use: go run ./cmd/pmicdump
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("pmicdump - PMIC register dump decoder")
	fmt.Println("")
	fmt.Println("Usage: pmicdump [options] <dump.bin>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -defs         Path to register definition document (JSON or YAML)")
	fmt.Println("  -config       Path to classification configuration JSON file")
	fmt.Println("  -changed      Only print changed registers")
	fmt.Println("  -set          Edit a register: addr=value or addr=field=text")
	fmt.Println("  -reset        Reset a register to its default")
	fmt.Println("  -o            Write the edited dump")
	fmt.Println("  -compare      Compare against another dump")
	fmt.Println("  -export-defs  Write the active definitions")
	fmt.Println("  -v            Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/pmicdump' for the full CLI, or './cmd/defcheck' to lint definitions.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/pmicdump' instead.")
	}
}
