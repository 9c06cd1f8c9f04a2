// Package main provides defcheck, a linter for register definition documents.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/pmicdump/fileio"
	"github.com/sarchlab/pmicdump/regmap"
)

var quiet = flag.Bool("q", false, "Only set the exit status")

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: defcheck [options] <defs.json|defs.yaml>...\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	store := fileio.OSStore{}
	failed := false
	for _, path := range flag.Args() {
		if !check(store, path) {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func check(store fileio.Store, path string) bool {
	data, err := store.ReadBytes(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return false
	}

	doc, err := regmap.ParseDocument(data, regmap.FormatFromPath(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return false
	}

	issues := regmap.Lint(doc)
	if *quiet {
		return len(issues) == 0
	}

	for _, issue := range issues {
		fmt.Printf("%s: %s\n", path, issue)
	}
	if len(issues) == 0 {
		fmt.Printf("%s: %d registers, ok\n", path, len(doc.Registers))
		return true
	}

	fmt.Printf("%s: %d issues\n", path, len(issues))
	return false
}
