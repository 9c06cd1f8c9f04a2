// Package main provides the pmicdump CLI.
// pmicdump decodes, edits and compares 256-byte PMIC register dumps.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/sarchlab/pmicdump/classify"
	"github.com/sarchlab/pmicdump/dump"
	"github.com/sarchlab/pmicdump/fileio"
	"github.com/sarchlab/pmicdump/regmap"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string {
	return strings.Join(*m, ",")
}

func (m *multiFlag) Set(s string) error {
	*m = append(*m, s)
	return nil
}

var (
	defsPath    = flag.String("defs", "", "Path to register definition document (JSON or YAML)")
	configPath  = flag.String("config", "", "Path to classification configuration JSON file")
	changedOnly = flag.Bool("changed", false, "Only print registers that differ from their default")
	outPath     = flag.String("o", "", "Write the edited dump to this path")
	comparePath = flag.String("compare", "", "Compare against another dump")
	exportDefs  = flag.String("export-defs", "", "Write the active definitions to this path")
	verbose     = flag.Bool("v", false, "Verbose output")

	sets   multiFlag
	resets multiFlag
)

func main() {
	flag.Var(&sets, "set", "Edit a register: addr=value or addr=field=text (repeatable)")
	flag.Var(&resets, "reset", "Reset a register to its default (repeatable)")
	flag.Parse()

	if flag.NArg() < 1 && *exportDefs == "" {
		fmt.Fprintf(os.Stderr, "Usage: pmicdump [options] <dump.bin>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	os.Exit(run())
}

func newLogger() logr.Logger {
	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{Verbosity: verbosity})
}

func run() int {
	logger := newLogger()
	store := fileio.OSStore{}
	ctx := context.Background()

	defs := regmap.NewLoader(*defsPath,
		regmap.WithStore(store),
		regmap.WithLogger(logger.WithName("regmap")),
	).GetOrLoad()
	if defs.Fallback != nil && *defsPath != "" {
		fmt.Fprintf(os.Stderr, "Warning: using generated definitions: %v\n", defs.Fallback)
	}

	if *exportDefs != "" {
		if err := exportDefinitions(store, defs, *exportDefs); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting definitions: %v\n", err)
			return 1
		}
		if flag.NArg() < 1 {
			return 0
		}
	}

	config := classify.DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = classify.LoadConfig(store, *configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return 1
		}
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		return 1
	}
	classifier := classify.NewClassifier(config)

	d, err := dump.Load(ctx, store, flag.Arg(0), defs, dump.WithLogger(logger.WithName("dump")))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dump: %v\n", err)
		return 1
	}
	if m := d.SizeMismatch(); m != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", m)
	}
	d.AcceptHook(&editTracer{logger: logger.WithName("edit")})

	exitCode := 0
	editor := classify.NewEditor(classify.WithLogger(logger.WithName("classify")))
	for _, arg := range resets {
		if !applyReset(editor, d, defs, arg) {
			exitCode = 1
		}
	}
	for _, arg := range sets {
		if !applySet(editor, d, defs, arg) {
			exitCode = 1
		}
	}

	out := newPrinter(os.Stdout, classifier)
	out.printDump(d, *changedOnly)
	out.printSummary(classifier.Summarize(d))

	if *comparePath != "" {
		other, err := dump.Load(ctx, store, *comparePath, defs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading comparison dump: %v\n", err)
			return 1
		}
		out.printDifferences(d, other)
	}

	if *outPath != "" {
		if err := d.Save(store, *outPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if *verbose {
			fmt.Printf("Wrote: %s\n", *outPath)
		}
	}

	return exitCode
}

func exportDefinitions(store fileio.Store, defs *regmap.Map, path string) error {
	data, err := regmap.MarshalDocument(defs.Document(), regmap.FormatFromPath(path))
	if err != nil {
		return err
	}
	return store.WriteBytes(path, data)
}

// parseAddress accepts a number (0x.., decimal) or a register name.
func parseAddress(defs *regmap.Map, s string) (uint8, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseUint(s, 0, 8); err == nil {
		return uint8(v), nil
	}
	if def, ok := defs.ByName(s); ok {
		return def.Address, nil
	}
	return 0, fmt.Errorf("unknown register %q", s)
}

func applyReset(editor *classify.Editor, d *dump.Dump, defs *regmap.Map, arg string) bool {
	addr, err := parseAddress(defs, arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -reset %s: %v\n", arg, err)
		return false
	}
	return report("reset "+arg, editor.Reset(d, addr))
}

func applySet(editor *classify.Editor, d *dump.Dump, defs *regmap.Map, arg string) bool {
	target, value, ok := strings.Cut(arg, "=")
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: -set %s: expected addr=value\n", arg)
		return false
	}

	addr, err := parseAddress(defs, target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -set %s: %v\n", arg, err)
		return false
	}

	if field, text, isField := strings.Cut(value, "="); isField {
		return report("set "+arg, editor.ApplyFields(d, addr, map[string]string{field: text}))
	}

	raw, err := strconv.ParseInt(strings.TrimSpace(value), 0, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -set %s: invalid value %q\n", arg, value)
		return false
	}
	return report("set "+arg, editor.Apply(d, addr, int(raw)))
}

func report(what string, v classify.Verdict) bool {
	if !v.OK {
		fmt.Fprintf(os.Stderr, "Rejected %s: %s\n", what, v.Reason)
		return false
	}
	if v.Advisory != "" {
		fmt.Fprintf(os.Stderr, "Note %s: %s\n", what, v.Advisory)
	}
	return true
}
