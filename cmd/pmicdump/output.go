package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/pmicdump/classify"
	"github.com/sarchlab/pmicdump/dump"
)

const (
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorReset  = "\x1b[0m"
)

// editTracer logs every applied edit at verbosity 1.
type editTracer struct {
	logger logr.Logger
}

func (t *editTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != dump.HookPosRegisterEdit {
		return
	}
	edit, ok := ctx.Detail.(dump.Edit)
	if !ok {
		return
	}
	t.logger.V(1).Info("register edited",
		"address", fmt.Sprintf("0x%02X", edit.Address),
		"old", fmt.Sprintf("0x%02X", edit.Old),
		"new", fmt.Sprintf("0x%02X", edit.New))
}

type printer struct {
	w          io.Writer
	color      bool
	classifier *classify.Classifier
}

func newPrinter(f *os.File, classifier *classify.Classifier) *printer {
	fd := f.Fd()
	return &printer{
		w:          f,
		color:      isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		classifier: classifier,
	}
}

func (p *printer) flags(r *dump.ParsedRegister) (tags []string, critical bool) {
	if r.IsChanged() {
		tags = append(tags, "CHANGED")
	}
	if classify.IsProtectedRegister(r) {
		tags = append(tags, "PROTECTED")
	}
	if p.classifier.IsCriticalChange(r) {
		tags = append(tags, "CRITICAL")
		critical = true
	}
	return tags, critical
}

func (p *printer) printDump(d *dump.Dump, changedOnly bool) {
	for _, r := range d.Registers() {
		if changedOnly && !r.IsChanged() {
			continue
		}
		if !changedOnly && classify.IsReservedRegister(r) && !r.IsChanged() {
			continue
		}

		tags, critical := p.flags(r)
		line := fmt.Sprintf("0x%02X  %-22s 0x%02X (default 0x%02X)  %s",
			r.Address, r.Name(), r.Raw, r.Default, r.Decoded)
		if len(tags) > 0 {
			line += "  [" + strings.Join(tags, ",") + "]"
		}

		switch {
		case p.color && critical:
			line = colorRed + line + colorReset
		case p.color && r.IsChanged():
			line = colorYellow + line + colorReset
		}
		fmt.Fprintln(p.w, line)
	}
}

func (p *printer) printSummary(s classify.Summary) {
	fmt.Fprintf(p.w, "\nRegisters: %d  Changed: %d  Critical: %d  Protected changed: %d\n",
		s.Total, len(s.Changed), len(s.Critical), len(s.Protected))
}

func (p *printer) printDifferences(a, b *dump.Dump) {
	diffs := dump.Compare(a, b)
	fmt.Fprintf(p.w, "\nDifferences vs %s: %d\n", b.Source, len(diffs))
	for _, diff := range diffs {
		fmt.Fprintf(p.w, "0x%02X  %-22s 0x%02X -> 0x%02X\n", diff.Address, diff.Name, diff.A, diff.B)
		fmt.Fprintf(p.w, "      %s\n      %s\n", diff.DecodedA, diff.DecodedB)
	}
}
