package classify

import "github.com/sarchlab/pmicdump/dump"

// Summary collects the notable registers of a dump.
type Summary struct {
	Total int

	Changed   []*dump.ParsedRegister
	Critical  []*dump.ParsedRegister
	Protected []*dump.ParsedRegister // changed and protected
}

// Summarize classifies every register of d.
func (c *Classifier) Summarize(d *dump.Dump) Summary {
	var s Summary
	for _, r := range d.Registers() {
		s.Total++
		if !r.IsChanged() {
			continue
		}

		s.Changed = append(s.Changed, r)
		if c.IsCriticalChange(r) {
			s.Critical = append(s.Critical, r)
		}
		if IsProtectedRegister(r) {
			s.Protected = append(s.Protected, r)
		}
	}
	return s
}
