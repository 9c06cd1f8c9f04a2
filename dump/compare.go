package dump

// Difference is one register whose value differs between two dumps.
type Difference struct {
	Address uint8
	Name    string

	A, B               uint8
	DecodedA, DecodedB string
}

// Compare lists the registers whose raw value differs between a and b, in
// address order. Names and decodes follow each dump's own definitions.
func Compare(a, b *Dump) []Difference {
	ra, rb := a.Registers(), b.Registers()

	byAddr := make(map[uint8]*ParsedRegister, len(rb))
	for _, r := range rb {
		byAddr[r.Address] = r
	}

	var diffs []Difference
	for _, x := range ra {
		y, ok := byAddr[x.Address]
		if !ok || x.Raw == y.Raw {
			continue
		}
		diffs = append(diffs, Difference{
			Address:  x.Address,
			Name:     x.Name(),
			A:        x.Raw,
			B:        y.Raw,
			DecodedA: x.Decoded,
			DecodedB: y.Decoded,
		})
	}
	return diffs
}
