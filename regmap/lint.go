package regmap

import (
	"fmt"
	"strconv"
)

// Issue is a problem found by Lint.
type Issue struct {
	// Index is the position of the register entry in the document.
	Index int

	// Register is the entry's short name.
	Register string

	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("register %d (%s): %s", i.Index, i.Register, i.Message)
}

// Lint checks a document more strictly than Build does. Build accepts
// everything reported here with a warning or silently.
func Lint(doc *Document) []Issue {
	var issues []Issue
	add := func(i int, name, format string, args ...interface{}) {
		issues = append(issues, Issue{Index: i, Register: name, Message: fmt.Sprintf(format, args...)})
	}

	if _, err := checkVersion(doc.Version); err != nil {
		add(-1, "", "%v", err)
	}

	seen := make(map[uint8]int)
	for i, entry := range doc.Registers {
		addr, err := parseHexByte(entry.Address)
		if err != nil {
			add(i, entry.Name, "address: %v", err)
		} else if prev, ok := seen[addr]; ok {
			add(i, entry.Name, "duplicate address 0x%02X (first at entry %d)", addr, prev)
		} else {
			seen[addr] = i
		}

		if _, err := parseHexByte(entry.Default); err != nil {
			add(i, entry.Name, "default: %v", err)
		}
		if _, ok := ParseAccessKind(entry.Access); !ok {
			add(i, entry.Name, "unknown access kind %q", entry.Access)
		}
		if ParseSpecialKind(entry.Special) == SpecialUnknown {
			add(i, entry.Name, "unknown special decoder %q", entry.Special)
		}

		issues = append(issues, lintFields(i, entry)...)
	}

	return issues
}

func lintFields(i int, entry RegisterEntry) []Issue {
	var issues []Issue
	add := func(format string, args ...interface{}) {
		issues = append(issues, Issue{Index: i, Register: entry.Name, Message: fmt.Sprintf(format, args...)})
	}

	var used byte
	for _, fe := range entry.Fields {
		bits, err := ParseBitRange(fe.Bits)
		if err != nil {
			add("field %s: %v", fe.Name, err)
			continue
		}
		if used&bits.Mask() != 0 {
			add("field %s: bits %s overlap another field", fe.Name, bits)
		}
		used |= bits.Mask()

		if _, ok := ParseFieldKind(fe.Type); !ok {
			add("field %s: unknown type %q", fe.Name, fe.Type)
		}
		if _, ok := ParseScale(fe.Scale); !ok {
			add("field %s: unknown scale %q", fe.Name, fe.Scale)
		}

		for k := range fe.Enum {
			n, err := strconv.ParseUint(normalizeEnumKey(k), 10, 64)
			if err != nil {
				add("field %s: enum key %q is not a number", fe.Name, k)
				continue
			}
			if n > uint64(bits.Max()) {
				add("field %s: enum key %s does not fit in %d bits", fe.Name, k, bits.Width())
			}
		}
	}

	return issues
}
