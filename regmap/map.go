// Package regmap describes the PMIC register space: per-register bit-field
// layouts, access kinds and decode tags, loaded from a versioned definition
// document or generated from built-in defaults.
package regmap

// SourceGenerated is the Source of a map built from the built-in defaults.
const SourceGenerated = "generated"

// Map is the full catalogue of register definitions. It is immutable once
// built and safe for concurrent readers.
type Map struct {
	// Version and Model come from the definition document.
	Version string
	Model   string

	// Source is the document path, or SourceGenerated.
	Source string

	// Fallback is why the generated map was used instead of a document.
	// It is nil when the document loaded.
	Fallback error

	// Warnings collects soft failures found while building the map.
	Warnings []string

	byAddr  [NumRegisters]*RegisterDefinition
	ordered []*RegisterDefinition
}

func newMap(defs [NumRegisters]*RegisterDefinition) *Map {
	m := &Map{byAddr: defs, ordered: make([]*RegisterDefinition, 0, NumRegisters)}
	for addr := range m.byAddr {
		if m.byAddr[addr] == nil {
			m.byAddr[addr] = DefaultRegister(uint8(addr))
		}
		m.ordered = append(m.ordered, m.byAddr[addr])
	}
	return m
}

// Lookup returns the definition for addr. It never returns nil.
func (m *Map) Lookup(addr uint8) *RegisterDefinition {
	if def := m.byAddr[addr]; def != nil {
		return def
	}
	return DefaultRegister(addr)
}

// Registers returns every definition in address order. The slice must not be
// modified.
func (m *Map) Registers() []*RegisterDefinition {
	return m.ordered
}

// ByName returns the first register whose short name matches.
func (m *Map) ByName(name string) (*RegisterDefinition, bool) {
	for _, def := range m.ordered {
		if def.Name == name {
			return def, true
		}
	}
	return nil, false
}

// IsGenerated reports whether the map came from the built-in defaults.
func (m *Map) IsGenerated() bool {
	return m.Source == SourceGenerated
}
