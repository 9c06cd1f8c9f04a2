package regmap

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// DocumentVersion is the document schema version written by this package.
const DocumentVersion = "1.0.0"

// supportedVersions is the range of document schema versions Build accepts.
const supportedVersions = "^1.0.0"

// Format is the encoding of a definition document.
type Format uint8

// Document formats.
const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks the format from a file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Document is the external definition document.
type Document struct {
	Version   string          `json:"version" yaml:"version"`
	Model     string          `json:"model" yaml:"model"`
	Registers []RegisterEntry `json:"registers" yaml:"registers"`
}

// RegisterEntry is one register in a Document. Address and Default are hex
// strings such as "0x1A".
type RegisterEntry struct {
	Address             string       `json:"address" yaml:"address"`
	Name                string       `json:"name" yaml:"name"`
	FullName            string       `json:"fullName" yaml:"fullName"`
	Category            string       `json:"category" yaml:"category"`
	Default             string       `json:"default" yaml:"default"`
	Access              string       `json:"access" yaml:"access"`
	Description         string       `json:"description" yaml:"description"`
	Fields              []FieldEntry `json:"fields" yaml:"fields"`
	Protected           bool         `json:"protected,omitempty" yaml:"protected,omitempty"`
	AllowProtectedWrite bool         `json:"allowProtectedWrite,omitempty" yaml:"allowProtectedWrite,omitempty"`
	Special             string       `json:"special,omitempty" yaml:"special,omitempty"`
}

// FieldEntry is one bit field in a RegisterEntry. Bits is "b" or "a:b".
type FieldEntry struct {
	Bits        string            `json:"bits" yaml:"bits"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Type        string            `json:"type" yaml:"type"`
	ActiveHigh  *bool             `json:"activeHigh,omitempty" yaml:"activeHigh,omitempty"`
	Enum        map[string]string `json:"enum,omitempty" yaml:"enum,omitempty"`
	Scale       string            `json:"scale,omitempty" yaml:"scale,omitempty"`
}

// ParseDocument decodes a definition document.
func ParseDocument(data []byte, format Format) (*Document, error) {
	doc := &Document{}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, doc)
	default:
		err = json.Unmarshal(data, doc)
	}
	if err != nil {
		return nil, &FormatError{Err: err}
	}

	return doc, nil
}

// MarshalDocument encodes a definition document.
func MarshalDocument(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize definitions: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to serialize definitions: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// checkVersion rejects documents whose schema major version is unsupported.
// An empty version is accepted with a warning.
func checkVersion(version string) (warning string, err error) {
	if strings.TrimSpace(version) == "" {
		return "document has no version, assuming " + DocumentVersion, nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return "", fmt.Errorf("invalid version %q: %w", version, err)
	}

	c, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return "", err
	}
	if !c.Check(v) {
		return "", fmt.Errorf("unsupported version %s (want %s)", v, supportedVersions)
	}

	return "", nil
}

// Build converts a document into a Map. Structural problems (no registers,
// unsupported version) fail the whole document. Problems inside a single
// entry are soft: the offending value is replaced and a warning is recorded.
func Build(doc *Document, source string) (*Map, error) {
	if doc == nil || len(doc.Registers) == 0 {
		return nil, &FormatError{Source: source, Err: ErrNoRegisters}
	}

	var warnings []string
	warn := func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	w, err := checkVersion(doc.Version)
	if err != nil {
		return nil, &FormatError{Source: source, Err: err}
	}
	if w != "" {
		warn("%s", w)
	}

	var defs [NumRegisters]*RegisterDefinition
	for i, entry := range doc.Registers {
		def := buildRegister(entry, func(format string, args ...interface{}) {
			warn("register %d (%s): %s", i, entry.Name, fmt.Sprintf(format, args...))
		})
		if defs[def.Address] != nil {
			warn("register %d (%s): duplicate address 0x%02X replaces %s",
				i, entry.Name, def.Address, defs[def.Address].Name)
		}
		defs[def.Address] = def
	}

	m := newMap(defs)
	m.Version = doc.Version
	m.Model = doc.Model
	m.Source = source
	m.Warnings = warnings
	return m, nil
}

func buildRegister(entry RegisterEntry, warn func(string, ...interface{})) *RegisterDefinition {
	addr, err := parseHexByte(entry.Address)
	if err != nil {
		warn("address: %v, using 0x00", err)
	}

	defVal, err := parseHexByte(entry.Default)
	if err != nil {
		warn("default: %v, using 0x00", err)
	}

	access, ok := ParseAccessKind(entry.Access)
	if !ok {
		warn("unknown access kind %q", entry.Access)
	}

	def := &RegisterDefinition{
		Address:             addr,
		Name:                entry.Name,
		FullName:            entry.FullName,
		Category:            entry.Category,
		Default:             defVal,
		Access:              access,
		Description:         entry.Description,
		Protected:           entry.Protected,
		AllowProtectedWrite: entry.AllowProtectedWrite,
		Special:             ParseSpecialKind(entry.Special),
		SpecialTag:          entry.Special,
	}
	if def.Special == SpecialUnknown {
		warn("unknown special decoder %q, using field decoding", entry.Special)
	}

	for _, fe := range entry.Fields {
		f, err := buildField(fe)
		if err != nil {
			warn("field %s skipped: %v", fe.Name, err)
			continue
		}
		if _, ok := ParseFieldKind(fe.Type); !ok {
			warn("field %s: unknown type %q, decoding as raw", fe.Name, fe.Type)
		}
		def.Fields = append(def.Fields, f)
	}

	def.Resolve()
	return def
}

func buildField(fe FieldEntry) (FieldDefinition, error) {
	bits, err := ParseBitRange(fe.Bits)
	if err != nil {
		return FieldDefinition{}, err
	}

	kind, _ := ParseFieldKind(fe.Type)
	scale, ok := ParseScale(fe.Scale)
	if !ok {
		return FieldDefinition{}, fmt.Errorf("unknown scale %q", fe.Scale)
	}

	f := FieldDefinition{
		Bits:        bits,
		Name:        fe.Name,
		Description: fe.Description,
		Kind:        kind,
		Scale:       scale,
	}
	if fe.ActiveHigh != nil {
		f.ActiveHigh = activeHigh(*fe.ActiveHigh)
	}
	if len(fe.Enum) > 0 {
		f.Enum = make(map[string]string, len(fe.Enum))
		for k, v := range fe.Enum {
			f.Enum[normalizeEnumKey(k)] = v
		}
	}
	return f, nil
}

// normalizeEnumKey rewrites hex or padded keys ("0x02", "02") to the decimal
// form used for lookups.
func normalizeEnumKey(k string) string {
	t := strings.TrimSpace(k)
	base := 10
	if strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X") {
		t, base = t[2:], 16
	}
	n, err := strconv.ParseUint(t, base, 64)
	if err != nil {
		return k
	}
	return strconv.FormatUint(n, 10)
}

// parseHexByte parses "0x1A" or "1A". Failures return 0 alongside the error.
func parseHexByte(s string) (uint8, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(strings.TrimPrefix(t, "0x"), "0X")
	n, err := strconv.ParseUint(t, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("malformed hex value %q", s)
	}
	return uint8(n), nil
}

// Document exports the map as a definition document.
func (m *Map) Document() *Document {
	doc := &Document{
		Version:   m.Version,
		Model:     m.Model,
		Registers: make([]RegisterEntry, 0, len(m.ordered)),
	}
	if doc.Version == "" {
		doc.Version = DocumentVersion
	}

	for _, def := range m.ordered {
		entry := RegisterEntry{
			Address:             fmt.Sprintf("0x%02X", def.Address),
			Name:                def.Name,
			FullName:            def.FullName,
			Category:            def.Category,
			Default:             fmt.Sprintf("0x%02X", def.Default),
			Access:              def.Access.String(),
			Description:         def.Description,
			Protected:           def.Protected,
			AllowProtectedWrite: def.AllowProtectedWrite,
			Special:             def.SpecialTag,
		}
		for _, f := range def.Fields {
			fe := FieldEntry{
				Bits:        f.Bits.String(),
				Name:        f.Name,
				Description: f.Description,
				Type:        f.Kind.String(),
				ActiveHigh:  f.ActiveHigh,
				Scale:       f.Scale.String(),
			}
			if len(f.Enum) > 0 {
				fe.Enum = make(map[string]string, len(f.Enum))
				for k, v := range f.Enum {
					fe.Enum[k] = v
				}
			}
			entry.Fields = append(entry.Fields, fe)
		}
		doc.Registers = append(doc.Registers, entry)
	}
	return doc
}
