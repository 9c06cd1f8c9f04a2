// Package classify derives the reserved, protected, editable and critical
// predicates of registers and gates edits before they reach a dump.
package classify

import (
	"math"
	"strings"

	"github.com/sarchlab/pmicdump/dump"
	"github.com/sarchlab/pmicdump/regmap"
)

// IsReserved reports whether def is a reserved register. Error-log registers
// and registers with no access kind count as reserved.
func IsReserved(def *regmap.RegisterDefinition) bool {
	if def.Category == regmap.CategoryReserved {
		return true
	}
	if strings.HasPrefix(strings.ToUpper(def.Name), "RESERVED") {
		return true
	}

	switch def.Access {
	case regmap.AccessRV, regmap.AccessROE, regmap.AccessUnknown:
		return true
	}
	return false
}

// IsProtected reports whether def lies in the vendor region or carries the
// protected flag.
func IsProtected(def *regmap.RegisterDefinition) bool {
	return def.InProtectedRegion() || def.Protected
}

// IsEditable reports whether def can be written at all.
func IsEditable(def *regmap.RegisterDefinition) bool {
	if IsReserved(def) {
		return false
	}
	return def.Access.Writable()
}

// IsReservedRegister reports whether the definition of r is reserved.
func IsReservedRegister(r *dump.ParsedRegister) bool {
	return IsReserved(r.Def)
}

// IsProtectedRegister reports whether the definition of r is protected.
func IsProtectedRegister(r *dump.ParsedRegister) bool {
	return IsProtected(r.Def)
}

// IsEditableRegister reports whether r can be written at all.
func IsEditableRegister(r *dump.ParsedRegister) bool {
	return IsEditable(r.Def)
}

// Classifier evaluates critical changes against a Config.
type Classifier struct {
	config *Config
}

// NewClassifier creates a Classifier. A nil config selects DefaultConfig.
func NewClassifier(config *Config) *Classifier {
	if config == nil {
		config = DefaultConfig()
	}
	return &Classifier{config: config.Clone()}
}

// Config returns a copy of the classifier's thresholds.
func (c *Classifier) Config() *Config {
	return c.config.Clone()
}

// DriftPercent returns how far r has moved from its default, in percent of
// the full-scale range.
func (c *Classifier) DriftPercent(r *dump.ParsedRegister) float64 {
	diff := math.Abs(float64(r.Raw) - float64(r.Default))
	return diff / c.config.FullScale * 100
}

// IsCriticalChange reports whether a voltage or current register has drifted
// from a non-zero default by more than the critical threshold.
func (c *Classifier) IsCriticalChange(r *dump.ParsedRegister) bool {
	if !r.Def.Electrical() {
		return false
	}
	if !r.IsChanged() || r.Default == 0 {
		return false
	}
	return c.DriftPercent(r) > c.config.CriticalPercent
}
