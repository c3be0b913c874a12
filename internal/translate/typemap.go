package translate

import (
	"go/token"

	"ltkgen/internal/config"
	"ltkgen/internal/diag"
	"ltkgen/internal/model"
)

// Kind classifies how a schema type was resolved.
type Kind int

const (
	KindUnknown   Kind = iota // Not recognized; passed through unchanged
	KindPrimitive             // Fixed-width scalar
	KindComplex               // Previously generated declaration
	KindOpaque                // Generic interface slot
	KindSentinel              // Deliberately unresolved encoding
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindComplex:
		return "complex"
	case KindOpaque:
		return "opaque"
	case KindSentinel:
		return "sentinel"
	}
	return "unknown"
}

// Mapper maps schema types to Go types. It holds no mutable state and is
// safe for concurrent use; diagnostics go to the collector passed to Map.
type Mapper struct {
	cfg *config.Config
}

// NewMapper creates a Mapper backed by the configured type mappings.
func NewMapper(cfg *config.Config) *Mapper {
	return &Mapper{cfg: cfg}
}

// Lookup classifies schemaType without side effects. Unknown names that are
// not Go identifiers resolve to the sentinel.
func (m *Mapper) Lookup(schemaType model.SchemaType) (string, Kind) {
	name := string(schemaType)
	if mapped, ok := m.cfg.MapType(name); ok {
		switch {
		case mapped == m.cfg.Options.Opaque:
			return mapped, KindOpaque
		case mapped == name:
			return mapped, KindComplex
		}
		return mapped, KindPrimitive
	}
	if m.cfg.IsSentinel(name) {
		return m.cfg.Options.Sentinel, KindSentinel
	}
	if !token.IsIdentifier(name) {
		return m.cfg.Options.Sentinel, KindUnknown
	}
	return name, KindUnknown
}

// Map returns the Go type for schemaType. Unrecognized types are passed
// through unchanged and reported once per call to d, attributed to entity.
// An unrecognized name that is not a Go identifier is replaced by the
// sentinel so the declaration still formats.
func (m *Mapper) Map(schemaType model.SchemaType, entity string, d *diag.Collector) string {
	mapped, kind := m.Lookup(schemaType)
	if kind != KindUnknown {
		return mapped
	}
	if mapped != string(schemaType) {
		d.Noticef(entity, "unknown schema type %q is not an identifier, using %s", string(schemaType), mapped)
	} else {
		d.Noticef(entity, "unknown schema type %q", string(schemaType))
	}
	return mapped
}
