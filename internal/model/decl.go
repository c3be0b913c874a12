package model

// DeclKind represents the category of a generated declaration.
type DeclKind string

const (
	DeclParameter   DeclKind = "parameter"
	DeclMessage     DeclKind = "message"
	DeclEnumeration DeclKind = "enumeration"
	DeclChoice      DeclKind = "choice"
)

// Decl is a fully translated declaration, ready to be rendered.
type Decl struct {
	Kind       DeclKind   // Entity category
	Name       string     // Normalized identifier (also the destination name)
	Source     string     // Raw schema name
	Fields     []Member   // Scalar fields
	Params     []Member   // Nested parameter references
	Choices    []Member   // Choice slots (parameters only)
	Response   string     // Normalized response identifier (messages only)
	Underlying string     // Backing type (enumerations only)
	Constants  []Constant // Enumeration constants
	Variants   []string   // Alternatives of a closed choice type
	Marker     string     // Marker method name of a closed choice type
	Test       bool       // Whether a companion test placeholder is emitted
}

// Member is a single struct member.
type Member struct {
	Name string // Go member name
	Type string // Go element type
	Tag  string // Serialization tag value
	Many bool   // Emitted as a slice
}

// GoType returns the member type, widened to a slice when Many is set.
func (m Member) GoType() string {
	if m.Many {
		return "[]" + m.Type
	}
	return m.Type
}

// Constant is a single typed enumeration constant.
type Constant struct {
	Name  string
	Type  string
	Value int64
}

// HasResponse reports whether the declaration links to a response type.
func (d *Decl) HasResponse() bool {
	return d.Response != ""
}

// Members returns the number of struct members across all groups.
func (d *Decl) Members() int {
	return len(d.Fields) + len(d.Params) + len(d.Choices)
}
