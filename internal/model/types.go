// Package model defines the schema entities read from an LLRP binary
// encoding definition and the declaration IR produced from them.
package model

// SchemaType names a primitive or complex type as declared in the schema
// (e.g., "u32", "u1v", "Custom", "LLRPStatus").
type SchemaType string

// Schema represents a parsed schema document.
type Schema struct {
	Namespace    string                  // Namespace of the root element
	Path         string                  // Source path (empty when read from a stream)
	Parameters   []ParameterDefinition   // parameterDefinition elements, document order
	Messages     []MessageDefinition     // messageDefinition elements, document order
	Enumerations []EnumerationDefinition // enumerationDefinition elements, document order
	Choices      []ChoiceDefinition      // choiceDefinition elements, document order
	Skipped      int                     // Definitions outside the root namespace, not read
}

// FieldDef represents a scalar named slot inside a parameter or message.
type FieldDef struct {
	Name string
	Type SchemaType
}

// ParamRef is a reference to a nested parameter entity. Type doubles as the
// member name in the generated declaration.
type ParamRef struct {
	Type   SchemaType
	Repeat string // Raw repeat specifier ("1", "0-1", "0-N", "1-N")
}

// ChoiceRef is a slot whose concrete type is one of several parameters.
type ChoiceRef struct {
	Type   SchemaType
	Repeat string
}

// ParameterDefinition represents a parameterDefinition element.
type ParameterDefinition struct {
	Name    string
	Fields  []FieldDef
	Params  []ParamRef
	Choices []ChoiceRef
}

// MessageDefinition represents a messageDefinition element.
type MessageDefinition struct {
	Name             string
	Fields           []FieldDef
	Params           []ParamRef
	Choices          []ChoiceRef // Read but never translated
	ResponseType     string      // Empty when the attribute is absent or blank
	ResponseDeclared bool        // The responseType attribute is present, even if blank
}

// HasResponse reports whether the message declares a responseType.
func (m *MessageDefinition) HasResponse() bool {
	return m.ResponseType != ""
}

// EntryDef is a single enumeration entry.
type EntryDef struct {
	Name  string
	Value int64
}

// EnumerationDefinition represents an enumerationDefinition element.
type EnumerationDefinition struct {
	Name    string
	Entries []EntryDef
}

// ChoiceDefinition represents a choiceDefinition element: the closed set of
// parameter types a choice slot may hold.
type ChoiceDefinition struct {
	Name         string
	Alternatives []SchemaType
}

// Len returns the total number of entities in the schema.
func (s *Schema) Len() int {
	return len(s.Parameters) + len(s.Messages) + len(s.Enumerations) + len(s.Choices)
}
