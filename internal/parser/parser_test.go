package parser

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltkgen/internal/model"
)

const llrpNS = "http://www.llrp.org/ltk/schema/core/encoding/binary/1.0"

func TestParseFileSample(t *testing.T) {
	schema, err := New().ParseFile(filepath.Join("testdata", "sample.xml"))
	require.NoError(t, err)

	assert.Equal(t, llrpNS, schema.Namespace)
	assert.Equal(t, filepath.Join("testdata", "sample.xml"), schema.Path)
	assert.Len(t, schema.Parameters, 3)
	assert.Len(t, schema.Messages, 5)
	assert.Len(t, schema.Enumerations, 2)
	assert.Len(t, schema.Choices, 1)
	assert.Equal(t, 11, schema.Len())

	// Document order within each category.
	names := make([]string, 0, len(schema.Messages))
	for _, m := range schema.Messages {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{
		"GET_READER_CAPABILITIES",
		"GET_READER_CAPABILITIES_RESPONSE",
		"ADD_ROSPEC",
		"ADD_ROSPEC_RESPONSE",
		"RO_ACCESS_REPORT",
	}, names)

	get := schema.Messages[0]
	assert.True(t, get.HasResponse())
	assert.Equal(t, "GET_READER_CAPABILITIES_RESPONSE", get.ResponseType)
	assert.Equal(t, []model.FieldDef{{Name: "RequestedData", Type: "u8"}}, get.Fields)
	assert.Equal(t, []model.ParamRef{{Type: "Custom", Repeat: "0-N"}}, get.Params)
	assert.False(t, schema.Messages[1].HasResponse())

	rospec := schema.Parameters[1]
	assert.Equal(t, "ROSpec", rospec.Name)
	assert.Equal(t, []model.ParamRef{
		{Type: "ROBoundarySpec", Repeat: "1"},
		{Type: "ROReportSpec", Repeat: "0-1"},
	}, rospec.Params)
	assert.Equal(t, []model.ChoiceRef{{Type: "SpecParameter", Repeat: "1-N"}}, rospec.Choices)

	assert.Equal(t, model.EnumerationDefinition{
		Name: "StatusCode",
		Entries: []model.EntryDef{
			{Name: "M_Success", Value: 0},
			{Name: "M_ParameterError", Value: 100},
			{Name: "M_FieldError", Value: 101},
		},
	}, schema.Enumerations[0])

	require.Len(t, schema.Choices, 1)
	assert.Equal(t, model.ChoiceDefinition{
		Name:         "SpecParameter",
		Alternatives: []model.SchemaType{"AISpec", "RFSurveySpec", "Custom"},
	}, schema.Choices[0])
}

func TestParseMinimal(t *testing.T) {
	doc := `<llrpdef xmlns="` + llrpNS + `">
  <parameterDefinition name="Foo"><field name="Bar" type="u32"/></parameterDefinition>
</llrpdef>`

	schema, err := New().Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, schema.Parameters, 1)
	assert.Equal(t, "Foo", schema.Parameters[0].Name)
	assert.Equal(t, []model.FieldDef{{Name: "Bar", Type: "u32"}}, schema.Parameters[0].Fields)
	assert.Empty(t, schema.Parameters[0].Params)
	assert.Empty(t, schema.Messages)
	assert.Empty(t, schema.Path)
}

func TestParseSkipsForeignNamespace(t *testing.T) {
	doc := `<llrpdef xmlns="` + llrpNS + `" xmlns:vendor="urn:vendor:ext">
  <parameterDefinition name="Foo"/>
  <vendor:parameterDefinition name="Foo"><field name="X" type="u8"/></vendor:parameterDefinition>
  <vendor:messageDefinition name="VENDOR_PING"/>
  <vendor:enumerationDefinition name="Mode"/>
  <vendor:choiceDefinition name="Slot"/>
</llrpdef>`
	schema, err := New().Parse(strings.NewReader(doc))
	require.NoError(t, err)

	require.Len(t, schema.Parameters, 1)
	assert.Empty(t, schema.Parameters[0].Fields)
	assert.Empty(t, schema.Messages)
	assert.Empty(t, schema.Enumerations)
	assert.Empty(t, schema.Choices)
	assert.Equal(t, 4, schema.Skipped)
}

func TestParseResponseTypeAttribute(t *testing.T) {
	doc := `<llrpdef xmlns="` + llrpNS + `">
  <messageDefinition name="A" responseType="A_RESPONSE"/>
  <messageDefinition name="B" responseType=" "/>
  <messageDefinition name="C"/>
</llrpdef>`
	schema, err := New().Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, schema.Messages, 3)

	a, b, c := schema.Messages[0], schema.Messages[1], schema.Messages[2]
	assert.Equal(t, "A_RESPONSE", a.ResponseType)
	assert.True(t, a.ResponseDeclared)
	assert.Empty(t, b.ResponseType)
	assert.True(t, b.ResponseDeclared)
	assert.False(t, b.HasResponse())
	assert.False(t, c.ResponseDeclared)
}

func TestParseKeepsMissingRepeat(t *testing.T) {
	doc := `<llrpdef><parameterDefinition name="Foo"><parameter type="ROSpec"/></parameterDefinition></llrpdef>`

	schema, err := New().Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []model.ParamRef{{Type: "ROSpec"}}, schema.Parameters[0].Params)
}

func TestParseCharset(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<llrpdef><enumerationDefinition name=\"Caf\xe9\"><entry name=\"A\" value=\"1\"/></enumerationDefinition></llrpdef>"

	schema, err := New().Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Café", schema.Enumerations[0].Name)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"parameter without name", `<d><parameterDefinition/></d>`},
		{"message without name", `<d><messageDefinition responseType="X"/></d>`},
		{"enumeration without name", `<d><enumerationDefinition/></d>`},
		{"choice without name", `<d><choiceDefinition/></d>`},
		{"field without type", `<d><parameterDefinition name="A"><field name="B"/></parameterDefinition></d>`},
		{"parameter without type", `<d><messageDefinition name="A"><parameter repeat="1"/></messageDefinition></d>`},
		{"choice ref without type", `<d><parameterDefinition name="A"><choice repeat="1"/></parameterDefinition></d>`},
		{"entry without name", `<d><enumerationDefinition name="A"><entry value="1"/></enumerationDefinition></d>`},
		{"entry with bad value", `<d><enumerationDefinition name="A"><entry name="B" value="x"/></enumerationDefinition></d>`},
		{"alternative without type", `<d><choiceDefinition name="A"><parameter/></choiceDefinition></d>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Parse(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidSchema)
		})
	}
}

func TestParseReadFailures(t *testing.T) {
	_, err := New().ParseFile(filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)

	_, err = New().Parse(strings.NewReader(""))
	assert.Error(t, err)

	_, err = New().Parse(strings.NewReader("<llrpdef><parameterDefinition"))
	assert.Error(t, err)

	_, err = New().Parse(strings.NewReader(`<?xml version="1.0" encoding="x-unheard-of"?><d/>`))
	assert.Error(t, err)
}
