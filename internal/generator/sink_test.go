package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltkgen/internal/config"
)

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "ltkgo")
	sink := NewDirSink(dir)

	require.NoError(t, sink.WriteFile("Foo.go", []byte("package ltkgo\n// first\n")))
	require.NoError(t, sink.WriteFile("Foo.go", []byte("package ltkgo\n")))

	content, err := os.ReadFile(filepath.Join(dir, "Foo.go"))
	require.NoError(t, err)
	assert.Equal(t, "package ltkgo\n", string(content))
}

func TestDirSinkUnwritable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	sink := NewDirSink(filepath.Join(blocker, "sub"))
	err := sink.WriteFile("Foo.go", []byte("package x\n"))
	assert.Error(t, err)
	assert.Equal(t, err, sink.WriteFile("Bar.go", []byte("package x\n")))
}

func TestGenerateToDir(t *testing.T) {
	dir := t.TempDir()
	schema := parse(t, `<parameterDefinition name="Foo"><field name="Bar" type="u32"/></parameterDefinition>`)

	_, err := New(config.New(), zerolog.Nop()).Generate(context.Background(), schema, NewDirSink(dir))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"Foo.go", "Foo_test.go"}, names)
}

func TestDiscard(t *testing.T) {
	schema := parse(t, `<parameterDefinition name="Foo"/>`)

	res, err := New(config.New(), zerolog.Nop()).Generate(context.Background(), schema, Discard)
	require.NoError(t, err)
	assert.Len(t, res.Files, 2)
}

func TestMemorySinkCopies(t *testing.T) {
	sink := NewMemorySink()
	buf := []byte("package a\n")
	require.NoError(t, sink.WriteFile("a.go", buf))
	buf[8] = 'b'

	content, ok := sink.File("a.go")
	require.True(t, ok)
	assert.Equal(t, "package a\n", string(content))

	_, ok = sink.File("missing.go")
	assert.False(t, ok)
}
