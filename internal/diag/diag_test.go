package diag

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectorOrder(t *testing.T) {
	c := New()
	c.Noticef("Foo", "unknown type %q", "u128")
	c.Warnf("", "namespace mismatch")

	got := c.Diagnostics()
	assert.Len(t, got, 2)
	assert.Equal(t, Diagnostic{Severity: SeverityNotice, Entity: "Foo", Message: `unknown type "u128"`}, got[0])
	assert.Equal(t, `notice: Foo: unknown type "u128"`, got[0].String())
	assert.Equal(t, "warning: namespace mismatch", got[1].String())
}

func TestCollectorConcurrent(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Noticef("Shared", "unknown type %q", "u128")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, c.Len())
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.Noticef("Foo", "ignored")
	assert.Zero(t, c.Len())
	assert.Nil(t, c.Diagnostics())
}
