// Package diag collects advisory notices raised while translating a schema.
package diag

import (
	"fmt"
	"sync"
)

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityNotice  Severity = "notice"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single advisory notice.
type Diagnostic struct {
	Severity Severity `yaml:"severity" json:"severity"`
	Entity   string   `yaml:"entity,omitempty" json:"entity,omitempty"`
	Message  string   `yaml:"message" json:"message"`
}

func (d Diagnostic) String() string {
	if d.Entity == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Entity, d.Message)
}

// Collector accumulates diagnostics in the order they are reported.
//
// Collector is safe for concurrent use by multiple goroutines. A nil
// *Collector discards everything.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// New creates an empty Collector.
func New() *Collector {
	return &Collector{}
}

// Add records a diagnostic.
func (c *Collector) Add(d Diagnostic) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.items = append(c.items, d)
	c.mu.Unlock()
}

// Noticef records a notice for entity.
func (c *Collector) Noticef(entity, format string, args ...any) {
	c.Add(Diagnostic{Severity: SeverityNotice, Entity: entity, Message: fmt.Sprintf(format, args...)})
}

// Warnf records a warning for entity.
func (c *Collector) Warnf(entity, format string, args ...any) {
	c.Add(Diagnostic{Severity: SeverityWarning, Entity: entity, Message: fmt.Sprintf(format, args...)})
}

// Diagnostics returns a copy of the recorded diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
