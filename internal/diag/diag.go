// Package diag provides the diagnostics collector shared by every pipeline
// stage. Warnings never stop a run; fatal diagnostics abort the smallest
// enclosing scope (one class or one unit) that cannot proceed.
package diag

import (
	"fmt"
	"strings"
	"sync"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SeverityWarning marks issues the pipeline recovered from.
	SeverityWarning Severity = iota
	// SeverityFatal marks issues that aborted a class or a whole unit.
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityFatal:
		return "fatal"
	}
	return "unknown"
}

// Code identifies the diagnostic category.
type Code string

const (
	CodeUnsupportedConstruct Code = "UnsupportedConstruct"
	CodeInheritanceCycle     Code = "InheritanceCycle"
	CodeMultipleInheritance  Code = "MultipleInheritanceUnsupported"
	CodeTypeFallback         Code = "TypeFallback"
	CodeNameCollision        Code = "NameCollision"
	CodeMalformedInput       Code = "MalformedInput"
)

// Diagnostic is a single recorded issue. Class and Member are empty when the
// issue is not tied to a particular declaration.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Class    string
	Member   string
	Message  string
}

func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(d.Severity.String())
	sb.WriteString(": ")
	sb.WriteString(string(d.Code))
	if d.Class != "" {
		sb.WriteString(": ")
		sb.WriteString(d.Class)
		if d.Member != "" {
			sb.WriteString(".")
			sb.WriteString(d.Member)
		}
	}
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	return sb.String()
}

// Collector is an append-only ordered sink of diagnostics. Every stage of a
// unit's pipeline writes to the same collector; it is read once at the end.
//
// Thread-safe: appends are serialized so per-unit collectors can be merged
// from parallel workers.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends a diagnostic.
func (c *Collector) Add(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// Warnf records a warning diagnostic.
func (c *Collector) Warnf(code Code, class, member, format string, args ...any) {
	c.Add(Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Class:    class,
		Member:   member,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Fatalf records a fatal diagnostic.
func (c *Collector) Fatalf(code Code, class, member, format string, args ...any) {
	c.Add(Diagnostic{
		Severity: SeverityFatal,
		Code:     code,
		Class:    class,
		Member:   member,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Items returns a copy of the recorded diagnostics in append order.
func (c *Collector) Items() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// HasFatal reports whether any fatal diagnostic was recorded.
func (c *Collector) HasFatal() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.items {
		if d.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// Merge appends all diagnostics from another collector.
func (c *Collector) Merge(other *Collector) {
	for _, d := range other.Items() {
		c.Add(d)
	}
}
