// Package types provides the enumerations shared by cmdflow and its configuration layer.
package types

import (
	"fmt"

	"github.com/iancoleman/strcase"
)

// RunMode controls how a command handler is invoked relative to the pipeline
type RunMode int

const (
	RunModeSequential RunMode = iota // RunModeSequential invokes the handler inline
	RunModeAwaited                   // RunModeAwaited invokes the handler on its own goroutine and waits for it
	RunModeConcurrent                // RunModeConcurrent starts the handler on a copy of the request context and returns success without waiting
)

// String returns the string representation of a RunMode
func (r RunMode) String() string {
	switch r {
	case RunModeAwaited:
		return "awaited"
	case RunModeConcurrent:
		return "concurrent"
	default:
		return "sequential"
	}
}

// MultiMatchPolicy decides what happens when an input matches several commands of a module
type MultiMatchPolicy int

const (
	MultiMatchError MultiMatchPolicy = iota // MultiMatchError fails the request with an ambiguity result
	MultiMatchBest                          // MultiMatchBest lets the candidates compete and keeps the first that binds
)

// String returns the string representation of a MultiMatchPolicy
func (m MultiMatchPolicy) String() string {
	if m == MultiMatchBest {
		return "best"
	}
	return "error"
}

// Comparison selects how aliases and enum names are compared with input
type Comparison int

const (
	Ordinal    Comparison = iota // Ordinal compares byte for byte
	IgnoreCase                   // IgnoreCase compares using Unicode case folding
)

// String returns the string representation of a Comparison
func (c Comparison) String() string {
	if c == IgnoreCase {
		return "ignore-case"
	}
	return "ordinal"
}

// ParseRunMode parses the String form of a RunMode. Input is normalized to kebab case first
// so that "Awaited", "awaited" and "AWAITED" are equivalent.
func ParseRunMode(s string) (RunMode, error) {
	switch strcase.ToKebab(s) {
	case "sequential", "sync":
		return RunModeSequential, nil
	case "awaited", "async-awaited":
		return RunModeAwaited, nil
	case "concurrent", "async":
		return RunModeConcurrent, nil
	}
	return RunModeSequential, fmt.Errorf("unknown run mode %q", s)
}

// ParseMultiMatchPolicy parses the String form of a MultiMatchPolicy
func ParseMultiMatchPolicy(s string) (MultiMatchPolicy, error) {
	switch strcase.ToKebab(s) {
	case "error":
		return MultiMatchError, nil
	case "best":
		return MultiMatchBest, nil
	}
	return MultiMatchError, fmt.Errorf("unknown multi-match policy %q", s)
}

// ParseComparison parses the String form of a Comparison
func ParseComparison(s string) (Comparison, error) {
	switch strcase.ToKebab(s) {
	case "ordinal":
		return Ordinal, nil
	case "ignore-case":
		return IgnoreCase, nil
	}
	return Ordinal, fmt.Errorf("unknown comparison %q", s)
}
