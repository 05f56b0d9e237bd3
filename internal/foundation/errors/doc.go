// Package errors provides foundational, type-safe error primitives used across obagen.
//
// This package contains classified error types and helpers for error handling,
// including a fluent builder API for constructing ClassifiedError values with context.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, structural, filesystem, etc.)
//   - ErrorSeverity: Impact level (fatal, error)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLIErrorAdapter: exit code mapping and error presentation
//
// Example usage:
//
//	err := errors.StructuralError("not in an example").
//		WithContext("file", path).
//		WithContext("line", 12).
//		Build()
package errors
