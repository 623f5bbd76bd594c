// Package errors defines error types for the procstream bridge.
//
// This package provides structured error types that wrap the different ways
// a bridged subprocess run can fail. All error types support error
// unwrapping and can be checked using errors.Is, errors.As, and errors.AsType.
package errors
