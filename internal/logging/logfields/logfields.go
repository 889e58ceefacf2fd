// Package logfields defines structured logging field names used across jwtengine packages.
//
// All logging code MUST use these constants instead of string literals for field names.
// Token text and key material are never logged, so there is deliberately no field for them.
package logfields

const (
	// Core component identifiers
	Module    = "module"
	Component = "component"
	Method    = "method"

	// Token metadata
	Algorithm = "alg"
	KeyID     = "kid"
	TokenID   = "jti"

	// Outcome
	Operation = "operation"
	Result    = "result"
	ErrorKind = "errorKind"
	Error     = "error"

	// Performance
	Duration    = "duration"
	BatchSize   = "batchSize"
	Concurrency = "concurrency"
)
