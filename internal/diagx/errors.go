// Package diagx defines the closed set of error kinds the engine surfaces
// to its caller (spec.md §7): ParseError, TypeError, BuildError,
// OracleError, and IoError. Test timeouts and failures are data recorded in
// the search engine's failing set, not errors from this package.
package diagx

import "fmt"

// ParseError wraps a failure to decode the candidate-locations JSON or any
// other structured input.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TypeError wraps a failure to resolve a candidate expression's concrete
// type against its location's expected type (a condition must resolve to
// Boolean; anywhere else, Any).
type TypeError struct {
	AppID uint
	Err   error
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error in application %d: %v", e.AppID, e.Err)
}

func (e *TypeError) Unwrap() error { return e.Err }

// BuildError wraps a failed runtime or project compilation. Any error the
// project's InitialBuild or BuildWithRuntime returns, including a non-zero
// exit of the build command, becomes a BuildError; whether a usable
// artifact was still produced is not checked.
type BuildError struct {
	What string
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build failed: %s: %v", e.What, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// OracleError reports that the test driver is missing or not executable.
type OracleError struct {
	Driver string
	Err    error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("test driver %q not usable: %v", e.Driver, e.Err)
}

func (e *OracleError) Unwrap() error { return e.Err }

// IoError wraps a filesystem failure (partition channel, data directory,
// patch output) that is not itself a parse or build failure.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io error on %s: %v", e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }
