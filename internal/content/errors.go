// Package content loads the portfolio collections and turns them into role-ranked feeds.
package content

import "fmt"

// LoadError represents an error reading, decoding or validating a collection
type LoadError struct {
	Collection string
	Message    string
	Cause      error
}

func (e *LoadError) Error() string {
	prefix := "load error"
	if e.Collection != "" {
		prefix = fmt.Sprintf("load error in %s", e.Collection)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// UnknownCollectionError represents a request for a collection the library does not hold
type UnknownCollectionError struct {
	Collection string
}

func (e *UnknownCollectionError) Error() string {
	return fmt.Sprintf("unknown collection %q", e.Collection)
}

// DurationError represents a malformed ISO 8601 duration
type DurationError struct {
	Value string
}

func (e *DurationError) Error() string {
	return fmt.Sprintf("invalid ISO 8601 duration %q", e.Value)
}
