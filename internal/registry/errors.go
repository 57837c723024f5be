package registry

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrUnknownLanguage = errors.New("unknown language")
	ErrRegistryRead    = errors.New("registry read failed")
)

// LanguageError reports a language code that is not supported
type LanguageError struct {
	Code string
}

func (e LanguageError) Error() string {
	return fmt.Sprintf("language %q is not supported", e.Code)
}

func (e LanguageError) Is(target error) bool {
	return target == ErrUnknownLanguage
}

// ReadError reports a registry source that exists but could not be read
type ReadError struct {
	Source string
	Err    error
}

func (e ReadError) Error() string {
	return fmt.Sprintf("reading registry %s: %v", e.Source, e.Err)
}

func (e ReadError) Unwrap() error {
	return e.Err
}

func (e ReadError) Is(target error) bool {
	return target == ErrRegistryRead
}

// NewLanguageError creates a new LanguageError
func NewLanguageError(code string) error {
	return LanguageError{Code: code}
}

// NewReadError creates a new ReadError
func NewReadError(source string, err error) error {
	return ReadError{Source: source, Err: err}
}
