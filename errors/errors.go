// The errors package provides additional error primitives.
//
// Construction and wrapping are forwarded to github.com/pkg/errors, so that
// wrapped errors carry a cause that can be recovered with Cause, Unwrap, Is
// and As.
package errors

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

func New(text string) error {
	return pkgerrors.New(text)
}

func Errorf(format string, args ...interface{}) error {
	return pkgerrors.Errorf(format, args...)
}

// Wrap annotates err with message. Returns nil if err is nil.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// Cause returns the innermost error that does not carry a cause.
func Cause(err error) error {
	return pkgerrors.Cause(err)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Errors collects the problems found by one operation, such as the warnings
// produced while encoding a tree. Is and As look through every entry.
type Errors []error

// Error reports a single entry as is. Several entries are listed one per
// line under a count, with continuation lines indented to the entry text.
func (errs Errors) Error() string {
	if len(errs) == 0 {
		return "no errors"
	}
	if len(errs) == 1 {
		return errs[0].Error()
	}
	var buf strings.Builder
	fmt.Fprintf(&buf, "%d errors:", len(errs))
	for _, err := range errs {
		lines := strings.Split(err.Error(), "\n")
		buf.WriteString("\n\t- " + lines[0])
		for _, line := range lines[1:] {
			buf.WriteString("\n\t  " + line)
		}
	}
	return buf.String()
}

func (errs Errors) Unwrap() []error {
	return errs
}

// Append adds the non-nil errors to the list.
func (errs Errors) Append(err ...error) Errors {
	for _, e := range err {
		if e == nil {
			continue
		}
		errs = append(errs, e)
	}
	return errs
}

// Return is nil for an empty list, so that a function can return its
// collected errors directly.
func (errs Errors) Return() error {
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Union flattens errs into one Errors, splicing in the entries of any Errors
// among them. Nil errors are dropped, and the result is nil when nothing
// remains.
func Union(errs ...error) error {
	var all Errors
	for _, err := range errs {
		if list, ok := err.(Errors); ok {
			all = all.Append(list...)
			continue
		}
		all = all.Append(err)
	}
	return all.Return()
}
