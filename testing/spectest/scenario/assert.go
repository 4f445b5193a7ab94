package scenario

import "github.com/pkg/errors"

// ErrAssertion marks a failed in-scenario check.
var ErrAssertion = errors.New("scenario assertion failed")

// Assert returns nil when cond holds and an ErrAssertion describing the check otherwise.
func Assert(cond bool, format string, args ...interface{}) error {
	if cond {
		return nil
	}
	return errors.Wrapf(ErrAssertion, format, args...)
}
