// Package errors provides the coded error type shared by packdeps packages.
//
// Every failure surfaced to the packaging pipeline carries an ErrorCode so
// tests and callers can match on the category without parsing messages:
//
//	if errors.IsErrorCode(err, errors.ErrPackageManagerNotFound) {
//	    ...
//	}
package errors
