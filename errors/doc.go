/*
Package errors implements the error handling used across the swap packages.

Every error returned by this module wraps one of the root errors declared in
this package. Root errors are created with Register and carry a unique code,
so that a caller can tell the kind of a failure apart without parsing the
message:

	if errors.ErrAlreadyOpen.Is(err) {
		// identifier is taken
	}

Use Wrap and Wrapf to add context while keeping the root cause. A stack
trace is attached once, at the innermost wrap. Format an error with %+v to
print it.

Field errors describe a problem with a single attribute of a validated
structure (see Field and FieldErrors). Append clubs together several errors,
which is handy when a Validate method wants to report all problems at once.
*/
package errors
