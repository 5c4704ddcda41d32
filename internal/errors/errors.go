// Package errors holds the domain error taxonomy shared by the form gate.
// Every error here is recoverable: the submission is rejected with Message
// and the request carries on.
package errors

import stderrors "errors"

// DomainError is a typed failure with a stable Code and a client-facing Message.
// Err carries the concrete cause for server-side diagnostics only.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError with the same Code, so sentinels work with errors.Is
// after WithMessage or Wrap.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy of e carrying a different client-facing message.
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{Code: e.Code, Message: message, Err: e.Err}
}

// Wrap returns a copy of e with cause attached.
func (e *DomainError) Wrap(cause error) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Err: cause}
}

// Detail is the message plus the cause, if any. Meant for logs, not for clients.
func (e *DomainError) Detail() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// CodeOf returns the Code of the first DomainError in err's chain, or "".
func CodeOf(err error) string {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return ""
}
