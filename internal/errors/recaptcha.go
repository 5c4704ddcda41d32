package errors

var (
	ErrNetwork = &DomainError{
		Code:    "NETWORK_ERROR",
		Message: "There was an error. Try again later.",
	}
	ErrInvalidResponse = &DomainError{
		Code:    "INVALID_RESPONSE",
		Message: "There was an error validating the form. Try again later.",
	}
	// ErrProviderError covers a bad API key, site key or project id.
	ErrProviderError = &DomainError{
		Code:    "PROVIDER_ERROR",
		Message: "Form is unavailable at this time.",
	}
	ErrInvalidToken = &DomainError{
		Code:    "INVALID_TOKEN",
		Message: "Refresh the form and try again (invalid).",
	}
	ErrActionMismatch = &DomainError{
		Code:    "ACTION_MISMATCH",
		Message: "Something went wrong (action).",
	}
	ErrBelowThreshold = &DomainError{
		Code:    "BELOW_THRESHOLD",
		Message: "Verification failed.",
	}
	ErrMissingToken = &DomainError{
		Code:    "MISSING_TOKEN",
		Message: "Something went wrong.",
	}
)

// ErrInternal is shown when something unrelated to the token fails.
var ErrInternal = &DomainError{
	Code:    "INTERNAL",
	Message: "Something went wrong.",
}
