package errors

var (
	ErrNotConfigured = &DomainError{
		Code:    "NOT_CONFIGURED",
		Message: "Form is unavailable at this time.",
	}
	ErrInvalidSettings = &DomainError{
		Code:    "INVALID_SETTINGS",
		Message: "invalid settings",
	}
)
