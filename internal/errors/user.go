package errors

var (
	ErrDuplicateUsername = &DomainError{
		Code:    "DUPLICATE_USERNAME",
		Message: "username is already taken",
	}
	ErrInvalidCurrency = &DomainError{
		Code:    "INVALID_CURRENCY",
		Message: "unsupported currency",
	}
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
	}
)
