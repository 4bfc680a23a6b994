package errors

var (
	ErrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "record not found",
	}
	ErrValidation = &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: "validation failed",
	}
	ErrRoomFull = &DomainError{
		Code:    "ROOM_FULL",
		Message: "room has no free beds",
	}
	ErrAlreadyAssigned = &DomainError{
		Code:    "ALREADY_ASSIGNED",
		Message: "member already holds a room",
	}
	ErrNotAssigned = &DomainError{
		Code:    "NOT_ASSIGNED",
		Message: "member is not assigned to a room",
	}
	ErrInvalidTransition = &DomainError{
		Code:    "INVALID_TRANSITION",
		Message: "approval action is not valid in the current state",
	}
	ErrAuth = &DomainError{
		Code:    "AUTH_ERROR",
		Message: "invalid credentials",
	}
)
