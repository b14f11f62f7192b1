package server

// Error codes for domain errors surfaced to clients.
const (
	ErrCodeRoomNotFound = "room_not_found"
	ErrCodeNotInRoom    = "not_in_room"
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
)

// DomainError wraps a code and human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func domainError(code, msg string) *DomainError {
	return &DomainError{Code: code, Message: msg}
}
