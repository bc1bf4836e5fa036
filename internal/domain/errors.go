package domain

// Error is the unit of user-visible failure. Code is a stable machine
// string the client switches on; Message is for humans only.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

const (
	CodeInvalidRequest = "invalid_request"
	CodeRoomFull       = "room_full"
	CodeUserNotFound   = "user_not_found"
	CodeNotInRoom      = "not_in_room"
	CodeRoomMismatch   = "room_mismatch"
	CodeEmptyMessage   = "empty_message"
	CodeMessageTooLong = "message_too_long"
	CodeInternalError  = "internal_error"
)

var (
	ErrRoomFull       = &Error{Code: CodeRoomFull, Message: "room is at capacity"}
	ErrUserNotFound   = &Error{Code: CodeUserNotFound, Message: "target member is not connected"}
	ErrNotInRoom      = &Error{Code: CodeNotInRoom, Message: "not a member of any room"}
	ErrRoomMismatch   = &Error{Code: CodeRoomMismatch, Message: "room does not match current membership"}
	ErrEmptyMessage   = &Error{Code: CodeEmptyMessage, Message: "message body is empty"}
	ErrMessageTooLong = &Error{Code: CodeMessageTooLong, Message: "message body too long"}
)

func ErrInvalidRequest(msg string) *Error {
	return &Error{Code: CodeInvalidRequest, Message: msg}
}

// AsError normalizes any error into a wire-ready *Error. Unexpected
// failures collapse into internal_error so handlers never leak details.
func AsError(err error) *Error {
	if de, ok := err.(*Error); ok {
		return de
	}
	return &Error{Code: CodeInternalError, Message: "internal error"}
}
