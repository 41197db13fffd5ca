package dispatch

import "fmt"

// Code identifies a failure class. Codes are the machine-readable half of the
// contract; the legacy wire strings are rendered only at the transport
// boundary.
type Code string

// Failure taxonomy.
const (
	CodeMissingParameter   Code = "MissingParameter"
	CodeInvalidPriceFormat Code = "InvalidPriceFormat"
	CodeDuplicateUser      Code = "DuplicateUser"
	CodeInvalidUser        Code = "InvalidUser"
	CodeInvalidOrder       Code = "InvalidOrder"
	CodeDuplicateOrder     Code = "DuplicateOrder"
	CodeInvalidMenuItem    Code = "InvalidMenuItem"
	CodeEmptyMenu          Code = "EmptyMenu"
	CodeSoldOut            Code = "SoldOut"
	CodeUserBroke          Code = "UserBroke"
	CodeUnknownCommand     Code = "UnknownCommand"
)

// RespSuccess is the wire body for every successful mutation.
const RespSuccess = "success"

// message returns the human-readable error text for a code.
func (c Code) message() string {
	switch c {
	case CodeMissingParameter:
		return "required parameter missing"
	case CodeInvalidPriceFormat:
		return "invalid price format"
	case CodeDuplicateUser:
		return "user already exists"
	case CodeInvalidUser:
		return "user doesn't exist"
	case CodeInvalidOrder:
		return "invalid order"
	case CodeDuplicateOrder:
		return "duplicate order"
	case CodeInvalidMenuItem:
		return "menu item doesn't exist"
	case CodeEmptyMenu:
		return "the menu is empty"
	case CodeSoldOut:
		return "item is sold out"
	case CodeUserBroke:
		return "insufficient funds"
	case CodeUnknownCommand:
		return "unknown command"
	}
	return string(c)
}

// Response is the structured result of one dispatched command: a tagged
// success carrying the payload, or a failure carrying a Code and message.
type Response struct {
	// Code is empty on success.
	Code Code
	// Body is the success payload, or the failure message.
	Body string
}

// Success builds a successful Response with the given payload.
func Success(body string) Response {
	return Response{Body: body}
}

// Fail builds a failed Response with the code's standard message.
func Fail(code Code) Response {
	return Response{Code: code, Body: code.message()}
}

// Failf builds a failed Response with a custom message.
func Failf(code Code, format string, args ...any) Response {
	return Response{Code: code, Body: fmt.Sprintf(format, args...)}
}

// OK reports whether the command succeeded.
func (r Response) OK() bool {
	return r.Code == ""
}

// Render produces the wire string for the response.
func (r Response) Render() string {
	if r.OK() {
		return r.Body
	}
	return "Error: " + r.Body
}
