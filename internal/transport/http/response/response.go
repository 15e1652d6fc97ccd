package response

import "cutconnect/internal/validation"

// ErrorBody is the shape of every non-2xx answer.
type ErrorBody struct {
	Detail any `json:"detail"`
}

// Error builds {"detail": msg}; an empty msg falls back to the status text.
func Error(code int, customMsg string) ErrorBody {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return ErrorBody{Detail: msg}
}

// Validation lists every violated field under detail.
func Validation(ve *validation.ValidationError) ErrorBody {
	fields := ve.Fields
	if fields == nil {
		fields = []validation.FieldError{}
	}
	return ErrorBody{Detail: fields}
}

// ID is the answer of every create endpoint.
type ID struct {
	ID string `json:"id"`
}
