package sdpbody

import (
	"errors"
	"fmt"
)

// ErrorCode код ошибки извлечения тела
type ErrorCode string

const (
	// Ошибки фрейминга сообщения
	CodeBodyMissing         ErrorCode = "BODY_MISSING"
	CodeLengthMissing       ErrorCode = "LENGTH_MISSING"
	CodeLengthZero          ErrorCode = "LENGTH_ZERO"
	CodeLengthExceedsBuffer ErrorCode = "LENGTH_EXCEEDS_BUFFER"

	// Ошибки Content-Type
	CodeContentTypeInvalid ErrorCode = "CONTENT_TYPE_INVALID"

	// Ошибки multipart
	CodeMultipartEmpty         ErrorCode = "MULTIPART_EMPTY"
	CodeMultipartMalformedPart ErrorCode = "MULTIPART_MALFORMED_PART"
	CodeMultipartNoSDPPart     ErrorCode = "MULTIPART_NO_SDP_PART"
	CodeMultipartDecodeFailure ErrorCode = "MULTIPART_DECODE_FAILURE"
	CodeMultipartNoBoundary    ErrorCode = "MULTIPART_NO_BOUNDARY"

	// Ошибки аксессоров заголовков и SDP
	CodeHeaderMissing ErrorCode = "HEADER_MISSING"
	CodeHeaderInvalid ErrorCode = "HEADER_INVALID"
	CodeSDPInvalid    ErrorCode = "SDP_INVALID"
	CodeSDPNoMedia    ErrorCode = "SDP_NO_MEDIA"
)

// Error структурированная ошибка с кодом и контекстом.
// errors.Is сравнивает ошибки по коду, поэтому sentinel-значения ниже
// совпадают с любой ошибкой того же кода.
type Error struct {
	Code    ErrorCode
	Message string
	Fields  map[string]interface{}
	Cause   error
}

// Error реализует интерфейс error
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap позволяет использовать errors.Is и errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is сравнивает по коду ошибки
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithField добавляет дополнительное поле к ошибке
func (e *Error) WithField(key string, value interface{}) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// WithCause добавляет исходную ошибку
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

func newError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf возвращает код ошибки или пустую строку для чужих ошибок
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Sentinel-ошибки для errors.Is
var (
	ErrBodyMissing            = &Error{Code: CodeBodyMissing, Message: "message body not found"}
	ErrLengthMissing          = &Error{Code: CodeLengthMissing, Message: "Content-Length not found"}
	ErrLengthZero             = &Error{Code: CodeLengthZero, Message: "message body has length zero"}
	ErrLengthExceedsBuffer    = &Error{Code: CodeLengthExceedsBuffer, Message: "Content-Length exceeds packet length"}
	ErrContentTypeInvalid     = &Error{Code: CodeContentTypeInvalid, Message: "content type mismatch"}
	ErrMultipartEmpty         = &Error{Code: CodeMultipartEmpty, Message: "empty multipart content"}
	ErrMultipartMalformedPart = &Error{Code: CodeMultipartMalformedPart, Message: "unparsable multipart part"}
	ErrMultipartNoSDPPart     = &Error{Code: CodeMultipartNoSDPPart, Message: "no application/sdp part"}
	ErrMultipartDecodeFailure = &Error{Code: CodeMultipartDecodeFailure, Message: "cannot decode part Content-Type"}
	ErrMultipartNoBoundary    = &Error{Code: CodeMultipartNoBoundary, Message: "multipart boundary not found"}
	ErrHeaderMissing          = &Error{Code: CodeHeaderMissing, Message: "header not found"}
	ErrHeaderInvalid          = &Error{Code: CodeHeaderInvalid, Message: "header cannot be parsed"}
	ErrSDPInvalid             = &Error{Code: CodeSDPInvalid, Message: "SDP cannot be parsed"}
	ErrSDPNoMedia             = &Error{Code: CodeSDPNoMedia, Message: "SDP has no media stream"}
)
