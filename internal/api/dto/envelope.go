package dto

import apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps every JSON response.
type Envelope struct {
	Status  string                     `json:"status"`
	Message string                     `json:"message,omitempty"`
	Data    any                        `json:"data,omitempty"`
	Errors  []apperrors.FieldViolation `json:"errors,omitempty"`
	Stack   string                     `json:"stack,omitempty"`
	Detail  string                     `json:"detail,omitempty"`
}

// Success wraps data in a success envelope.
func Success(data any) Envelope {
	return Envelope{Status: StatusSuccess, Data: data}
}

// SuccessMessage wraps data with a human readable message. data may be nil.
func SuccessMessage(message string, data any) Envelope {
	return Envelope{Status: StatusSuccess, Message: message, Data: data}
}

// Failure builds an error envelope.
func Failure(message string, violations []apperrors.FieldViolation) Envelope {
	return Envelope{Status: StatusError, Message: message, Errors: violations}
}
