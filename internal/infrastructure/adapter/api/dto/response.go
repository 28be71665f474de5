package dto

import (
	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
)

// Response is the envelope every successful endpoint returns
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the envelope every failed endpoint returns
type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Code    int               `json:"code,omitempty"`
	Errors  []errs.FieldError `json:"errors,omitempty"`
}

// OK builds a success envelope
func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail builds an error envelope
func Fail(code int, message string, fields []errs.FieldError) ErrorResponse {
	return ErrorResponse{Success: false, Message: message, Code: code, Errors: fields}
}
