package errors

import (
	stderrors "errors"
	"net/http"
)

// ErrorCode 业务错误码
type ErrorCode string

const (
	ErrorCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrorCodeInternalError   ErrorCode = "INTERNAL_ERROR"
	ErrorCodeRateLimit       ErrorCode = "RATE_LIMIT"
	ErrorCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
)

// 响应正文，保持与已有客户端一致
const (
	MessageAccessDenied    = "Access Denied"
	MessageFileNotFound    = "File Not Found"
	MessageBadRequest      = "Bad Request"
	MessageCreateDirFailed = "Failed to create directory"
	MessageWriteFailed     = "Failed to write file"
	MessageTooLarge        = "Request Entity Too Large"
	MessageTooManyRequests = "Too Many Requests"
	MessageUploaded        = "Uploaded successfully"
	MessageDeleted         = "Deleted succesfully"
)

// ServiceError 业务错误
type ServiceError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Cause.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// HTTPStatus 将业务错误码映射到HTTP状态码
func (e *ServiceError) HTTPStatus() int {
	switch e.Code {
	case ErrorCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeForbidden:
		return http.StatusForbidden
	case ErrorCodeRateLimit:
		return http.StatusTooManyRequests
	case ErrorCodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// NewServiceError 创建业务错误
func NewServiceError(code ErrorCode, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithCause 创建带原因的业务错误
func NewServiceErrorWithCause(code ErrorCode, message string, cause error) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// AsServiceError 从错误链中取出ServiceError
func AsServiceError(err error) (*ServiceError, bool) {
	var serviceErr *ServiceError
	if stderrors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}
