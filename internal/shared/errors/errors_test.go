package errors

import (
	"fmt"
	"io/fs"
	"net/http"
	"testing"
)

func TestServiceError_HTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeInvalidRequest, http.StatusBadRequest},
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeRateLimit, http.StatusTooManyRequests},
		{ErrorCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{ErrorCodeInternalError, http.StatusInternalServerError},
		{ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := NewServiceError(tt.code, "x").HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAsServiceError(t *testing.T) {
	cause := fs.ErrNotExist
	wrapped := fmt.Errorf("delete: %w", NewServiceErrorWithCause(ErrorCodeNotFound, MessageFileNotFound, cause))

	serviceErr, ok := AsServiceError(wrapped)
	if !ok {
		t.Fatal("expected ServiceError in chain")
	}
	if serviceErr.Message != MessageFileNotFound {
		t.Errorf("Message = %q", serviceErr.Message)
	}
	if _, ok := AsServiceError(cause); ok {
		t.Error("plain error reported as ServiceError")
	}
}
