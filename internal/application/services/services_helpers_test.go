package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/easayliu/http-folder/internal/infrastructure/filesystem"
	apperrors "github.com/easayliu/http-folder/internal/shared/errors"
)

// recordingSender 记录发送的消息
type recordingSender struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (r *recordingSender) Send(ctx context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, text)
	return r.err
}

func (r *recordingSender) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

func newTestStore(t *testing.T) *filesystem.Store {
	t.Helper()
	root, err := filesystem.NewRoot(t.TempDir())
	if err != nil {
		t.Fatalf("NewRoot() error = %v", err)
	}
	return filesystem.NewStore(root)
}

func assertServiceError(t *testing.T, err error, code apperrors.ErrorCode, message string) {
	t.Helper()
	var serviceErr *apperrors.ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("error %v is not a ServiceError", err)
	}
	if serviceErr.Code != code {
		t.Errorf("Code = %s, want %s", serviceErr.Code, code)
	}
	if message != "" && serviceErr.Message != message {
		t.Errorf("Message = %q, want %q", serviceErr.Message, message)
	}
}
