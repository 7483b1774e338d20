package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	apperrors "github.com/easayliu/http-folder/internal/shared/errors"
)

func TestFolderService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	sender := &recordingSender{}
	notifier := NewNotificationService(sender)
	svc := NewFolderService(newTestStore(t), notifier)

	n, err := svc.Upload(ctx, "/a/b/c.txt", strings.NewReader("hello"))
	if err != nil || n != 5 {
		t.Fatalf("Upload() = %d, %v", n, err)
	}

	content, err := svc.Open(ctx, "/a/b/c.txt")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	data, _ := io.ReadAll(content.Reader)
	content.Reader.Close()
	if string(data) != "hello" || content.Size != 5 {
		t.Errorf("Open() = %q (size %d)", data, content.Size)
	}

	names, err := svc.List(ctx, "/a/")
	if err != nil || len(names) != 1 || names[0] != "b/" {
		t.Errorf("List(/a/) = %v, %v", names, err)
	}

	if err := svc.Delete(ctx, "/a/b/c.txt"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err = svc.Open(ctx, "/a/b/c.txt")
	assertServiceError(t, err, apperrors.ErrorCodeNotFound, apperrors.MessageFileNotFound)

	if err := notifier.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	messages := sender.Messages()
	sort.Strings(messages)
	if len(messages) != 2 {
		t.Fatalf("sent %d notifications, want 2: %v", len(messages), messages)
	}
	if !strings.Contains(strings.Join(messages, "\n"), "File uploaded: /a/b/c.txt") {
		t.Errorf("upload notification missing: %v", messages)
	}
}

func TestFolderService_PathEscapeIsForbidden(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewFolderService(store, nil)

	outside := filepath.Join(filepath.Dir(store.Root().Path()), "escaped.txt")
	t.Cleanup(func() { os.Remove(outside) })

	escape := "/../escaped.txt"

	_, err := svc.List(ctx, "/../")
	assertServiceError(t, err, apperrors.ErrorCodeForbidden, apperrors.MessageAccessDenied)

	_, err = svc.Open(ctx, "/../../etc/passwd")
	assertServiceError(t, err, apperrors.ErrorCodeForbidden, apperrors.MessageAccessDenied)

	_, err = svc.Upload(ctx, escape, strings.NewReader("x"))
	assertServiceError(t, err, apperrors.ErrorCodeForbidden, apperrors.MessageAccessDenied)
	if _, statErr := os.Stat(outside); !os.IsNotExist(statErr) {
		t.Errorf("file written outside root: %v", statErr)
	}

	err = svc.Delete(ctx, escape)
	assertServiceError(t, err, apperrors.ErrorCodeForbidden, apperrors.MessageAccessDenied)
}

func TestFolderService_ListFailures(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewFolderService(store, nil)

	if err := os.WriteFile(filepath.Join(store.Root().Path(), "file.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{"/missing/", "/file.txt/"} {
		_, err := svc.List(ctx, p)
		assertServiceError(t, err, apperrors.ErrorCodeInvalidRequest, "")
		if serviceErr, _ := apperrors.AsServiceError(err); serviceErr.Message == "" {
			t.Errorf("List(%s) message is empty", p)
		}
	}
}

func TestFolderService_UploadFailures(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewFolderService(store, nil)

	if err := os.WriteFile(filepath.Join(store.Root().Path(), "plain"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(store.Root().Path(), "dir"), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Upload(ctx, "/plain/child.txt", strings.NewReader("y"))
	assertServiceError(t, err, apperrors.ErrorCodeInternalError, apperrors.MessageCreateDirFailed)

	_, err = svc.Upload(ctx, "/dir", strings.NewReader("y"))
	assertServiceError(t, err, apperrors.ErrorCodeInternalError, apperrors.MessageWriteFailed)

	body := http.MaxBytesReader(httptest.NewRecorder(), io.NopCloser(strings.NewReader("0123456789")), 4)
	_, err = svc.Upload(ctx, "/big.bin", body)
	assertServiceError(t, err, apperrors.ErrorCodePayloadTooLarge, apperrors.MessageTooLarge)
}

func TestFolderService_DeleteDirectoryIsNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewFolderService(store, nil)

	dir := filepath.Join(store.Root().Path(), "empty")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}

	err := svc.Delete(ctx, "/empty")
	assertServiceError(t, err, apperrors.ErrorCodeNotFound, apperrors.MessageFileNotFound)
	if _, statErr := os.Stat(dir); statErr != nil {
		t.Errorf("directory removed: %v", statErr)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
