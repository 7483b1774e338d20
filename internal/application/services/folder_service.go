package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/easayliu/http-folder/internal/application/contracts"
	"github.com/easayliu/http-folder/internal/infrastructure/filesystem"
	apperrors "github.com/easayliu/http-folder/internal/shared/errors"
	"github.com/easayliu/http-folder/pkg/logger"
)

// AppFolderService 根目录下的列表、下载、上传、删除
// 每个操作在访问文件系统前先做路径包含检查
type AppFolderService struct {
	store    *filesystem.Store
	notifier contracts.NotificationService
}

// NewFolderService 创建文件夹服务
func NewFolderService(store *filesystem.Store, notifier contracts.NotificationService) *AppFolderService {
	if notifier == nil {
		notifier = &DisabledNotificationService{}
	}
	return &AppFolderService{
		store:    store,
		notifier: notifier,
	}
}

// resolve 路径越界时返回403错误
func (s *AppFolderService) resolve(requestPath string) (string, error) {
	resolved, err := s.store.Root().Resolve(requestPath)
	if err != nil {
		logger.Warn("Rejected path outside root", "path", requestPath)
		return "", apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeForbidden, apperrors.MessageAccessDenied, err)
	}
	return resolved, nil
}

func (s *AppFolderService) List(ctx context.Context, requestPath string) ([]string, error) {
	dir, err := s.resolve(requestPath)
	if err != nil {
		return nil, err
	}

	names, err := s.store.ListDir(dir)
	if err != nil {
		logger.Warn("Failed to read directory", "path", requestPath, "error", err)
		// 目录不可读时返回400和原始错误信息，与下载/删除的404不同
		return nil, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeInvalidRequest, err.Error(), err)
	}
	return names, nil
}

func (s *AppFolderService) Open(ctx context.Context, requestPath string) (*contracts.FileContent, error) {
	name, err := s.resolve(requestPath)
	if err != nil {
		return nil, err
	}

	f, err := s.store.Open(name)
	if err != nil {
		logger.Debug("Download target unavailable", "path", requestPath, "error", err)
		return nil, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeNotFound, apperrors.MessageFileNotFound, err)
	}
	return &contracts.FileContent{Reader: f, Size: f.Size}, nil
}

func (s *AppFolderService) Upload(ctx context.Context, requestPath string, body io.Reader) (int64, error) {
	name, err := s.resolve(requestPath)
	if err != nil {
		return 0, err
	}

	n, err := s.store.Write(name, body)
	if err != nil {
		logger.Error("Upload failed", "path", requestPath, "written", n, "error", err)

		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, filesystem.ErrCreateDirectory):
			return n, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeInternalError, apperrors.MessageCreateDirFailed, err)
		case errors.As(err, &tooLarge):
			return n, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodePayloadTooLarge, apperrors.MessageTooLarge, err)
		default:
			return n, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeInternalError, apperrors.MessageWriteFailed, err)
		}
	}

	logger.Info("File uploaded", "path", requestPath, "bytes", n)
	s.notifier.Publish(contracts.Event{
		Type:    contracts.EventFileUploaded,
		Title:   "File uploaded: " + s.store.Root().Rel(name),
		Content: fmt.Sprintf("Size: %s", FormatBytes(n)),
	})

	return n, nil
}

func (s *AppFolderService) Delete(ctx context.Context, requestPath string) error {
	name, err := s.resolve(requestPath)
	if err != nil {
		return err
	}

	if err := s.store.Remove(name); err != nil {
		logger.Debug("Delete target unavailable", "path", requestPath, "error", err)
		return apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeNotFound, apperrors.MessageFileNotFound, err)
	}

	logger.Info("File deleted", "path", requestPath)
	s.notifier.Publish(contracts.Event{
		Type:  contracts.EventFileDeleted,
		Title: "File deleted: " + s.store.Root().Rel(name),
	})

	return nil
}

// FormatBytes 人类可读的字节数
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

var _ contracts.FolderService = (*AppFolderService)(nil)
