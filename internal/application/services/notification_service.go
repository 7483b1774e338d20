package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/easayliu/http-folder/internal/application/contracts"
	"github.com/easayliu/http-folder/pkg/logger"
)

const notificationSendTimeout = 15 * time.Second

// AppNotificationService 通过Sender异步投递事件
type AppNotificationService struct {
	sender contracts.Sender

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewNotificationService sender为nil时返回禁用的通知服务
func NewNotificationService(sender contracts.Sender) contracts.NotificationService {
	if sender == nil {
		return &DisabledNotificationService{}
	}
	return &AppNotificationService{sender: sender}
}

func (s *AppNotificationService) IsEnabled() bool {
	return true
}

// Publish 在后台发送事件，不阻塞调用方
func (s *AppNotificationService) Publish(event contracts.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		logger.Debug("Notification dropped after close", "type", event.Type)
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), notificationSendTimeout)
		defer cancel()

		if err := s.sender.Send(ctx, FormatEvent(event)); err != nil {
			logger.Error("Failed to send notification", "type", event.Type, "error", err)
			return
		}
		logger.Debug("Notification sent", "type", event.Type)
	}()
}

func (s *AppNotificationService) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FormatEvent 事件的纯文本表示
func FormatEvent(event contracts.Event) string {
	icon := "ℹ️"
	switch event.Type {
	case contracts.EventFileUploaded:
		icon = "📤"
	case contracts.EventFileDeleted:
		icon = "🗑"
	case contracts.EventUsageReport:
		icon = "📊"
	}

	text := fmt.Sprintf("%s %s", icon, event.Title)
	if event.Content != "" {
		text += "\n" + event.Content
	}
	return text + "\n" + event.Timestamp.Format("2006-01-02 15:04:05")
}

// DisabledNotificationService 未配置通知渠道时使用，所有事件被丢弃
type DisabledNotificationService struct{}

func (s *DisabledNotificationService) Publish(contracts.Event) {}

func (s *DisabledNotificationService) IsEnabled() bool {
	return false
}

func (s *DisabledNotificationService) Close(context.Context) error {
	return nil
}
