package contracts

import (
	"context"
	"time"
)

// EventType 通知事件类型
type EventType string

const (
	EventFileUploaded EventType = "file_uploaded"
	EventFileDeleted  EventType = "file_deleted"
	EventUsageReport  EventType = "usage_report"
)

// Event 通知事件
type Event struct {
	Type      EventType
	Title     string
	Content   string
	Timestamp time.Time
}

// Sender 通知渠道（如Telegram）
type Sender interface {
	Send(ctx context.Context, text string) error
}

// NotificationService 异步通知服务，发送失败只记录日志
type NotificationService interface {
	Publish(event Event)
	IsEnabled() bool
	// Close 停止接收新事件并等待已发布的事件发送完成
	Close(ctx context.Context) error
}
