package services

import (
	"fmt"
	"sync"

	"github.com/easayliu/http-folder/internal/application/contracts"
	"github.com/easayliu/http-folder/internal/infrastructure/filesystem"
	"github.com/easayliu/http-folder/pkg/logger"
	"github.com/robfig/cron/v3"
)

// UsageReportService 按cron表达式定期统计根目录并发送报告
type UsageReportService struct {
	cron     *cron.Cron
	spec     string
	store    *filesystem.Store
	notifier contracts.NotificationService

	mu      sync.Mutex
	running bool
	entryID cron.EntryID
}

// NewUsageReportService spec为空时Start不做任何事
func NewUsageReportService(spec string, store *filesystem.Store, notifier contracts.NotificationService) *UsageReportService {
	return &UsageReportService{
		cron:     cron.New(), // 标准5字段格式（分 时 日 月 周）
		spec:     spec,
		store:    store,
		notifier: notifier,
	}
}

// Start 启动调度器
func (s *UsageReportService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running || s.spec == "" {
		return nil
	}

	id, err := s.cron.AddFunc(s.spec, func() {
		if _, err := s.Report(); err != nil {
			logger.Error("Usage report failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	s.entryID = id
	s.cron.Start()
	s.running = true
	logger.Info("Usage report scheduler started", "cron", s.spec)

	return nil
}

// Stop 停止调度器并等待正在执行的任务
func (s *UsageReportService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.running = false
	logger.Info("Usage report scheduler stopped")
}

// Running 调度器是否在运行
func (s *UsageReportService) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Report 立即统计一次并发布通知
func (s *UsageReportService) Report() (filesystem.Usage, error) {
	root := s.store.Root().Path()

	usage, err := s.store.Walk(root)
	if err != nil {
		return usage, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	logger.Info("Usage report",
		"root", root,
		"files", usage.Files,
		"directories", usage.Directories,
		"bytes", usage.Bytes)

	if s.notifier != nil {
		s.notifier.Publish(contracts.Event{
			Type:  contracts.EventUsageReport,
			Title: "Usage report: " + root,
			Content: fmt.Sprintf("Files: %d\nDirectories: %d\nTotal size: %s",
				usage.Files, usage.Directories, FormatBytes(usage.Bytes)),
		})
	}

	return usage, nil
}
