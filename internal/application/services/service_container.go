package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/easayliu/http-folder/internal/application/contracts"
	"github.com/easayliu/http-folder/internal/infrastructure/config"
	"github.com/easayliu/http-folder/internal/infrastructure/filesystem"
	"github.com/easayliu/http-folder/internal/infrastructure/telegram"
)

// ServiceContainer 应用服务容器 - 实现依赖注入
type ServiceContainer struct {
	config *config.Config

	root                *filesystem.Root
	store               *filesystem.Store
	folderService       *AppFolderService
	notificationService contracts.NotificationService
	usageReportService  *UsageReportService
}

// NewServiceContainer 创建服务容器
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	var sender contracts.Sender
	if cfg.Telegram.Enabled {
		client, err := telegram.NewClient(&cfg.Telegram)
		if err != nil {
			return nil, err
		}
		sender = client
	}
	return NewServiceContainerWithSender(cfg, sender)
}

// NewServiceContainerWithSender 使用指定的通知渠道创建容器，sender为nil时禁用通知
func NewServiceContainerWithSender(cfg *config.Config, sender contracts.Sender) (*ServiceContainer, error) {
	root, err := filesystem.NewRoot(cfg.Server.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize root directory: %w", err)
	}

	container := &ServiceContainer{
		config: cfg,
		root:   root,
		store:  filesystem.NewStore(root),
	}

	container.notificationService = NewNotificationService(sender)
	container.folderService = NewFolderService(container.store, container.notificationService)
	container.usageReportService = NewUsageReportService(
		cfg.Scheduler.UsageReportCron,
		container.store,
		container.notificationService,
	)

	return container, nil
}

func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

func (c *ServiceContainer) GetRoot() *filesystem.Root {
	return c.root
}

func (c *ServiceContainer) GetFolderService() contracts.FolderService {
	return c.folderService
}

func (c *ServiceContainer) GetNotificationService() contracts.NotificationService {
	return c.notificationService
}

func (c *ServiceContainer) GetUsageReportService() *UsageReportService {
	return c.usageReportService
}

// Start 启动后台服务
func (c *ServiceContainer) Start() error {
	return c.usageReportService.Start()
}

// Shutdown 停止后台服务并等待通知发送完成
func (c *ServiceContainer) Shutdown(ctx context.Context) error {
	c.usageReportService.Stop()
	if err := c.notificationService.Close(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("notification shutdown: %w", err)
	}
	return nil
}
