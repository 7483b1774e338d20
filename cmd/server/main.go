package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/easayliu/http-folder/internal/application/services"
	"github.com/easayliu/http-folder/internal/infrastructure/config"
	"github.com/easayliu/http-folder/internal/interfaces/http/routes"
	"github.com/easayliu/http-folder/pkg/logger"
	"github.com/easayliu/http-folder/pkg/netutil"
	"github.com/gin-gonic/gin"
)

// usage: server [--config file] [--log-level level] [root_dir] [port]
func main() {
	// 加载配置
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	// 初始化日志
	if err := logger.Init(logger.Options{
		Level:     cfg.Log.Level,
		Output:    cfg.Log.Output,
		Format:    cfg.Log.Format,
		FilePath:  cfg.Log.FilePath,
		Colorize:  cfg.Log.Colorize,
		AddSource: cfg.Log.AddSource,
	}); err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Close()

	gin.SetMode(cfg.Server.Mode)

	// 初始化服务容器
	container, err := services.NewServiceContainer(cfg)
	if err != nil {
		log.Fatal("Failed to initialize service container: ", err)
	}
	if err := container.Start(); err != nil {
		log.Fatal("Failed to start background services: ", err)
	}

	router := routes.SetupRoutes(container)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 设置信号处理
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 启动服务器
	go func() {
		logger.Info("Starting server",
			"root", cfg.Server.RootDir,
			"address", server.Addr,
			"qps", cfg.Server.QPS,
			"max_upload_mb", cfg.Server.MaxUploadMB,
			"notifications", container.GetNotificationService().IsEnabled(),
			"bot_token", cfg.Telegram.BotToken)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	if cfg.Server.ShowQRCode {
		go func() {
			ip, err := netutil.LocalIP()
			if err != nil {
				logger.Warn("LAN address not available", "error", err)
				return
			}
			netutil.PrintBanner(os.Stdout, netutil.BrowseURL(ip, cfg.Server.Port))
		}()
	}

	// 等待退出信号
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	if err := container.Shutdown(ctx); err != nil {
		logger.Error("Background services shutdown failed", "error", err)
	}

	logger.Info("Server stopped")
}
