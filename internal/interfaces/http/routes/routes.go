package routes

import (
	"github.com/easayliu/http-folder/internal/application/services"
	"github.com/easayliu/http-folder/internal/infrastructure/ratelimit"
	"github.com/easayliu/http-folder/internal/interfaces/http/handlers"
	"github.com/easayliu/http-folder/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 使用ServiceContainer创建路由
// 根目录下的每个路径都可访问，因此没有固定路由表：所有方法和路径都交给FolderHandler分发
func SetupRoutes(container *services.ServiceContainer) *gin.Engine {
	cfg := container.GetConfig()

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// 全局中间件，顺序决定日志能记录到恢复后的状态码
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RecoverMiddleware())
	router.Use(middleware.ErrorHandlerMiddleware())
	if cfg.Server.CORS {
		router.Use(middleware.CORSMiddleware())
	}
	router.Use(middleware.RateLimitMiddleware(ratelimit.NewRateLimiter(cfg.Server.QPS)))

	folderHandler := handlers.NewFolderHandler(container.GetFolderService(), cfg.Server.MaxUploadBytes())

	router.Any("/*path", folderHandler.Dispatch)
	// gin.Any 之外的方法（如PROPFIND）落到NoRoute，同样走分发规则
	router.NoRoute(folderHandler.Dispatch)

	return router
}
