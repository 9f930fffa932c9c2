package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"shortlink-qr/internal/config"
	"shortlink-qr/internal/geo"
	"shortlink-qr/internal/handler"
	"shortlink-qr/internal/i18n"
	"shortlink-qr/internal/repository"
	"shortlink-qr/internal/router"
	"shortlink-qr/internal/service"
	"shortlink-qr/pkg/logging"
	"shortlink-qr/pkg/qrcode"
)

func startServer(r *gin.Engine, addr string, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器
	go func() {
		logger.Info("Server is running on " + addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}

// loadRenderer 加载 logo；失败时请求阶段返回图片生成错误，不阻止启动
func loadRenderer(cfg config.QRConfig, logger *zap.Logger) *qrcode.Renderer {
	opts := qrcode.DefaultOptions()
	if cfg.Size > 0 {
		opts.Size = cfg.Size
	}
	logo, err := qrcode.LoadLogo(cfg.LogoPath)
	if err != nil {
		logger.Error("Failed to load QR logo", zap.String("path", cfg.LogoPath), zap.Error(err))
	}
	return qrcode.NewRenderer(logo, opts)
}

// closeLocator 关闭 GeoIP 数据库；Noop 无需关闭
func closeLocator(locator geo.Locator, logger *zap.Logger) {
	closer, ok := locator.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn("GeoIP database close failed", zap.Error(err))
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	logger := logging.Init(cfg.Log)
	defer func() { _ = logger.Sync() }()
	logger.Info("Application started", zap.String("version", cfg.App.Version))

	db, err := repository.OpenDB(cfg.DB, logger, logging.AtomicLevel)
	if err != nil {
		logger.Fatal("Failed to connect database", zap.Error(err))
	}
	defer func() {
		if err := repository.CloseDB(db); err != nil {
			logger.Warn("Database close failed", zap.Error(err))
		}
	}()

	pool := repository.NewRedisPool(cfg.Redis, logger)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("Redis pool close failed", zap.Error(err))
		}
	}()

	locator := geo.New(cfg.Geo.DBPath, logger)
	defer closeLocator(locator, logger)

	// 初始化 i18n（加载 TOML 文件）
	bundle, err := i18n.Load(cfg.I18n.Files, cfg.I18n.DefaultLang)
	if err != nil {
		logger.Fatal("Failed to initialize i18n", zap.Error(err))
	}

	links := repository.NewLinkStore(db)
	linkSvc := service.NewLinkService(
		links,
		service.NewCodeGenerator(service.DefaultCodeLength),
		service.NewVisitRecorder(links, locator, logger),
		logger,
	)
	statsSvc := service.NewStatsService(repository.NewStatsStore(db), links, logger)
	qrSvc := service.NewQRService(
		repository.NewQRCache(pool, logger),
		loadRenderer(cfg.QR, logger),
		cfg.QR.AllowedDomain,
		cfg.QR.CacheTTL,
		logger,
	)

	gin.SetMode(gin.ReleaseMode)
	r := router.New(router.Handlers{
		ShortLink: handler.NewShortLinkHandler(linkSvc, statsSvc, cfg.Server.BaseURL, logger),
		QR:        handler.NewQRHandler(qrSvc, logger),
		App:       handler.NewAppHandler(cfg.App, locator),
	}, bundle, logger)

	c := cron.New()
	// 定时汇总每日 PV/UV，默认每十分钟一次
	_, addErr := c.AddFunc(cfg.Stats.Cron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := statsSvc.Rollup(ctx); err != nil {
			logger.Error("Daily stats rollup failed", zap.Error(err))
		}
	})
	if addErr != nil {
		logger.Fatal("Failed to schedule cron job", zap.Error(addErr))
	}
	c.Start()
	defer c.Stop()

	startServer(r, cfg.Server.Addr, logger)
	logger.Info("Server exiting")
}
