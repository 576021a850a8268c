package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Miraines/MoonyAndStarry/qr-service/internal/adapters/credentials/memory"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/adapters/render/qr"
	afsstore "github.com/Miraines/MoonyAndStarry/qr-service/internal/adapters/storage/afs"
	myHttp "github.com/Miraines/MoonyAndStarry/qr-service/internal/adapters/transport/http"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/app/auth/jwt"
	authsvc "github.com/Miraines/MoonyAndStarry/qr-service/internal/app/auth/service"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/app/qrcode/filename"
	qrsvc "github.com/Miraines/MoonyAndStarry/qr-service/internal/app/qrcode/service"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/infra/config"
	lg "github.com/Miraines/MoonyAndStarry/qr-service/internal/infra/log"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/infra/metrics"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/infra/server"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := afsstore.NewImageStore(rootCtx, cfg.QRDirectory, filename.Ext)
	if err != nil {
		zapLog.Fatal("failed to open qr code directory", zap.String("dir", cfg.QRDirectory), zap.Error(err))
	}

	creds, err := memory.NewFromConfig(cfg)
	if err != nil {
		zapLog.Fatal("failed to init credential store", zap.Error(err))
	}
	jwtUtil, err := jwt.NewJWTUtil(cfg)
	if err != nil {
		zapLog.Fatal("failed to init JWT util", zap.Error(err))
	}

	validate := validator.New()
	auth := authsvc.New(creds, jwtUtil, cfg, validate)
	qrService := qrsvc.New(store, qr.NewRenderer(), cfg, validate, zapLog)

	m := metrics.New()
	handler := myHttp.NewHandler(auth, qrService, m, zapLog)
	router := myHttp.NewRouter(cfg, handler, auth, m, zapLog)

	g, ctx := errgroup.WithContext(rootCtx)
	g.Go(func() error {
		return server.StartHTTPServer(ctx, cfg, router, zapLog)
	})

	zapLog.Info("qr service started",
		zap.String("addr", cfg.HTTPAddress),
		zap.String("base_url", cfg.ServerBaseURL),
		zap.String("qr_dir", store.BaseURL()),
		zap.Duration("token_ttl", cfg.AccessTokenTTL),
	)

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
		os.Exit(1)
	}
	zapLog.Info("shutdown complete")
}
