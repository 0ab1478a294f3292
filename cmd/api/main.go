package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"salon-suite/internal/core/auth"
	"salon-suite/internal/core/cache"
	"salon-suite/internal/core/config"
	"salon-suite/internal/core/database"
	"salon-suite/internal/core/logger"
	"salon-suite/internal/core/poll"
	"salon-suite/internal/core/server"
	"salon-suite/internal/feature/account"
	"salon-suite/internal/feature/booking"
	"salon-suite/internal/feature/client"
	"salon-suite/internal/feature/staff"
	"salon-suite/internal/repo"
	"salon-suite/internal/transport/http/router"
)

var clientsTotal = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "salon_clients_total",
	Help: "Number of client records",
})

func init() { prometheus.MustRegister(clientsTotal) }

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	// 数据库（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&account.AccountModel{},
			&client.ClientModel{},
			&client.LoyaltyModel{},
			&client.TransactionModel{},
			&staff.StaffModel{},
			&staff.StaffLocationModel{},
			&staff.LocationModel{},
			&booking.AppointmentModel{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	ca := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	r := router.NewAPIEngine(log, db, ca, jwter)

	// 后台轮询：客户数 gauge + 网点缓存保热
	clientRepo := repo.NewClientRepo(db, log)
	dirRepo := repo.NewDirectoryRepo(db)
	poller := poll.New("background-refresh", time.Duration(cfg.Poll.IntervalSec)*time.Second, log,
		func(ctx context.Context) error {
			n, err := clientRepo.CountActive(ctx)
			if err != nil {
				return err
			}
			clientsTotal.Set(float64(n))
			return router.WarmLocationCache(ctx, dirRepo, ca)
		})
	poller.Start()
	defer poller.Stop()

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("salon api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("salon api start FAILED", zap.Error(err))
		}
	}()
	log.Info("salon api started")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("salon api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File != "" {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
			Filename:   cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		})
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
