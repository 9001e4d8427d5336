package main

import (
	"fmt"
	"log"
	"net"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/maintenance-tracker/pkg/auth"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/db"
	mtGrpc "liyu1981.xyz/maintenance-tracker/pkg/grpc"
	mtHttp "liyu1981.xyz/maintenance-tracker/pkg/http"
	"liyu1981.xyz/maintenance-tracker/pkg/limiter"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	cfg, err := common.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	dbInstance, err := db.OpenFromConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer dbInstance.Close()

	logger := common.GetLogger()

	trackerCore := tracker.New(dbInstance)
	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	limiterInfo := zap.String("default_limiter",
		fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.DefaultRate, cfg.DefaultBurst))

	if cfg.GRPCHostPort != "" {
		logger.Info("Starting gRPC server on port " + cfg.GRPCHostPort)
		go func() {
			s := mtGrpc.NewServer(&mtGrpc.MaintenanceServer{
				Tracker:          trackerCore,
				Sessions:         sessions,
				RateLimiterStore: limiter.NewStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
			})
			logger.Info("gRPC server created with:", limiterInfo)

			listener, err := net.Listen("tcp", cfg.GRPCHostPort)
			if err != nil {
				log.Fatalf("failed to listen: %v", err)
			}

			logger.Info("start gRPC server on " + cfg.GRPCHostPort)
			if err := s.Serve(listener); err != nil {
				log.Fatalf("grpc server failed to serve: %v", err)
			}
		}()
	}

	if common.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rs := &mtHttp.RestfulServer{
		Server:           gin.Default(),
		Tracker:          trackerCore,
		Sessions:         sessions,
		RateLimiterStore: limiter.NewStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
	}
	if err := rs.Setup(); err != nil {
		log.Fatal(err)
	}

	logger.Info("http server created with:", limiterInfo)

	logger.Info("Starting HTTP server on: " + cfg.HTTPHostPort)
	if err := rs.Server.Run(cfg.HTTPHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
