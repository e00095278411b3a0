package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/fairwaylabs/launchpoint/internal/auth/http"
	authservice "github.com/fairwaylabs/launchpoint/internal/auth/service"
	"github.com/fairwaylabs/launchpoint/internal/common/bootstrap"
	"github.com/fairwaylabs/launchpoint/internal/common/clock"
	commoncrypto "github.com/fairwaylabs/launchpoint/internal/common/crypto"
	commonhttp "github.com/fairwaylabs/launchpoint/internal/common/http"
	srv "github.com/fairwaylabs/launchpoint/internal/common/server"
	devicehttp "github.com/fairwaylabs/launchpoint/internal/device/http"
	deviceservice "github.com/fairwaylabs/launchpoint/internal/device/service"
	userhttp "github.com/fairwaylabs/launchpoint/internal/user/http"
	userservice "github.com/fairwaylabs/launchpoint/internal/user/service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.NewApp(ctx)
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to start: %v\n", err))
		os.Exit(1)
	}
	defer app.Close()

	log := app.Log
	cfg := app.Config

	clk := clock.NewRealClock()
	hasher := commoncrypto.NewScryptHasher()
	issuer := authservice.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL, clk)
	auth := authservice.NewAuthService(app.UserRepo, hasher, issuer, clk, cfg.TrialPeriod, log)
	users := userservice.NewService(app.UserRepo, log)
	devices := deviceservice.NewService(app.DeviceRepo, log)

	requireAuth := authhttp.RequireAuth(auth, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler())
	mux.Handle("/metrics", promhttp.Handler())
	authhttp.NewHandler(auth, cfg.RequestTimeout, log).Register(mux)
	userhttp.NewHandler(users, cfg.RequestTimeout, log).Register(mux, requireAuth)
	devicehttp.NewHandler(devices, cfg.RequestTimeout, log).Register(mux, requireAuth)

	rateLimiter := commonhttp.NewStrictRateLimiter()
	baseHandler := commonhttp.BuildBaseHandler(log, mux)

	finalHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/health" || path == "/metrics" {
			baseHandler.ServeHTTP(w, r)
			return
		}
		rateLimiter.Middleware(baseHandler).ServeHTTP(w, r)
	})

	server := srv.New(srv.DefaultConfig(cfg.HTTPPort), finalHandler)

	hooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			cancel()
			return nil
		},
	}

	srv.StartWithGracefulShutdown(server, log, "api", hooks)
}
