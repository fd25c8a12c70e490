package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"invoicewizard/internal/config"
	"invoicewizard/internal/db"
	"invoicewizard/internal/httpserver"
	customerrepo "invoicewizard/internal/repository/customer"
	invoicerepo "invoicewizard/internal/repository/invoice"
	tokenrepo "invoicewizard/internal/repository/token"
	userrepo "invoicewizard/internal/repository/user"
	authsvc "invoicewizard/internal/service/auth"
	customersvc "invoicewizard/internal/service/customer"
	dashboardsvc "invoicewizard/internal/service/dashboard"
	invoicesvc "invoicewizard/internal/service/invoice"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	userRepo := userrepo.NewPostgres(dbpool)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	invoiceRepo := invoicerepo.NewPostgres(dbpool, logger)

	authService := authsvc.New(userRepo, tokenRepo)
	customerService := customersvc.New(customerRepo)
	invoiceService := invoicesvc.New(invoiceRepo)
	dashboardService := dashboardsvc.New(customerRepo, invoiceRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		AuthSvc:      authService,
		CustomerSvc:  customerService,
		InvoiceSvc:   invoiceService,
		DashboardSvc: dashboardService,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
