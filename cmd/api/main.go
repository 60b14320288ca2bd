package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shop-backend/internal/config"
	"shop-backend/internal/db"
	"shop-backend/internal/httpserver"
	"shop-backend/internal/metrics"
	cartrepo "shop-backend/internal/repository/cart"
	categoryrepo "shop-backend/internal/repository/category"
	likerepo "shop-backend/internal/repository/like"
	orderrepo "shop-backend/internal/repository/order"
	productrepo "shop-backend/internal/repository/product"
	tokenrepo "shop-backend/internal/repository/token"
	userrepo "shop-backend/internal/repository/user"
	accountsvc "shop-backend/internal/service/account"
	cartsvc "shop-backend/internal/service/cart"
	categorysvc "shop-backend/internal/service/category"
	likesvc "shop-backend/internal/service/like"
	ordersvc "shop-backend/internal/service/order"
	productsvc "shop-backend/internal/service/product"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	checkoutMetrics := metrics.NewCheckout()

	userRepo := userrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	accountService := accountsvc.New(userRepo, tokenRepo)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	categoryService := categorysvc.New(categoryRepo)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	productService := productsvc.New(productRepo)
	cartRepo := cartrepo.NewPostgres(dbpool)
	cartService := cartsvc.New(cartRepo)
	likeRepo := likerepo.NewPostgres(dbpool)
	likeService := likesvc.New(likeRepo, productRepo)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	orderService := ordersvc.New(orderRepo, checkoutMetrics, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		AccountSvc:  accountService,
		CategorySvc: categoryService,
		ProductSvc:  productService,
		CartSvc:     cartService,
		LikeSvc:     likeService,
		OrderSvc:    orderService,
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
