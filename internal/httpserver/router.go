package httpserver

import (
	"context"
	"log"
	"time"

	"shop-backend/internal/domain"
	"shop-backend/internal/metrics"
	productrepo "shop-backend/internal/repository/product"
	accountsvc "shop-backend/internal/service/account"
	ordersvc "shop-backend/internal/service/order"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the services the router depends on.
type Deps struct {
	AccountSvc  AccountService
	CategorySvc CategoryService
	ProductSvc  ProductService
	CartSvc     CartService
	LikeSvc     LikeService
	OrderSvc    OrderService
}

type AccountService interface {
	Register(ctx context.Context, in accountsvc.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	Logout(ctx context.Context, token string) error
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

type ProductService interface {
	List(ctx context.Context, filter productrepo.Filter) ([]domain.Product, error)
	Featured(ctx context.Context, viewerID *string) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string, viewerID *string) (*domain.Product, error)
}

type CartService interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) (*domain.Cart, error)
}

type LikeService interface {
	List(ctx context.Context, userID string) ([]domain.Like, error)
	Toggle(ctx context.Context, userID, productID string) (bool, error)
}

type OrderService interface {
	Checkout(ctx context.Context, userID string, in ordersvc.CheckoutInput) (*domain.Order, error)
	Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error)
	List(ctx context.Context, userID string) ([]domain.Order, error)
	Get(ctx context.Context, userID, orderID string) (*domain.Order, error)
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), requestIDMiddleware())

	if len(corsOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = corsOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		corsCfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
		corsCfg.MaxAge = 12 * time.Hour
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	h := &handlers{deps: deps, logger: logger}

	router.POST("/auth/register", h.register)
	router.POST("/auth/login", h.login)

	public := router.Group("/", optionalAuthMiddleware(deps.AccountSvc))
	public.GET("/categories", h.listCategories)
	public.GET("/categories/:slug", h.getCategory)
	public.GET("/products", h.listProducts)
	public.GET("/products/featured", h.featuredProducts)
	public.GET("/products/:slug", h.getProduct)

	private := router.Group("/", authMiddleware(deps.AccountSvc))
	private.POST("/auth/logout", h.logout)
	private.GET("/auth/profile", h.profile)

	private.GET("/cart", h.getCart)
	private.POST("/cart/add_item", h.addCartItem)
	private.PATCH("/cart/update_item", h.updateCartItem)
	private.DELETE("/cart/remove_item", h.removeCartItem)
	private.DELETE("/cart/clear", h.clearCart)

	private.GET("/likes", h.listLikes)
	private.POST("/likes/toggle", h.toggleLike)

	private.GET("/orders", h.listOrders)
	private.GET("/orders/:id", h.getOrder)
	private.POST("/orders/create_order", h.createOrder)
	private.POST("/orders/:id/cancel_order", h.cancelOrder)

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}
