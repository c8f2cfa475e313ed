// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/bazaarhq/bazaar-backend/internal/cache"
	"github.com/bazaarhq/bazaar-backend/internal/config"
	"github.com/bazaarhq/bazaar-backend/internal/handlers"
	"github.com/bazaarhq/bazaar-backend/internal/middleware"
	"github.com/bazaarhq/bazaar-backend/internal/models"
	"github.com/bazaarhq/bazaar-backend/internal/services"
	"github.com/bazaarhq/bazaar-backend/internal/utils"
)

// Services bundles everything the HTTP layer depends on so main can
// construct them once and share them with background jobs.
type Services struct {
	Auth      *services.AuthService
	User      *services.UserService
	Catalog   *services.CatalogService
	Store     *services.StoreService
	Ownership *services.OwnershipService
	Cart      *services.CartService
	Inquiry   *services.InquiryService
	Promotion *services.PromotionService
	Report    *services.ReportService
	Payment   *services.PaymentService
	Storage   *services.StorageService
}

func BuildServices(db *gorm.DB, cfg *config.Config, c *cache.Cache) (*Services, error) {
	storage, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	storeService := services.NewStoreService(db)
	ownership := services.NewOwnershipService(db)
	cartService := services.NewCartService(db)

	return &Services{
		Auth:      services.NewAuthService(db, cfg),
		User:      services.NewUserService(db),
		Catalog:   services.NewCatalogService(db, c, storeService),
		Store:     storeService,
		Ownership: ownership,
		Cart:      cartService,
		Inquiry:   services.NewInquiryService(db),
		Promotion: services.NewPromotionService(db),
		Report:    services.NewReportService(db, ownership),
		Payment:   services.NewPaymentService(cfg, cartService),
		Storage:   storage,
	}, nil
}

func Setup(db *gorm.DB, cfg *config.Config, svc *Services) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))

	// Rate limiter state is per-IP, which makes throttling meaningless
	// against the loopback traffic of the test environment.
	passthrough := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
	authGuard, uploadGuard := passthrough, passthrough
	if cfg.Environment != "test" {
		limits := middleware.NewRateLimiters(cfg.RateLimit)
		r.Use(limits.General.Middleware())
		authGuard = limits.Auth.Middleware()
		uploadGuard = limits.Upload.Middleware()
	}

	authHandler := handlers.NewAuthHandler(svc.Auth)
	userHandler := handlers.NewUserHandler(svc.User)
	productHandler := handlers.NewProductHandler(svc.Catalog, svc.Storage)
	storeHandler := handlers.NewStoreHandler(svc.Store)
	sellerHandler := handlers.NewSellerHandler(svc.Ownership, svc.Report)
	cartHandler := handlers.NewCartHandler(svc.Cart, svc.Payment)
	inquiryHandler := handlers.NewInquiryHandler(svc.Inquiry)
	promotionHandler := handlers.NewPromotionHandler(svc.Promotion, svc.Storage)
	adminHandler := handlers.NewAdminHandler(svc.Ownership)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.AWS.AccessKeyID == "" {
		r.Static("/uploads", cfg.AWS.LocalUploadDir)
	}

	api := r.Group("/api/v1")

	// Public routes.
	auth := api.Group("/auth")
	auth.Use(authGuard)
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/google", authHandler.GoogleSignIn)
	}
	api.GET("/auth/me", middleware.AuthRequired(db), authHandler.Me)

	// Public reads pick up the user context when a token is present so the
	// handlers can tailor the payload, but never require one.
	public := api.Group("")
	public.Use(middleware.OptionalAuth(db))
	{
		public.GET("/products", productHandler.List)
		public.GET("/products/popular", productHandler.Popular)
		public.GET("/products/:id", productHandler.Get)
		public.GET("/stores/:id", storeHandler.Get)
		public.GET("/sellers/:id/products", sellerHandler.ProductsBySeller)
		public.GET("/promotions", promotionHandler.List)
		public.GET("/promotions/:id", promotionHandler.Get)
	}
	api.POST("/inquiries", inquiryHandler.Create)

	// Catalog management: sellers, content managers and admins.
	catalog := api.Group("")
	catalog.Use(middleware.AuthRequired(db), middleware.RolesRequired(models.RoleSeller, models.RoleContentManager, models.RoleAdmin))
	{
		catalog.POST("/products", productHandler.Create)
		catalog.PUT("/products/:id", productHandler.Update)
		catalog.DELETE("/products/:id", productHandler.Delete)
		catalog.POST("/products/upload-images", uploadGuard, productHandler.UploadImages)
	}

	// Cart: any authenticated user.
	cart := api.Group("/cart")
	cart.Use(middleware.AuthRequired(db))
	{
		cart.GET("", cartHandler.List)
		cart.POST("/items", cartHandler.Add)
		cart.PUT("/items/:id", cartHandler.Update)
		cart.DELETE("/items/:id", cartHandler.Remove)
		cart.POST("/checkout", cartHandler.Checkout)
	}

	// Seller self-service.
	seller := api.Group("/sellers/me")
	seller.Use(middleware.AuthRequired(db), middleware.RolesRequired(models.RoleSeller, models.RoleAdmin))
	{
		seller.GET("/products", sellerHandler.MyProducts)
		seller.GET("/store", storeHandler.GetMine)
		seller.PUT("/store", storeHandler.UpdateMine)
		seller.GET("/reports/overview", sellerHandler.Overview)
		seller.GET("/reports/performance", sellerHandler.Performance)
	}

	// Seller item submissions for homepage placement.
	sellerItems := api.Group("/seller-items")
	sellerItems.Use(middleware.AuthRequired(db))
	{
		sellerItems.POST("", middleware.RolesRequired(models.RoleSeller), uploadGuard, promotionHandler.SubmitSellerItem)
		sellerItems.GET("", middleware.RolesRequired(models.RoleSeller, models.RoleContentManager, models.RoleAdmin), promotionHandler.ListSellerItems)
		sellerItems.PUT("/:id/review", middleware.RolesRequired(models.RoleContentManager, models.RoleAdmin), promotionHandler.ReviewSellerItem)
	}

	// Promotion management: content managers and admins.
	promo := api.Group("/promotions")
	promo.Use(middleware.AuthRequired(db), middleware.RolesRequired(models.RoleContentManager, models.RoleAdmin))
	{
		promo.POST("", promotionHandler.Create)
		promo.PUT("/:id", promotionHandler.Update)
		promo.DELETE("/:id", promotionHandler.Delete)
	}

	// Inquiry management.
	inquiries := api.Group("/inquiries")
	inquiries.Use(middleware.AuthRequired(db), middleware.RolesRequired(models.RoleInquiryManager, models.RoleAdmin))
	{
		inquiries.GET("", inquiryHandler.List)
		inquiries.GET("/:id", inquiryHandler.Get)
		inquiries.PUT("/:id/status", inquiryHandler.UpdateStatus)
		inquiries.POST("/:id/replies", inquiryHandler.Reply)
		inquiries.POST("/:id/forward", inquiryHandler.Forward)
		inquiries.DELETE("/:id", inquiryHandler.Delete)
	}

	// Admin-only surface.
	admin := api.Group("")
	admin.Use(middleware.AuthRequired(db), middleware.RolesRequired(models.RoleAdmin))
	{
		admin.GET("/users", userHandler.List)
		admin.GET("/users/counts", userHandler.Counts)
		admin.GET("/users/:id", userHandler.Get)
		admin.POST("/users", userHandler.Create)
		admin.PUT("/users/:id", userHandler.Update)
		admin.DELETE("/users/:id", userHandler.Delete)
		admin.PUT("/users/:id/role", userHandler.UpdateRole)
		admin.PUT("/users/:id/status", userHandler.UpdateStatus)

		admin.GET("/role-requests", inquiryHandler.ListRoleRequests)
		admin.PUT("/role-requests/:id", inquiryHandler.UpdateRoleRequest)

		admin.POST("/admin/ownership/reconcile", adminHandler.Reconcile)
		admin.POST("/admin/ownership/assign", adminHandler.AssignOwnership)
	}

	// Password change is available to every authenticated user.
	api.PUT("/users/password", middleware.AuthRequired(db), userHandler.ChangePassword)

	r.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})

	return r
}
