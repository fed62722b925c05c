package routes

import (
	"net/http"

	"dishdash-backend/handlers"
	"dishdash-backend/middleware"
	"dishdash-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	authHandler := &handlers.AuthHandler{DB: db}
	userHandler := &handlers.UserHandler{DB: db}
	addressHandler := &handlers.AddressHandler{DB: db}
	restaurantHandler := &handlers.RestaurantHandler{DB: db}
	categoryHandler := &handlers.CategoryHandler{DB: db}
	itemHandler := &handlers.ItemHandler{DB: db}
	menuHandler := &handlers.MenuHandler{DB: db}
	couponHandler := &handlers.CouponHandler{DB: db}
	cartHandler := &handlers.CartHandler{DB: db}
	orderHandler := &handlers.OrderHandler{DB: db}
	reviewHandler := &handlers.ReviewHandler{DB: db}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/verify-reset-code", authHandler.VerifyResetCode)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	// Payment provider callback, authenticated by signature instead of JWT.
	api.POST("/webhook-checkout", orderHandler.WebhookCheckout)

	restaurants := api.Group("/restaurants")
	{
		restaurants.GET("", restaurantHandler.GetRestaurants)
		restaurants.GET("/:id", restaurantHandler.GetRestaurant)
		restaurants.GET("/:id/reviews",
			middleware.ResolveScope(db, middleware.ScopeRestaurant),
			reviewHandler.GetReviews)
		restaurants.GET("/:id/categories",
			middleware.ResolveScope(db, middleware.ScopeRestaurant),
			categoryHandler.GetCategories)
		restaurants.GET("/:id/menus",
			middleware.ResolveScope(db, middleware.ScopeRestaurant),
			menuHandler.GetMenus)

		restaurants.POST("/:id/reviews",
			middleware.AuthMiddleware(db),
			middleware.AllowedTo(models.RoleUser),
			reviewHandler.CreateReview)

		admin := restaurants.Group("",
			middleware.AuthMiddleware(db),
			middleware.AllowedTo(models.RoleAdmin))
		{
			admin.POST("", restaurantHandler.CreateRestaurant)
			admin.PUT("/:id", restaurantHandler.UpdateRestaurant)
			admin.DELETE("/:id", restaurantHandler.DeleteRestaurant)
		}
	}

	// Geo lookups live beside /restaurants because gin cannot mix static
	// segments with the :id wildcard.
	api.GET("/restaurants-within/:distance/center/:latlng/unit/:unit",
		restaurantHandler.GetRestaurantsWithin)
	api.GET("/restaurants-distances/:latlng/unit/:unit",
		restaurantHandler.GetDistances)

	categories := api.Group("/categories")
	{
		categories.GET("/:id", categoryHandler.GetCategory)
		categories.GET("/:id/items",
			middleware.ResolveScope(db, middleware.ScopeCategory),
			itemHandler.GetItems)

		manage := categories.Group("",
			middleware.AuthMiddleware(db),
			middleware.AllowedTo(models.RoleAdmin, models.RoleOwner))
		{
			manage.GET("",
				middleware.ResolveScope(db, middleware.ScopeRestaurant),
				categoryHandler.GetCategories)
			manage.POST("", categoryHandler.CreateCategory)
			manage.PUT("/:id", categoryHandler.UpdateCategory)
			manage.DELETE("/:id", categoryHandler.DeleteCategory)
		}
	}

	items := api.Group("/items")
	{
		items.GET("/:id", itemHandler.GetItem)

		manage := items.Group("",
			middleware.AuthMiddleware(db),
			middleware.AllowedTo(models.RoleAdmin, models.RoleOwner))
		{
			manage.GET("",
				middleware.ResolveScope(db, middleware.ScopeCategory),
				itemHandler.GetItems)
			manage.POST("", itemHandler.CreateItem)
			manage.PUT("/:id", itemHandler.UpdateItem)
			manage.DELETE("/:id", itemHandler.DeleteItem)
		}
	}

	menus := api.Group("/menus")
	{
		menus.GET("/:id", menuHandler.GetMenu)

		manage := menus.Group("",
			middleware.AuthMiddleware(db),
			middleware.AllowedTo(models.RoleAdmin, models.RoleOwner))
		{
			manage.GET("",
				middleware.ResolveScope(db, middleware.ScopeRestaurant),
				menuHandler.GetMenus)
			manage.POST("", menuHandler.CreateMenu)
			manage.PUT("/:id", menuHandler.UpdateMenu)
			manage.DELETE("/:id", menuHandler.DeleteMenu)
		}
	}

	coupons := api.Group("/coupons",
		middleware.AuthMiddleware(db),
		middleware.AllowedTo(models.RoleAdmin, models.RoleOwner))
	{
		coupons.GET("",
			middleware.ResolveScope(db, middleware.ScopeRestaurant),
			couponHandler.GetCoupons)
		coupons.GET("/:id", couponHandler.GetCoupon)
		coupons.POST("", couponHandler.CreateCoupon)
		coupons.PUT("/:id", couponHandler.UpdateCoupon)
		coupons.DELETE("/:id", couponHandler.DeleteCoupon)
	}

	cart := api.Group("/cart",
		middleware.AuthMiddleware(db),
		middleware.AllowedTo(models.RoleUser))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("", cartHandler.AddItem)
		cart.DELETE("", cartHandler.ClearCart)
		cart.PUT("/apply-coupon", cartHandler.ApplyCoupon)
		cart.PUT("/items/:id", cartHandler.UpdateItemQuantity)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
	}

	orders := api.Group("/orders", middleware.AuthMiddleware(db))
	{
		orders.GET("",
			middleware.ResolveScope(db, middleware.ScopeOrder),
			orderHandler.GetOrders)
		orders.GET("/:id",
			middleware.ResolveScope(db, middleware.ScopeOrder),
			orderHandler.GetOrder)
		orders.POST("/:id",
			middleware.AllowedTo(models.RoleUser),
			orderHandler.CreateCashOrder)
		orders.PUT("/:id/pay",
			middleware.AllowedTo(models.RoleAdmin, models.RoleOwner),
			orderHandler.MarkOrderPaid)
		orders.PUT("/:id/deliver",
			middleware.AllowedTo(models.RoleAdmin, models.RoleOwner),
			orderHandler.MarkOrderDelivered)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("/:id", reviewHandler.GetReview)

		authed := reviews.Group("", middleware.AuthMiddleware(db))
		{
			authed.GET("",
				middleware.AllowedTo(models.RoleAdmin, models.RoleOwner),
				middleware.ResolveScope(db, middleware.ScopeRestaurant),
				reviewHandler.GetReviews)
			authed.POST("",
				middleware.AllowedTo(models.RoleUser),
				reviewHandler.CreateReview)
			authed.PUT("/:id",
				middleware.AllowedTo(models.RoleUser),
				reviewHandler.UpdateReview)
			authed.DELETE("/:id",
				middleware.AllowedTo(models.RoleAdmin, models.RoleUser),
				reviewHandler.DeleteReview)
		}
	}

	profile := api.Group("/profile", middleware.AuthMiddleware(db))
	{
		profile.GET("", userHandler.GetMe)
		profile.PUT("", userHandler.UpdateMe)
		profile.DELETE("", userHandler.DeactivateMe)
		profile.PUT("/change-password", userHandler.ChangeMyPassword)
		profile.PUT("/reactivate", userHandler.ReactivateMe)

		profile.GET("/addresses", addressHandler.GetAddresses)
		profile.POST("/addresses", addressHandler.AddAddress)
		profile.DELETE("/addresses/:id", addressHandler.RemoveAddress)
	}

	users := api.Group("/users",
		middleware.AuthMiddleware(db),
		middleware.AllowedTo(models.RoleAdmin))
	{
		users.GET("", userHandler.GetUsers)
		users.POST("", userHandler.CreateUser)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.PUT("/:id/change-password", userHandler.ChangeUserPassword)
		users.DELETE("/:id", userHandler.DeleteUser)
	}
}
