package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/controllers"
	"github.com/yeremiapane/restaurant-booking/events"
	"github.com/yeremiapane/restaurant-booking/middlewares"
	"github.com/yeremiapane/restaurant-booking/realtime"
	"github.com/yeremiapane/restaurant-booking/utils"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

type Options struct {
	CORSAllowedOrigin string
	// RateLimit and RateBurst bound every client IP. A zero RateLimit disables the limit.
	RateLimit         rate.Limit
	RateBurst         int
	AuthRatePerMinute int
	// TrustedProxies are the proxy addresses or CIDRs whose forwarding headers
	// are believed. Nil trusts none, so rate limits key on the peer address.
	TrustedProxies []string
	// Events receives change events in addition to the realtime hub.
	Events events.Publisher
	Hub    *realtime.Hub
}

func SetupRouter(db *gorm.DB, opts Options) *gin.Engine {
	if opts.CORSAllowedOrigin == "" {
		opts.CORSAllowedOrigin = "*"
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = rate.Inf
	}
	if opts.Hub == nil {
		opts.Hub = realtime.NewHub()
	}
	publisher := events.Multi{opts.Hub}
	if opts.Events != nil {
		publisher = append(publisher, opts.Events)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		utils.ErrorLogger.WithError(err).Error("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.CORSAllowedOrigin))
	r.Use(middlewares.NewRateLimiter(opts.RateLimit, opts.RateBurst).RateLimit())

	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, utils.ErrNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		utils.RespondDetail(c, http.StatusMethodNotAllowed, fmt.Sprintf("Method %q not allowed.", c.Request.Method))
	})

	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db, publisher)
	bookingCtrl := controllers.NewBookingController(db, publisher)
	realtimeCtrl := controllers.NewRealtimeController(opts.Hub, opts.CORSAllowedOrigin)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	credentials := r.Group("/")
	credentials.Use(middlewares.NewStrictRateLimiter(opts.AuthRatePerMinute))
	{
		credentials.POST("/auth/users/", userCtrl.Register)
		credentials.POST("/api-token-auth/", userCtrl.ObtainToken)
		credentials.POST("/auth/jwt/create/", userCtrl.ObtainJWT)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.TokenAuthMiddleware(db))

	auth.GET("/auth/users/me/", userCtrl.GetProfile)
	auth.POST("/auth/token/logout/", userCtrl.Logout)

	// MENU
	auth.GET("/menu/", menuCtrl.GetAllMenus)
	auth.POST("/menu/", menuCtrl.CreateMenu)
	auth.GET("/menu/:menu_id/", menuCtrl.GetMenuByID)
	auth.PUT("/menu/:menu_id/", menuCtrl.UpdateMenu)
	auth.PATCH("/menu/:menu_id/", menuCtrl.PatchMenu)
	auth.DELETE("/menu/:menu_id/", menuCtrl.DeleteMenu)

	// BOOKING (scoped to the caller)
	auth.GET("/booking/", bookingCtrl.GetMyBookings)
	auth.POST("/booking/", bookingCtrl.CreateBooking)
	auth.DELETE("/booking/", bookingCtrl.DeleteBooking)
	auth.DELETE("/booking/:booking_id/", bookingCtrl.DeleteBooking)

	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware(db))
	ws.GET("/", realtimeCtrl.Subscribe)

	return r
}
