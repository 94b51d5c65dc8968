package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/srgjo27/captainbook/internal/core/domain"
)

type Handlers struct {
	Bookings *BookingHandler
	Captains *CaptainHandler
	Users    *UserHandler
	WS       *WSHandler
}

func NewRouter(h Handlers, auth Authenticator, corsOrigins []string, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	captainOnly := RequireRole(auth, domain.RoleCaptain, log)
	userOnly := RequireRole(auth, domain.RoleUser, log)

	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.Bookings.CreateBooking)
		bookings.GET("/available-captains", h.Bookings.AvailableCaptains)
		bookings.GET("/captain/:captainId", captainOnly, h.Bookings.GetCaptainBookings)
		bookings.GET("/user/:userId", h.Bookings.GetUserBookings)
		bookings.PUT("/review/:bookingId", h.Bookings.AddRating)
		bookings.PATCH("/:bookingId", captainOnly, h.Bookings.UpdateBooking)
	}

	captains := r.Group("/captains")
	{
		captains.POST("/register", h.Captains.Register)
		captains.POST("/login", h.Captains.Login)
		captains.GET("/profile", captainOnly, h.Captains.Profile)
		captains.PUT("/profile", captainOnly, h.Captains.UpdateProfile)
		captains.PATCH("/status", captainOnly, h.Captains.SetStatus)
		captains.GET("/logout", captainOnly, h.Captains.Logout)
	}

	users := r.Group("/users")
	{
		users.POST("/register", h.Users.Register)
		users.POST("/login", h.Users.Login)
		users.GET("/profile", userOnly, h.Users.Profile)
		users.POST("/logout", userOnly, h.Users.Logout)
	}

	if h.WS != nil {
		r.GET("/ws", h.WS.Serve)
	}

	return r
}
