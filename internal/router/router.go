package router

import (
	"net/http"

	"livepoll/internal/handlers"
	"livepoll/internal/metrics"
	"livepoll/internal/middleware"
	"livepoll/internal/realtime"
	"livepoll/internal/services"
	"livepoll/internal/storage"
	"livepoll/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the long-lived objects the routes are built on. The engine must
// already carry the sessions middleware.
type Deps struct {
	Store         *storage.Store
	Dispatcher    *realtime.Dispatcher
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer // nil disables /metrics
	ChannelBuffer int
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	users := services.NewUserService(d.Store)
	polls := services.NewPollService(d.Store, d.Dispatcher, d.Metrics)

	// Handlers
	authHandler := handlers.NewAuthHandler(users)
	pollHandler := handlers.NewPollHandler(polls)
	statsHandler := handlers.NewStatsHandler(d.Store)
	adminHandler := handlers.NewAdminHandler(users, polls, d.Store, utils.NewCache(16))
	liveHandler := handlers.NewLiveHandler(d.Dispatcher, d.ChannelBuffer)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "liveChannels": d.Dispatcher.Registry().Count()})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	r.Use(middleware.LoadUser(users))

	// Live channels
	r.GET("/ws", liveHandler.WebSocket)

	api := r.Group("/api")
	api.GET("/events", liveHandler.Events)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
	}

	// Public reads
	api.GET("/polls", pollHandler.List)

	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/polls/my", pollHandler.ListMine)
		authorized.POST("/polls", pollHandler.Create)
		authorized.DELETE("/polls/:id", pollHandler.Delete)
		authorized.PATCH("/polls/:id/publish", pollHandler.SetPublished)
		authorized.POST("/polls/:id/vote", pollHandler.Vote)
		authorized.GET("/polls/:id/votes/user", pollHandler.UserVotes)
		authorized.GET("/stats/user", statsHandler.UserStats)
	}
	api.GET("/polls/:id", pollHandler.Get)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/stats", adminHandler.SystemStats)
		admin.GET("/users", adminHandler.ListUsers)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
		admin.DELETE("/polls/:id", adminHandler.DeletePoll)
	}
}
