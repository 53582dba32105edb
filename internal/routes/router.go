package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"todolist-api/internal/auth"
	"todolist-api/internal/controller"
	"todolist-api/internal/middleware"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Tokens *auth.TokenService
	Users  controller.UserStore
	Todos  controller.TodoStore
	DB     *sqlx.DB
}

func Router(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	authCtl := controller.NewAuth(d.Users, d.Tokens)
	userCtl := controller.NewUsers(d.Users)
	todoCtl := controller.NewTodos(d.Todos)
	healthCtl := controller.NewHealth(d.DB)

	router.GET("/", controller.Index)
	router.GET("/health", healthCtl.Live)
	router.GET("/ready", healthCtl.Ready)

	// Login is public; refresh and me need a currently valid token.
	router.POST("/auth/token", authCtl.Token)
	authed := router.Group("/auth")
	authed.Use(middleware.RequireUser(d.Tokens, d.Users))
	{
		authed.POST("/refresh_token", authCtl.Refresh)
		authed.GET("/me", authCtl.Me)
	}

	users := router.Group("/users")
	{
		users.POST("", userCtl.Create)
		users.GET("", userCtl.List)
		users.GET("/:id", userCtl.Get)

		// Mutations take an optional bearer; a presented token must belong
		// to the target user.
		owned := users.Group("")
		owned.Use(middleware.OptionalUser(d.Tokens, d.Users))
		{
			owned.PUT("/:id", userCtl.Update)
			owned.DELETE("/:id", userCtl.Delete)
		}
	}

	todos := router.Group("/todos")
	todos.Use(middleware.RequireUser(d.Tokens, d.Users))
	{
		todos.POST("", todoCtl.Create)
		todos.GET("", todoCtl.List)
		todos.PATCH("/:id", todoCtl.Patch)
		todos.DELETE("/:id", todoCtl.Delete)
	}

	return router
}
