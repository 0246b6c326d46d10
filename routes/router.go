// file: routes/router.go
package routes

import (
	"github.com/bytehatacademy/alien-recon-portal/controllers"
	"github.com/bytehatacademy/alien-recon-portal/middlewares"
	"github.com/bytehatacademy/alien-recon-portal/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.MetricsMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := r.Group("/api/v1")
	{
		// --- 用户模块 ---
		usersPublic := apiV1.Group("/users")
		{
			usersPublic.POST("/register", controllers.Register)
			usersPublic.POST("/login", controllers.Login)
		}
		usersAuth := apiV1.Group("/users")
		usersAuth.Use(middlewares.JWTAuthMiddleware())
		{
			usersAuth.GET("/profile", controllers.GetProfile)
			usersAuth.GET("/activities", controllers.GetActivities)
			usersAuth.GET("/leaderboard", controllers.GetLeaderboard)
		}

		// --- 任务模块 ---
		missionRoutes := apiV1.Group("/missions")
		missionRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			missionRoutes.GET("", controllers.ListMissions)
			missionRoutes.GET("/:id", controllers.GetMissionDetail)
			missionRoutes.GET("/:id/hints/:index", controllers.GetMissionHint)
			// 提交接口单独限速防爆破：每 IP 每秒 1 次，峰值 5 次
			missionRoutes.POST("/:id/submit",
				middlewares.RateLimitMiddleware(rate.Limit(1), 5),
				controllers.SubmitFlag)
		}

		// --- 动态流（无需登录也可浏览）---
		apiV1.GET("/feed", middlewares.JWTTryAuthMiddleware(), controllers.GetActivityFeed)

		// --- 管理员模块 ---
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.GET("/users", controllers.GetUserList)
			adminRoutes.PUT("/users/:id/status", controllers.UpdateUserStatus)

			adminRoutes.POST("/missions", controllers.CreateMission)
			adminRoutes.GET("/missions", controllers.AdminListMissions)
			adminRoutes.PUT("/missions/:id", controllers.UpdateMission)
			adminRoutes.PUT("/missions/:id/status", controllers.UpdateMissionStatus)

			adminRoutes.GET("/submission-logs", controllers.AdminListSubmissionLogs)
		}
	}

	return r
}
