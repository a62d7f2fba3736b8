package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"examseating/config"
	"examseating/internal/api/handler"
	"examseating/internal/api/middleware"
	"examseating/pkg/jwt"
	"examseating/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录接口限流）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 考生模块（管理端）
			students := authorized.Group("/students")
			{
				students.GET("", middleware.RoleAuth("admin", "teacher", "exam_committee"), h.Student.List)
				students.GET("/:id", middleware.RoleAuth("admin", "teacher", "exam_committee"), h.Student.Get)
				students.GET("/:id/registrations", middleware.RoleAuth("admin", "teacher", "exam_committee"), h.Registration.ListByStudent)
				students.POST("", middleware.RoleAuth("admin", "teacher"), h.Student.Create)
				students.PUT("/:id", middleware.RoleAuth("admin", "teacher"), h.Student.Update)
				students.DELETE("/:id", middleware.RoleAuth("admin"), h.Student.Delete)
			}

			// 考场模块
			classrooms := authorized.Group("/classrooms")
			{
				classrooms.GET("", h.Classroom.List)
				classrooms.GET("/:id", h.Classroom.Get)
				classrooms.POST("", middleware.RoleAuth("admin", "exam_committee"), h.Classroom.Create)
				classrooms.PUT("/:id", middleware.RoleAuth("admin", "exam_committee"), h.Classroom.Update)
				classrooms.DELETE("/:id", middleware.RoleAuth("admin"), h.Classroom.Delete)
			}

			// 考试周期与科目模块
			exams := authorized.Group("/exams")
			{
				exams.GET("", h.Exam.List)
				exams.GET("/:id", h.Exam.Get)
				exams.GET("/:id/subjects", h.Exam.ListSubjects)
				exams.POST("", middleware.RoleAuth("admin", "exam_committee"), h.Exam.Create)
				exams.PUT("/:id", middleware.RoleAuth("admin", "exam_committee"), h.Exam.Update)
				exams.DELETE("/:id", middleware.RoleAuth("admin"), h.Exam.Delete)
				exams.POST("/:id/subjects", middleware.RoleAuth("admin", "exam_committee"), h.Exam.CreateSubject)
			}
			subjects := authorized.Group("/subjects")
			{
				subjects.GET("/:id/registrations", middleware.RoleAuth("admin", "teacher", "exam_committee"), h.Registration.ListBySubject)
				subjects.PUT("/:id", middleware.RoleAuth("admin", "exam_committee"), h.Exam.UpdateSubject)
				subjects.DELETE("/:id", middleware.RoleAuth("admin", "exam_committee"), h.Exam.DeleteSubject)
			}

			// 报名模块
			registrations := authorized.Group("/registrations")
			{
				// 考生自助报名与课表（全角色可访问，Service 层按考生身份解析）
				registrations.GET("/my", h.Registration.MyTimetable)
				registrations.POST("/my", h.Registration.RegisterSelf)
				registrations.DELETE("/my/:subjectId", h.Registration.CancelSelf)

				registrations.POST("", middleware.RoleAuth("admin", "teacher", "exam_committee"), h.Registration.Register)
				registrations.POST("/batch", middleware.RoleAuth("admin", "teacher", "exam_committee"), h.Registration.BatchRegister)
				registrations.DELETE("/:id", middleware.RoleAuth("admin", "teacher", "exam_committee"), h.Registration.Cancel)
			}

			// 排座模块
			seating := authorized.Group("/seating")
			{
				// 考生自助查询（全角色可访问，Service 层按考生身份校验）
				seating.GET("/my-seat/:subjectId", h.Seating.GetMySeat)
				seating.GET("/my-calendar", h.Export.MyCalendar)

				seating.GET("", middleware.RoleAuth("admin", "teacher", "exam_committee"), h.Seating.List)
				seating.GET("/:id", middleware.RoleAuth("admin", "teacher", "exam_committee"), h.Seating.Get)
				seating.GET("/:id/export", middleware.RoleAuth("admin", "teacher", "exam_committee"), h.Export.SeatingChart)
				seating.POST("", middleware.RoleAuth("admin", "exam_committee"), h.Seating.Generate)
				seating.POST("/:id/submit", middleware.RoleAuth("admin", "exam_committee"), h.Seating.Submit)
				seating.POST("/:id/resubmit", middleware.RoleAuth("admin", "exam_committee"), h.Seating.Resubmit)
				seating.POST("/:id/approve", middleware.RoleAuth("admin"), h.Seating.Approve)
				seating.POST("/:id/reject", middleware.RoleAuth("admin"), h.Seating.Reject)
				seating.DELETE("/:id", middleware.RoleAuth("admin", "exam_committee"), h.Seating.Delete)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
