package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/opsdash-dev/opsdash/internal/handlers"
	"github.com/opsdash-dev/opsdash/internal/middleware"
	"github.com/opsdash-dev/opsdash/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", handlers.ProjectFeed)

		auth := api.Group("/auth")
		{
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		engineers := api.Group("/engineers", middleware.AuthMiddleware())
		{
			engineers.GET("", handlers.ListEngineers)
			engineers.POST("", handlers.CreateEngineer)
			engineers.GET("/:engineer_id", handlers.GetEngineer)
			engineers.PUT("/:engineer_id", handlers.UpdateEngineer)
			engineers.DELETE("/:engineer_id", handlers.DeleteEngineer)

			engineers.POST("/:engineer_id/non-project-time", handlers.CreateNonProjectTime)
			engineers.PUT("/:engineer_id/non-project-time/:npt_id", handlers.UpdateNonProjectTime)
			engineers.DELETE("/:engineer_id/non-project-time/:npt_id", handlers.DeleteNonProjectTime)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.GET("", handlers.ListProjects)
			projects.POST("", handlers.CreateProject)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PUT("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)
			projects.POST("/:project_id/recalculate-spent", handlers.RecalculateSpent)

			projects.GET("/:project_id/jira", handlers.ListProjectJiraIssues)
			projects.POST("/:project_id/jira", handlers.AddProjectJiraIssue)
			projects.DELETE("/:project_id/jira/:jira_key", handlers.DeleteProjectJiraIssue)

			projects.POST("/:project_id/expenses", handlers.CreateExpense)
			projects.POST("/:project_id/milestones", handlers.CreateMilestone)
			projects.POST("/:project_id/tasks", handlers.CreateTask)
		}

		expenses := api.Group("/expenses", middleware.AuthMiddleware())
		{
			expenses.PUT("/:expense_id", handlers.UpdateExpense)
			expenses.DELETE("/:expense_id", handlers.DeleteExpense)
		}

		milestones := api.Group("/milestones", middleware.AuthMiddleware())
		{
			milestones.PUT("/:milestone_id", handlers.UpdateMilestone)
			milestones.DELETE("/:milestone_id", handlers.DeleteMilestone)
			milestones.GET("/:milestone_id/assignments", handlers.ListAssignments)
			milestones.POST("/:milestone_id/assignments", handlers.CreateAssignment)
		}

		assignments := api.Group("/milestone-assignments", middleware.AuthMiddleware())
		{
			assignments.PUT("/:assignment_id", handlers.UpdateAssignment)
			assignments.DELETE("/:assignment_id", handlers.DeleteAssignment)
		}

		tasks := api.Group("/tasks", middleware.AuthMiddleware())
		{
			tasks.PUT("/:task_id", handlers.UpdateTask)
			tasks.DELETE("/:task_id", handlers.DeleteTask)
		}

		webhook := api.Group("/webhook", middleware.AuthMiddleware())
		{
			webhook.POST("/powerautomate", handlers.TriggerWebhook)
			webhook.POST("/test", handlers.TestWebhook)
		}

		jira := api.Group("/jira")
		{
			jira.GET("/config", handlers.GetJiraConfig)
			jira.GET("/issue/:issue_key", handlers.GetJiraIssue)
		}

		ignition := api.Group("/ignition")
		{
			ignition.GET("/ops/jira", handlers.ProxyIgnitionOpsJira)
			ignition.GET("/ops/jira/:issue_key", handlers.ProxyIgnitionOpsJiraIssue)
			ignition.GET("/health", handlers.IgnitionHealth)

			ignition.GET("/proxy", handlers.ProxyIgnitionGeneric)
			ignition.POST("/proxy", handlers.ProxyIgnitionGeneric)
			ignition.PUT("/proxy", handlers.ProxyIgnitionGeneric)
			ignition.DELETE("/proxy", handlers.ProxyIgnitionGeneric)
		}
	}

	return r
}
