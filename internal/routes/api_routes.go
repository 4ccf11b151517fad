package routes

import (
	"github.com/iamram3sh/2ndshift-sub002/internal/handlers"
	"github.com/iamram3sh/2ndshift-sub002/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes registers every route that requires authentication.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		profile := apiGroup.Group("/profile")
		{
			profile.GET("", handlers.GetProfileHandler)
			profile.PUT("", handlers.UpdateProfileHandler)
			profile.GET("/permissions", handlers.MyPermissionsHandler)
		}

		projects := apiGroup.Group("/projects")
		{
			projects.GET("", handlers.ListProjectsHandler)
			projects.POST("", middleware.PermissionMiddleware("projects_create"), handlers.CreateProjectHandler)
			projects.GET("/:id", handlers.GetProjectHandler)
			projects.PUT("/:id", handlers.UpdateProjectHandler)
			projects.POST("/:id/cancel", handlers.CancelProjectHandler)
			projects.POST("/:id/bids", middleware.PermissionMiddleware("bids_place"), handlers.PlaceBidHandler)
		}

		bids := apiGroup.Group("/bids")
		{
			bids.GET("/mine", handlers.MyBidsHandler)
			bids.POST("/:id/accept", handlers.AcceptBidHandler)
			bids.POST("/:id/withdraw", handlers.WithdrawBidHandler)
		}

		contracts := apiGroup.Group("/contracts")
		{
			contracts.GET("", handlers.MyContractsHandler)
			contracts.GET("/:id", handlers.GetContractHandler)
			contracts.GET("/:id/escrow", handlers.GetEscrowByContractHandler)
			contracts.POST("/:id/chat", handlers.OpenContractChatHandler)
		}

		escrows := apiGroup.Group("/escrows")
		{
			escrows.GET("", handlers.ListEscrowsHandler)
			escrows.POST("", handlers.CreateEscrowHandler)
			escrows.GET("/export", middleware.PermissionMiddleware("escrow_view_all"), handlers.ExportEscrowsHandler)
			escrows.GET("/:id", handlers.GetEscrowHandler)
			escrows.POST("/:id/fund", handlers.FundEscrowHandler)
			escrows.POST("/:id/start-work", handlers.StartWorkHandler)
			escrows.POST("/:id/submit-work", handlers.SubmitWorkHandler)
			escrows.POST("/:id/request-revision", handlers.RequestRevisionHandler)
			escrows.POST("/:id/approve", handlers.ApproveEscrowHandler)
			escrows.POST("/:id/dispute", handlers.DisputeEscrowHandler)
			escrows.POST("/:id/cancel", handlers.CancelEscrowHandler)
		}

		payments := apiGroup.Group("/payments")
		{
			payments.GET("", handlers.ListPaymentsHandler)
			payments.GET("/export", middleware.PermissionMiddleware("payments_view_all"), handlers.ExportPaymentsHandler)
			payments.GET("/export-csv", middleware.PermissionMiddleware("payments_view_all"), handlers.ExportPaymentsCSVHandler)
			payments.GET("/:id/receipt", handlers.GetPaymentReceiptHandler)
		}

		reviews := apiGroup.Group("/reviews")
		{
			reviews.POST("", handlers.CreateReviewHandler)
			reviews.GET("/user/:id", handlers.ListUserReviewsHandler)
		}

		trust := apiGroup.Group("/trust-scores")
		{
			trust.GET("/:id", handlers.GetTrustScoreHandler)
			trust.POST("/:id/recalculate", middleware.PermissionMiddleware("users_manage"), handlers.RecalculateTrustScoreHandler)
		}

		shifts := apiGroup.Group("/shifts")
		{
			shifts.GET("/balance", handlers.GetShiftBalanceHandler)
			shifts.GET("/transactions", handlers.ListShiftTransactionsHandler)
			shifts.GET("/packages", handlers.ListShiftPackagesHandler)
			shifts.POST("/purchase", handlers.PurchaseShiftsHandler)
		}

		chat := apiGroup.Group("/chat")
		{
			chat.GET("/ws", handlers.ChatWSEndpoint)
			chat.GET("/rooms", handlers.ListChatsHandler)
			chat.GET("/rooms/:id/messages", handlers.GetMessagesHandler)
			chat.POST("/upload", handlers.UploadChatFileHandler)
		}

		users := apiGroup.Group("/users")
		users.Use(middleware.PermissionMiddleware("users_manage"))
		{
			users.GET("", handlers.ListUsersHandler)
			users.GET("/:id", handlers.GetUserHandler)
			users.PUT("/:id", handlers.UpdateUserHandler)
			users.DELETE("/:id", handlers.DeleteUserHandler)
		}

		roles := apiGroup.Group("/roles")
		roles.Use(middleware.PermissionMiddleware("roles_manage"))
		{
			roles.GET("", handlers.ListRolesHandler)
			roles.POST("", handlers.CreateRoleHandler)
			roles.PUT("/:id", handlers.UpdateRoleHandler)
			roles.DELETE("/:id", handlers.DeleteRoleHandler)
		}

		permissions := apiGroup.Group("/permissions")
		permissions.Use(middleware.PermissionMiddleware("roles_manage"))
		{
			permissions.GET("", handlers.ListPermissionsHandler)
		}

		disputes := apiGroup.Group("/disputes")
		disputes.Use(middleware.PermissionMiddleware("disputes_manage"))
		{
			disputes.GET("", handlers.ListDisputesHandler)
			disputes.GET("/:id/summary", handlers.SummarizeDisputeHandler)
		}
	}
}
