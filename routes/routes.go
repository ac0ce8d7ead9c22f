package routes

import (
	"os"
	"strings"

	"voltworks-backend/config"
	"voltworks-backend/controllers"
	"voltworks-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func allowedOrigins() []string {
	origins := []string{"http://localhost:3000"}
	if extra := os.Getenv("ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	return origins
}

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := allowedOrigins()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Client-facing invoice portal, authenticated by access token only
	r.GET("/portal/invoices/:id", controllers.GetPortalInvoice)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		quotes := api.Group("/quotes")
		{
			quotes.POST("", controllers.CreateQuote)
			quotes.GET("", controllers.GetQuotes)
			quotes.GET("/:id", controllers.GetQuote)
			quotes.PUT("/:id", controllers.UpdateQuote)
			quotes.POST("/:id/send", controllers.SendQuote)
			quotes.DELETE("/:id", controllers.DeleteQuote)
		}

		invoices := api.Group("/invoices")
		{
			invoices.POST("", controllers.CreateInvoice)
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.PUT("/:id", controllers.UpdateInvoice)
			invoices.POST("/:id/send", controllers.SendInvoice)
			invoices.POST("/:id/pay", controllers.MarkInvoicePaid)
			invoices.GET("/:id/html", controllers.GetInvoiceHTML)
			invoices.DELETE("/:id", controllers.DeleteInvoice)
		}

		expenses := api.Group("/expenses")
		{
			expenses.POST("", controllers.CreateExpenseClaim)
			expenses.GET("", controllers.GetExpenseClaims)
			expenses.PUT("/:id", controllers.UpdateExpenseClaim)
			expenses.POST("/:id/approve", controllers.ApproveExpense)
			expenses.POST("/:id/reject", controllers.RejectExpense)
			expenses.POST("/:id/pay", controllers.MarkExpensePaid)
			expenses.DELETE("/:id", controllers.DeleteExpenseClaim)
		}

		suppliers := api.Group("/suppliers")
		{
			suppliers.POST("", controllers.CreateSupplier)
			suppliers.GET("", controllers.GetSuppliers)
			suppliers.GET("/:id", controllers.GetSupplier)
			suppliers.PUT("/:id", controllers.UpdateSupplier)
			suppliers.DELETE("/:id", controllers.DeleteSupplier)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", controllers.CreateMaterialOrder)
			orders.GET("", controllers.GetMaterialOrders)
			orders.GET("/:id", controllers.GetMaterialOrder)
			orders.PUT("/:id", controllers.UpdateMaterialOrder)
			orders.PUT("/:id/status", controllers.UpdateOrderStatus)
			orders.DELETE("/:id", controllers.DeleteMaterialOrder)
		}

		pricebook := api.Group("/pricebook")
		{
			pricebook.POST("", controllers.CreatePriceBookItem)
			pricebook.GET("", controllers.GetPriceBook)
			pricebook.GET("/low-stock", controllers.GetLowStockItems)
			pricebook.GET("/stats", controllers.GetPriceBookStats)
			pricebook.GET("/search", controllers.SearchPriceBook)
			pricebook.POST("/import", controllers.ImportPriceBook)
			pricebook.PUT("/:id", controllers.UpdatePriceBookItem)
			pricebook.DELETE("/:id", controllers.DeletePriceBookItem)
		}

		employees := api.Group("/employees")
		{
			employees.GET("", controllers.GetEmployees)
			employees.POST("", controllers.AddEmployee)
			employees.PUT("/:id", controllers.UpdateEmployee)
			employees.DELETE("/:id", controllers.DeleteEmployee)
		}

		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("/update-business", controllers.UpdateBusinessProfile)
			profile.PUT("/update-notifications", controllers.UpdateNotifications)
		}

		stripe := api.Group("/stripe")
		{
			stripe.GET("/status", controllers.GetStripeConnectStatus)
			stripe.POST("/connect", controllers.CreateStripeConnectAccount)
			stripe.GET("/onboarding-link", controllers.GetStripeOnboardingLink)
			stripe.DELETE("/connect", controllers.DisconnectStripe)
		}

		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
