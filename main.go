package main

import (
	"fmt"
	"log"
	"os"

	"voltworks-backend/config"
	"voltworks-backend/models"
	"voltworks-backend/routes"
	"voltworks-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Quote{},
		&models.Invoice{},
		&models.ExpenseClaim{},
		&models.Supplier{},
		&models.MaterialOrder{},
		&models.PriceBookItem{},
		&models.NotificationLog{},
		&models.DocumentSequence{},
	)

	services.InitStripe()
	services.Sequences = services.NewSequenceService(config.DB)
	services.Notifier = services.NewNotificationService(config.DB)
}

func main() {
	stockAlerts := services.NewStockAlertService(config.DB)
	stockAlerts.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
