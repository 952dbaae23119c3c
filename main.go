package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"restaurant-pos/config"
	"restaurant-pos/models"
	"restaurant-pos/router"
	"restaurant-pos/services"
	"restaurant-pos/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// The order cascade, customer upsert and staff mutation live in MySQL
	// stored procedures; without them the same contract runs natively.
	var procs services.ProcedureRunner
	if config.UseStoredProcedures() {
		procs = services.NewStoredProcedureRunner()
	} else {
		procs = services.NewLocalProcedureRunner()
	}

	r := router.SetupRouter(db, procs)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Item{},
		&models.Staff{},
		&models.Chef{},
		&models.Cashier{},
		&models.Waiter{},
		&models.Supervision{},
		&models.Customer{},
		&models.Order{},
		&models.Detail{},
		&models.Ptorder{},
		&models.Invoice{},
		&models.Payment{},
		&models.Promotion{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
