package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-pos/controllers"
	"restaurant-pos/middlewares"
	"restaurant-pos/services"
)

func SetupRouter(db *gorm.DB, procs services.ProcedureRunner) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 100).RateLimit())

	userCtrl := controllers.NewUserController(db)
	itemCtrl := controllers.NewItemController(db)
	tableCtrl := controllers.NewTableController(db)
	orderCtrl := controllers.NewOrderController(db, procs)
	staffCtrl := controllers.NewStaffController(db, procs)
	customerCtrl := controllers.NewCustomerController(db)
	invoiceCtrl := controllers.NewInvoiceController(db)
	paymentCtrl := controllers.NewPaymentController(db)
	promoCtrl := controllers.NewPromotionController(db)
	revenueCtrl := controllers.NewRevenueController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Websocket feed of order and table events.
	r.GET("/ws", controllers.EventsHandler)

	// Auth endpoints sit behind a tight per-IP limiter.
	auth := r.Group("/auth")
	auth.Use(middlewares.NewStrictRateLimiter())
	{
		auth.POST("/register", userCtrl.Register)
		auth.POST("/login", userCtrl.Login)
		auth.POST("/refresh", userCtrl.Refresh)
	}

	api := r.Group("/api")

	// Reads are open: the floor tablets browse the menu and tables
	// without a session.
	api.GET("/items", itemCtrl.GetAllItems)
	api.GET("/items/available", itemCtrl.GetAvailableItems)
	api.GET("/items/:item_id", itemCtrl.GetItemByID)
	api.GET("/tables", tableCtrl.GetAllTables)
	api.GET("/tables/:table_id", tableCtrl.GetTableByID)
	api.GET("/orders", orderCtrl.GetAllOrders)
	api.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	api.GET("/revenue", revenueCtrl.GetLast7Days)
	api.GET("/staff", staffCtrl.GetAllStaff)
	api.GET("/staff/:staff_id", staffCtrl.GetStaffByID)
	api.GET("/chefs", staffCtrl.GetAllChefs)
	api.GET("/cashiers", staffCtrl.GetAllCashiers)
	api.GET("/waiters", staffCtrl.GetAllWaiters)
	api.GET("/customers", customerCtrl.GetAllCustomers)
	api.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	api.GET("/invoices", invoiceCtrl.GetAllInvoices)
	api.GET("/invoices/:invoice_id", invoiceCtrl.GetInvoiceByID)
	api.GET("/payments", paymentCtrl.GetAllPayments)
	api.GET("/payments/:payment_id", paymentCtrl.GetPaymentByID)
	api.GET("/promotions", promoCtrl.GetAllPromotions)
	api.GET("/promotions/:promo_id", promoCtrl.GetPromotionByID)

	// Mutations require a valid access token.
	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.GET("/profile", userCtrl.GetProfile)

		protected.POST("/orders", orderCtrl.CreateOrder)
		protected.POST("/orders/:order_id/add_item", orderCtrl.AddItem)
		protected.POST("/orders/:order_id/complete", orderCtrl.CompleteOrder)
		protected.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

		protected.POST("/tables", tableCtrl.CreateTable)
		protected.PUT("/tables/:table_id", tableCtrl.UpdateTable)
		protected.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

		protected.POST("/items", itemCtrl.CreateItem)
		protected.PUT("/items/:item_id", itemCtrl.UpdateItem)
		protected.DELETE("/items/:item_id", itemCtrl.DeleteItem)

		protected.POST("/customers", customerCtrl.CreateCustomer)
		protected.PATCH("/customers/:customer_id", customerCtrl.UpdateCustomer)
		protected.DELETE("/customers/:customer_id", customerCtrl.DeleteCustomer)

		protected.POST("/invoices", invoiceCtrl.CreateInvoice)
		protected.PATCH("/invoices/:invoice_id", invoiceCtrl.UpdateInvoice)
		protected.DELETE("/invoices/:invoice_id", invoiceCtrl.DeleteInvoice)

		protected.POST("/payments", paymentCtrl.CreatePayment)
		protected.PATCH("/payments/:payment_id", paymentCtrl.UpdatePayment)
		protected.DELETE("/payments/:payment_id", paymentCtrl.DeletePayment)

		protected.POST("/promotions", promoCtrl.CreatePromotion)
		protected.PATCH("/promotions/:promo_id", promoCtrl.UpdatePromotion)
		protected.DELETE("/promotions/:promo_id", promoCtrl.DeletePromotion)

		// Staff mutation goes through the stored procedure contract and
		// is manager-only.
		managers := protected.Group("")
		managers.Use(middlewares.RequireRoles("Manager"))
		{
			managers.POST("/staff", staffCtrl.CreateStaff)
			managers.PUT("/staff/:staff_id", staffCtrl.UpdateStaff)
			managers.DELETE("/staff/:staff_id", staffCtrl.DeleteStaff)
		}
	}

	return r
}
