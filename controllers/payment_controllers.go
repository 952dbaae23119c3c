package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-pos/models"
	"restaurant-pos/utils"
)

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

// GetAllPayments -> list payments, newest first
func (pc *PaymentController) GetAllPayments(c *gin.Context) {
	var payments []models.Payment
	if err := pc.DB.Order("pay_date desc").Find(&payments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of payments", payments)
}

// GetPaymentByID -> one payment
func (pc *PaymentController) GetPaymentByID(c *gin.Context) {
	var payment models.Payment
	if err := pc.DB.First(&payment, "payment_id = ?", c.Param("payment_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("payment not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment detail", payment)
}

// CreatePayment -> record a payment against an invoice
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	var req struct {
		Amount    *float64 `json:"amount" binding:"required"`
		Method    string   `json:"method" binding:"required"`
		Status    string   `json:"status"`
		InvoiceID *string  `json:"invoice_id"`
		StaffID   string   `json:"staff_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Status == "" {
		req.Status = "Paid"
	}

	if req.InvoiceID != nil {
		var invoice models.Invoice
		if err := pc.DB.First(&invoice, "invoice_id = ?", *req.InvoiceID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, fmt.Errorf("invoice not found"))
			return
		}
	}
	var cashier models.Cashier
	if err := pc.DB.First(&cashier, "staff_id = ?", req.StaffID).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("staff %s is not a cashier", req.StaffID))
		return
	}

	tx := pc.DB.Begin()
	paymentID, err := utils.UniqueID(tx, "PAY", "payments", "payment_id")
	if err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	payment := models.Payment{
		PaymentID: paymentID,
		Amount:    req.Amount,
		PayDate:   &now,
		Method:    req.Method,
		Status:    req.Status,
		InvoiceID: req.InvoiceID,
		StaffID:   req.StaffID,
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Payment %s recorded (method=%s)", payment.PaymentID, payment.Method)
	utils.RespondJSON(c, http.StatusCreated, "Payment created", payment)
}

// UpdatePayment -> change method or status
func (pc *PaymentController) UpdatePayment(c *gin.Context) {
	var payment models.Payment
	if err := pc.DB.First(&payment, "payment_id = ?", c.Param("payment_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("payment not found"))
		return
	}

	var req struct {
		Method *string `json:"method"`
		Status *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Method != nil {
		payment.Method = *req.Method
	}
	if req.Status != nil {
		payment.Status = *req.Status
	}

	if err := pc.DB.Save(&payment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment updated", payment)
}

// DeletePayment -> remove a payment row
func (pc *PaymentController) DeletePayment(c *gin.Context) {
	var payment models.Payment
	if err := pc.DB.First(&payment, "payment_id = ?", c.Param("payment_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("payment not found"))
		return
	}

	if err := pc.DB.Delete(&payment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment deleted", gin.H{"payment_id": payment.PaymentID})
}
