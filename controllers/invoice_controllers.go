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

type InvoiceController struct {
	DB *gorm.DB
}

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{DB: db}
}

// GetAllInvoices -> list invoices, newest first
func (ic *InvoiceController) GetAllInvoices(c *gin.Context) {
	var invoices []models.Invoice
	if err := ic.DB.Order("date_created desc").Find(&invoices).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of invoices", invoices)
}

// GetInvoiceByID -> one invoice
func (ic *InvoiceController) GetInvoiceByID(c *gin.Context) {
	var invoice models.Invoice
	if err := ic.DB.First(&invoice, "invoice_id = ?", c.Param("invoice_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("invoice not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Invoice detail", invoice)
}

// CreateInvoice -> issue an invoice for a customer by a cashier
func (ic *InvoiceController) CreateInvoice(c *gin.Context) {
	var req struct {
		Tax        *float64 `json:"tax"`
		StaffID    string   `json:"staff_id" binding:"required"`
		CustomerID string   `json:"customer_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var cashier models.Cashier
	if err := ic.DB.First(&cashier, "staff_id = ?", req.StaffID).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("staff %s is not a cashier", req.StaffID))
		return
	}
	var customer models.Customer
	if err := ic.DB.First(&customer, "customer_id = ?", req.CustomerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("customer not found"))
		return
	}

	tx := ic.DB.Begin()
	invoiceID, err := utils.UniqueID(tx, "INV", "invoices", "invoice_id")
	if err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	invoice := models.Invoice{
		InvoiceID:   invoiceID,
		DateCreated: &now,
		Tax:         req.Tax,
		StaffID:     req.StaffID,
		CustomerID:  req.CustomerID,
	}
	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Invoice created", invoice)
}

// UpdateInvoice -> change tax, cashier or customer
func (ic *InvoiceController) UpdateInvoice(c *gin.Context) {
	var invoice models.Invoice
	if err := ic.DB.First(&invoice, "invoice_id = ?", c.Param("invoice_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("invoice not found"))
		return
	}

	var req struct {
		Tax        *float64 `json:"tax"`
		StaffID    *string  `json:"staff_id"`
		CustomerID *string  `json:"customer_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Tax != nil {
		invoice.Tax = req.Tax
	}
	if req.StaffID != nil {
		var cashier models.Cashier
		if err := ic.DB.First(&cashier, "staff_id = ?", *req.StaffID).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("staff %s is not a cashier", *req.StaffID))
			return
		}
		invoice.StaffID = *req.StaffID
	}
	if req.CustomerID != nil {
		var customer models.Customer
		if err := ic.DB.First(&customer, "customer_id = ?", *req.CustomerID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, fmt.Errorf("customer not found"))
			return
		}
		invoice.CustomerID = *req.CustomerID
	}

	if err := ic.DB.Save(&invoice).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Invoice updated", invoice)
}

// DeleteInvoice -> remove an invoice with no payment attached
func (ic *InvoiceController) DeleteInvoice(c *gin.Context) {
	var invoice models.Invoice
	if err := ic.DB.First(&invoice, "invoice_id = ?", c.Param("invoice_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("invoice not found"))
		return
	}

	var refs int64
	ic.DB.Model(&models.Payment{}).Where("invoice_id = ?", invoice.InvoiceID).Count(&refs)
	if refs > 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invoice has a payment attached"))
		return
	}

	if err := ic.DB.Delete(&invoice).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Invoice deleted", gin.H{"invoice_id": invoice.InvoiceID})
}
