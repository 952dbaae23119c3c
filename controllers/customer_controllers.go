package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-pos/models"
	"restaurant-pos/utils"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetAllCustomers -> list customers
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := cc.DB.Order("customer_id").Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

// GetCustomerByID -> one customer
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	var customer models.Customer
	if err := cc.DB.First(&customer, "customer_id = ?", c.Param("customer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("customer not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

// CreateCustomer -> manual customer entry (the order flow uses the
// upsert-by-phone procedure instead)
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req struct {
		FullName string `json:"full_name" binding:"required"`
		Phone    string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tx := cc.DB.Begin()
	customerID, err := utils.UniqueID(tx, "CUS", "customers", "customer_id")
	if err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	customer := models.Customer{
		CustomerID: customerID,
		FullName:   req.FullName,
		Phone:      &req.Phone,
	}
	if err := tx.Create(&customer).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Customer created", customer)
}

// UpdateCustomer -> change name or phone
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := cc.DB.First(&customer, "customer_id = ?", c.Param("customer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("customer not found"))
		return
	}

	var req struct {
		FullName *string `json:"full_name"`
		Phone    *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.FullName != nil {
		customer.FullName = *req.FullName
	}
	if req.Phone != nil {
		customer.Phone = req.Phone
	}

	if err := cc.DB.Save(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer updated", customer)
}

// DeleteCustomer -> remove a customer no invoice or closing link references
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	var customer models.Customer
	if err := cc.DB.First(&customer, "customer_id = ?", c.Param("customer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("customer not found"))
		return
	}

	var refs int64
	cc.DB.Model(&models.Invoice{}).Where("customer_id = ?", customer.CustomerID).Count(&refs)
	if refs == 0 {
		cc.DB.Model(&models.Ptorder{}).Where("customer_id = ?", customer.CustomerID).Count(&refs)
	}
	if refs > 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("customer is referenced by invoices or orders"))
		return
	}

	if err := cc.DB.Delete(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer deleted", gin.H{"customer_id": customer.CustomerID})
}
