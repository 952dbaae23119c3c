package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-pos/models"
	"restaurant-pos/utils"
)

type ItemController struct {
	DB *gorm.DB
}

func NewItemController(db *gorm.DB) *ItemController {
	return &ItemController{DB: db}
}

// GetAllItems -> full catalog, category headers included
func (ic *ItemController) GetAllItems(c *gin.Context) {
	query := ic.DB.Order("item_id")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var items []models.Item
	if err := query.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of items", items)
}

// GetAvailableItems -> orderable dishes only: available leaf items
func (ic *ItemController) GetAvailableItems(c *gin.Context) {
	var items []models.Item
	err := ic.DB.
		Where("status = ? AND super_item_id IS NOT NULL", models.ItemAvailable).
		Order("item_id").
		Find(&items).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available items", items)
}

// GetItemByID -> one item
func (ic *ItemController) GetItemByID(c *gin.Context) {
	var item models.Item
	if err := ic.DB.First(&item, "item_id = ?", c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("item not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item detail", item)
}

// CreateItem -> add a dish or category header
func (ic *ItemController) CreateItem(c *gin.Context) {
	var req struct {
		Name        string   `json:"name" binding:"required"`
		Price       *float64 `json:"price"`
		Status      string   `json:"status"`
		SuperItemID *string  `json:"super_item_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Status == "" {
		req.Status = models.ItemAvailable
	}

	tx := ic.DB.Begin()

	itemID, err := utils.UniqueID(tx, "ITM", "items", "item_id")
	if err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	item := models.Item{
		ItemID:      itemID,
		Name:        req.Name,
		Price:       req.Price,
		Status:      req.Status,
		SuperItemID: req.SuperItemID,
	}
	if err := tx.Create(&item).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Item %s created: %s", item.ItemID, item.Name)
	utils.RespondJSON(c, http.StatusCreated, "Item created", item)
}

// UpdateItem -> change name, price, status or parent
func (ic *ItemController) UpdateItem(c *gin.Context) {
	var item models.Item
	if err := ic.DB.First(&item, "item_id = ?", c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("item not found"))
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Status      *string  `json:"status"`
		SuperItemID *string  `json:"super_item_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		item.Price = req.Price
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.SuperItemID != nil {
		item.SuperItemID = req.SuperItemID
	}

	if err := ic.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item updated", item)
}

// DeleteItem -> remove an item that no order line references
func (ic *ItemController) DeleteItem(c *gin.Context) {
	var item models.Item
	if err := ic.DB.First(&item, "item_id = ?", c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("item not found"))
		return
	}

	var refs int64
	ic.DB.Model(&models.Detail{}).Where("item_id = ?", item.ItemID).Count(&refs)
	if refs > 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("item is referenced by order details"))
		return
	}

	if err := ic.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item deleted", gin.H{"item_id": item.ItemID})
}
