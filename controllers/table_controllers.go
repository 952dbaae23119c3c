package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-pos/events"
	"restaurant-pos/models"
	"restaurant-pos/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// tableView embeds the order currently being served, if any.
type tableView struct {
	models.Table
	CurrentOrder *orderView `json:"current_order"`
}

func (tc *TableController) currentOrder(tableID int) *orderView {
	var order models.Order
	err := tc.DB.Preload("Details.Item").
		Where("table_id = ? AND status = ?", tableID, models.OrderServing).
		First(&order).Error
	if err != nil {
		return nil
	}
	view := newOrderView(order)
	return &view
}

// GetAllTables -> all tables ordered by number, with current orders
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("table_number").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	views := make([]tableView, 0, len(tables))
	for _, t := range tables {
		views = append(views, tableView{Table: t, CurrentOrder: tc.currentOrder(t.TableID)})
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", views)
}

// GetTableByID -> one table with its current order
func (tc *TableController) GetTableByID(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("table not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", tableView{
		Table:        table,
		CurrentOrder: tc.currentOrder(table.TableID),
	})
}

// CreateTable -> add a physical table
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableID     int    `json:"table_id" binding:"required"`
		TableNumber int    `json:"table_number" binding:"required"`
		Area        string `json:"area"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		TableID:     req.TableID,
		TableNumber: req.TableNumber,
		Area:        req.Area,
		Status:      models.TableAvailable,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d created (number=%d, area=%s)", table.TableID, table.TableNumber, table.Area)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// UpdateTable -> change number, area or status
func (tc *TableController) UpdateTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("table not found"))
		return
	}

	var req struct {
		TableNumber *int    `json:"table_number"`
		Area        *string `json:"area"`
		Status      *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.TableNumber != nil {
		table.TableNumber = *req.TableNumber
	}
	if req.Area != nil {
		table.Area = *req.Area
	}
	if req.Status != nil {
		if *req.Status != models.TableAvailable && *req.Status != models.TableOccupied {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid table status %q", *req.Status))
			return
		}
		table.Status = *req.Status
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableUpdate(table)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> remove a table that has no active order
func (tc *TableController) DeleteTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("table not found"))
		return
	}

	var serving int64
	tc.DB.Model(&models.Order{}).
		Where("table_id = ? AND status = ?", table.TableID, models.OrderServing).
		Count(&serving)
	if serving > 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("table has an active order"))
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", table.TableID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"table_id": table.TableID})
}
