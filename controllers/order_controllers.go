package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-pos/events"
	"restaurant-pos/models"
	"restaurant-pos/services"
	"restaurant-pos/utils"
)

type OrderController struct {
	DB    *gorm.DB
	Procs services.ProcedureRunner
}

func NewOrderController(db *gorm.DB, procs services.ProcedureRunner) *OrderController {
	return &OrderController{DB: db, Procs: procs}
}

// orderView is the response shape for an order: the row plus its details
// and the derived total price.
type orderView struct {
	models.Order
	TotalPrice float64 `json:"total_price"`
}

func newOrderView(o models.Order) orderView {
	return orderView{Order: o, TotalPrice: o.TotalPrice()}
}

// GetAllOrders -> list orders with details
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("Details.Item").Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", views)
}

// GetOrderByID -> one order with details
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.Preload("Details.Item").First(&order, "order_id = ?", orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("order not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", newOrderView(order))
}

// CreateOrder opens an order against a table. The table row is locked for
// the duration so two concurrent opens cannot both pass the serving check.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		TableID int `json:"table_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tx := oc.DB.Begin()

	var table models.Table
	if err := lockForUpdate(tx).First(&table, req.TableID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("table not found"))
		return
	}

	var serving int64
	if err := tx.Model(&models.Order{}).
		Where("table_id = ? AND status = ?", table.TableID, models.OrderServing).
		Count(&serving).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if serving > 0 {
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("table already has an active order"))
		return
	}

	orderID, err := utils.UniqueID(tx, "ORD", "orders", "order_id")
	if err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	order := models.Order{
		OrderID:   orderID,
		CreatedAt: time.Now(),
		Status:    models.OrderServing,
		Quantity:  0,
		TableID:   table.TableID,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	table.Status = models.TableOccupied
	if err := tx.Save(&table).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastOrder(events.EventOrderCreated, order)
	events.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("Order %s opened on table %d", order.OrderID, table.TableID)
	utils.RespondJSON(c, http.StatusCreated, "Order created", newOrderView(order))
}

// AddItem adds an item to an order, assigned to the default chef. A
// line already present for the (order, item, chef) triple is incremented
// in place; the order's quantity is then recomputed from its details.
func (oc *OrderController) AddItem(c *gin.Context) {
	orderID := c.Param("order_id")

	var req struct {
		ItemID   string `json:"item_id" binding:"required"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	tx := oc.DB.Begin()

	var order models.Order
	if err := lockForUpdate(tx).First(&order, "order_id = ?", orderID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("order not found"))
		return
	}

	var item models.Item
	if err := tx.First(&item, "item_id = ?", req.ItemID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("item not found"))
		return
	}

	// Every line needs a preparer; the system assigns the default chef.
	var chef models.Chef
	if err := tx.Order("staff_id").First(&chef).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("no chef available"))
		} else {
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	var detail models.Detail
	err := lockForUpdate(tx).
		Where("order_id = ? AND item_id = ? AND staff_id = ?", order.OrderID, item.ItemID, chef.StaffID).
		First(&detail).Error
	switch {
	case err == nil:
		if err := tx.Model(&detail).
			Update("quantity", gorm.Expr("quantity + ?", req.Quantity)).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		detail = models.Detail{
			OrderID:  order.OrderID,
			ItemID:   item.ItemID,
			StaffID:  chef.StaffID,
			Quantity: req.Quantity,
		}
		if err := tx.Create(&detail).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	default:
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Recompute rather than increment so the cached total can never drift.
	var total int64
	if err := tx.Model(&models.Detail{}).
		Where("order_id = ?", order.OrderID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Model(&order).Update("quantity", total).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := oc.DB.Preload("Details.Item").First(&order, "order_id = ?", order.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastOrder(events.EventOrderUpdated, order)
	utils.RespondJSON(c, http.StatusOK, "Item added to order", newOrderView(order))
}

// CompleteOrder settles an order: resolves the customer through the
// upsert procedure, records the closing link, marks the order Paid and
// frees the table. The whole operation commits or rolls back as one.
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	var req struct {
		CustomerName  string `json:"customer_name"`
		CustomerPhone string `json:"customer_phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	name := strings.TrimSpace(req.CustomerName)
	phone := strings.TrimSpace(req.CustomerPhone)
	if name == "" {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("customer_name is required"))
		return
	}
	if phone == "" {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("customer_phone is required"))
		return
	}

	tx := oc.DB.Begin()

	var order models.Order
	if err := lockForUpdate(tx).First(&order, "order_id = ?", orderID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("order not found"))
		return
	}
	if order.Status != models.OrderServing {
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("order is not serving"))
		return
	}

	customerID, err := oc.Procs.UpsertCustomer(tx, name, phone)
	if err != nil {
		tx.Rollback()
		utils.ErrorLogger.Printf("Customer upsert failed for order %s: %v", orderID, err)
		utils.RespondError(c, http.StatusInternalServerError, fmt.Errorf("could not resolve customer"))
		return
	}

	staffID, err := oc.closingStaff(tx, order.OrderID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("no staff available"))
		} else {
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	link := models.Ptorder{OrderID: order.OrderID}
	if err := tx.Where(models.Ptorder{OrderID: order.OrderID}).
		Attrs(models.Ptorder{StaffID: staffID, CustomerID: customerID}).
		FirstOrCreate(&link).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	order.Status = models.OrderPaid
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var table models.Table
	if err := tx.First(&table, order.TableID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	table.Status = models.TableAvailable
	if err := tx.Save(&table).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var customer models.Customer
	if err := tx.First(&customer, "customer_id = ?", customerID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := oc.DB.Preload("Details.Item").First(&order, "order_id = ?", order.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastOrder(events.EventOrderCompleted, order)
	events.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("Order %s completed for customer %s", order.OrderID, customerID)
	utils.RespondJSON(c, http.StatusOK, "Order completed", gin.H{
		"order":    newOrderView(order),
		"customer": customer,
	})
}

// closingStaff picks the staff member credited with closing the order:
// the chef on the first line item when there is one, otherwise any staff
// record.
func (oc *OrderController) closingStaff(tx *gorm.DB, orderID string) (string, error) {
	var detail models.Detail
	err := tx.Where("order_id = ?", orderID).Order("detail_id").First(&detail).Error
	if err == nil {
		return detail.StaffID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var staff models.Staff
	if err := tx.Order("staff_id").First(&staff).Error; err != nil {
		return "", err
	}
	return staff.StaffID, nil
}

// DeleteOrder removes an order through the cascade procedure. The table
// is freed only after the cascade succeeds; a failed cascade leaves the
// table status untouched.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	tx := oc.DB.Begin()

	var order models.Order
	if err := lockForUpdate(tx).First(&order, "order_id = ?", orderID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("order not found"))
		return
	}
	if order.Status != models.OrderServing {
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("order is already settled"))
		return
	}

	if err := oc.Procs.DeleteOrderCascade(tx, order.OrderID); err != nil {
		tx.Rollback()
		utils.ErrorLogger.Printf("Cascade delete failed for order %s: %v", orderID, err)
		utils.RespondError(c, http.StatusInternalServerError, fmt.Errorf("could not delete order"))
		return
	}

	var table models.Table
	if err := tx.First(&table, order.TableID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	table.Status = models.TableAvailable
	if err := tx.Save(&table).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastOrderDeleted(order.OrderID)
	events.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("Order %s deleted, table %d freed", order.OrderID, table.TableID)
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": order.OrderID})
}
