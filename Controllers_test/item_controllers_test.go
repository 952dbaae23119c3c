package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restaurant-pos/controllers"
	"restaurant-pos/models"
	"restaurant-pos/utils"
)

func setupItemTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Item{}, &models.Detail{}, &models.Staff{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db.Create(&models.Item{ItemID: "C001", Name: "Food", Status: models.ItemAvailable})
	db.Create(&models.Item{ItemID: "F001", Name: "Fried Rice", Price: floatPtr(10.0), Status: models.ItemAvailable, SuperItemID: strPtr("C001")})
	db.Create(&models.Item{ItemID: "F002", Name: "Iced Tea", Price: floatPtr(5.0), Status: models.ItemUnavailable, SuperItemID: strPtr("C001")})

	return db
}

func setupItemRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	router := gin.New()
	itemCtrl := controllers.NewItemController(db)
	router.GET("/api/items", itemCtrl.GetAllItems)
	router.GET("/api/items/available", itemCtrl.GetAvailableItems)
	router.GET("/api/items/:item_id", itemCtrl.GetItemByID)
	router.POST("/api/items", itemCtrl.CreateItem)
	router.PUT("/api/items/:item_id", itemCtrl.UpdateItem)
	router.DELETE("/api/items/:item_id", itemCtrl.DeleteItem)
	return router
}

func listItems(t *testing.T, router *gin.Engine, url string) []map[string]interface{} {
	req, _ := http.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestAvailableItemsExcludesHeadersAndUnavailable(t *testing.T) {
	db := setupItemTestDB(t)
	router := setupItemRouter(db)

	items := listItems(t, router, "/api/items/available")
	assert.Len(t, items, 1)
	assert.Equal(t, "F001", items[0]["item_id"])
}

func TestItemListStatusFilter(t *testing.T) {
	db := setupItemTestDB(t)
	router := setupItemRouter(db)

	all := listItems(t, router, "/api/items")
	assert.Len(t, all, 3)

	unavailable := listItems(t, router, "/api/items?status=Unavailable")
	assert.Len(t, unavailable, 1)
	assert.Equal(t, "F002", unavailable[0]["item_id"])
}

func TestCreateItemGeneratesID(t *testing.T) {
	db := setupItemTestDB(t)
	router := setupItemRouter(db)

	w := doJSON(router, "POST", "/api/items", map[string]interface{}{
		"name":          "Spring Rolls",
		"price":         7.5,
		"super_item_id": "C001",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	itemID := resp["data"].(map[string]interface{})["item_id"].(string)
	assert.Equal(t, "ITM", itemID[:3])
	assert.LessOrEqual(t, len(itemID), 10)

	var item models.Item
	assert.NoError(t, db.First(&item, "item_id = ?", itemID).Error)
	assert.True(t, item.Orderable())
}

func TestUpdateItemStatusAffectsAvailability(t *testing.T) {
	db := setupItemTestDB(t)
	router := setupItemRouter(db)

	w := doJSON(router, "PUT", "/api/items/F001", map[string]interface{}{
		"status": models.ItemUnavailable,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	items := listItems(t, router, "/api/items/available")
	assert.Len(t, items, 0)
}

func TestDeleteItemRejectedWhenReferenced(t *testing.T) {
	db := setupItemTestDB(t)
	router := setupItemRouter(db)

	db.Create(&models.Staff{StaffID: "STF0001AAA", FullName: "Chef One", Status: "Active"})
	db.Create(&models.Detail{OrderID: "ORD0001AAA", ItemID: "F001", StaffID: "STF0001AAA", Quantity: 2})

	w := doJSON(router, "DELETE", "/api/items/F001", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "DELETE", "/api/items/F002", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Item{}).Where("item_id = ?", "F002").Count(&count)
	assert.Equal(t, int64(0), count)
}
