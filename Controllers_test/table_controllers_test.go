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
	"restaurant-pos/services"
	"restaurant-pos/utils"
)

func setupTableTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Table{}, &models.Item{}, &models.Order{}, &models.Detail{},
		&models.Staff{}, &models.Chef{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db.Create(&models.Table{TableID: 101, TableNumber: 1, Area: "Main", Status: models.TableAvailable})
	db.Create(&models.Table{TableID: 102, TableNumber: 2, Area: "Patio", Status: models.TableAvailable})
	db.Create(&models.Item{ItemID: "C001", Name: "Food", Status: models.ItemAvailable})
	db.Create(&models.Item{ItemID: "F001", Name: "Fried Rice", Price: floatPtr(10.0), Status: models.ItemAvailable, SuperItemID: strPtr("C001")})
	db.Create(&models.Staff{StaffID: "STF0001AAA", FullName: "Chef One", Status: "Active"})
	db.Create(&models.Chef{StaffID: "STF0001AAA", Experience: 5})

	return db
}

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	router := gin.New()
	tableCtrl := controllers.NewTableController(db)
	orderCtrl := controllers.NewOrderController(db, services.NewLocalProcedureRunner())
	router.GET("/api/tables", tableCtrl.GetAllTables)
	router.GET("/api/tables/:table_id", tableCtrl.GetTableByID)
	router.POST("/api/tables", tableCtrl.CreateTable)
	router.PUT("/api/tables/:table_id", tableCtrl.UpdateTable)
	router.DELETE("/api/tables/:table_id", tableCtrl.DeleteTable)
	router.POST("/api/orders", orderCtrl.CreateOrder)
	return router
}

func TestTableListEmbedsCurrentOrder(t *testing.T) {
	db := setupTableTestDB(t)
	router := setupTableRouter(db)

	w := doJSON(router, "POST", "/api/orders", map[string]interface{}{"table_id": 101})
	assert.Equal(t, http.StatusCreated, w.Code)

	req, _ := http.NewRequest("GET", "/api/tables", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)

	for _, table := range resp.Data {
		switch int(table["table_id"].(float64)) {
		case 101:
			assert.Equal(t, models.TableOccupied, table["status"])
			assert.NotNil(t, table["current_order"])
			order := table["current_order"].(map[string]interface{})
			assert.Equal(t, models.OrderServing, order["status"])
		case 102:
			assert.Equal(t, models.TableAvailable, table["status"])
			assert.Nil(t, table["current_order"])
		}
	}
}

func TestUpdateTableRejectsUnknownStatus(t *testing.T) {
	db := setupTableTestDB(t)
	router := setupTableRouter(db)

	w := doJSON(router, "PUT", "/api/tables/101", map[string]interface{}{"status": "Broken"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var table models.Table
	assert.NoError(t, db.First(&table, 101).Error)
	assert.Equal(t, models.TableAvailable, table.Status)
}

func TestUpdateTableChangesAreaAndStatus(t *testing.T) {
	db := setupTableTestDB(t)
	router := setupTableRouter(db)

	w := doJSON(router, "PUT", "/api/tables/102", map[string]interface{}{
		"area":   "Terrace",
		"status": models.TableOccupied,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var table models.Table
	assert.NoError(t, db.First(&table, 102).Error)
	assert.Equal(t, "Terrace", table.Area)
	assert.Equal(t, models.TableOccupied, table.Status)
}

func TestDeleteTableRejectedWhileServing(t *testing.T) {
	db := setupTableTestDB(t)
	router := setupTableRouter(db)

	w := doJSON(router, "POST", "/api/orders", map[string]interface{}{"table_id": 101})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "DELETE", "/api/tables/101", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "active order")

	var count int64
	db.Model(&models.Table{}).Where("table_id = ?", 101).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateAndDeleteIdleTable(t *testing.T) {
	db := setupTableTestDB(t)
	router := setupTableRouter(db)

	w := doJSON(router, "POST", "/api/tables", map[string]interface{}{
		"table_id":     103,
		"table_number": 3,
		"area":         "Bar",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "DELETE", "/api/tables/103", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Table{}).Where("table_id = ?", 103).Count(&count)
	assert.Equal(t, int64(0), count)
}
