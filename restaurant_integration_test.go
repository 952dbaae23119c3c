package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restaurant-pos/models"
	"restaurant-pos/router"
	"restaurant-pos/services"
	"restaurant-pos/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the main floor flow:
// 0. Seed a manager account, a table, the menu and a chef, then login
// 1. Open an order on the table (table becomes Occupied)
// 2. Add items (repeat add merges into one line)
// 3. Complete the order with the guest's name and phone
// 4. Table is Available again, customer exists, revenue shows today's total
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db, services.NewLocalProcedureRunner())

	token := loginTest(t, r)

	orderID := openOrderTest(t, r, token)
	addItemsTest(t, r, orderID, token)
	completeOrderTest(t, r, orderID, token)
	checkAftermathTest(t, r, db, token)
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Table{},
		&models.Item{},
		&models.Order{},
		&models.Detail{},
		&models.Staff{},
		&models.Chef{},
		&models.Cashier{},
		&models.Waiter{},
		&models.Supervision{},
		&models.Ptorder{},
		&models.Invoice{},
		&models.Payment{},
		&models.Promotion{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.User{Username: "manager", Password: string(hashed), Role: "Manager", FullName: "The Manager"})

	db.Create(&models.Table{TableID: 101, TableNumber: 1, Area: "Main", Status: models.TableAvailable})

	price1, price2 := 12.5, 4.0
	category := "C001"
	db.Create(&models.Item{ItemID: "C001", Name: "Food", Status: models.ItemAvailable})
	db.Create(&models.Item{ItemID: "F001", Name: "Nasi Goreng", Price: &price1, Status: models.ItemAvailable, SuperItemID: &category})
	db.Create(&models.Item{ItemID: "F002", Name: "Iced Tea", Price: &price2, Status: models.ItemAvailable, SuperItemID: &category})

	db.Create(&models.Staff{StaffID: "STF0001AAA", FullName: "Chef One", Status: "Active"})
	db.Create(&models.Chef{StaffID: "STF0001AAA", Experience: 5})

	return db
}

func doRequest(r *gin.Engine, method, url, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v (body=%s)", err, w.Body.String())
	}
	return resp.Data
}

func loginTest(t *testing.T, r *gin.Engine) string {
	w := doRequest(r, "POST", "/auth/login", "", map[string]interface{}{
		"username": "manager",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	token, ok := decodeData(t, w)["access"].(string)
	if !ok || token == "" {
		t.Fatal("login response has no access token")
	}
	return token
}

func openOrderTest(t *testing.T, r *gin.Engine, token string) string {
	// mutations need a session
	w := doRequest(r, "POST", "/api/orders", "", map[string]interface{}{"table_id": 101})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	w = doRequest(r, "POST", "/api/orders", token, map[string]interface{}{"table_id": 101})
	if w.Code != http.StatusCreated {
		t.Fatalf("open order failed: %d %s", w.Code, w.Body.String())
	}
	orderID, _ := decodeData(t, w)["order_id"].(string)
	if orderID == "" {
		t.Fatal("open order response has no order_id")
	}

	// the table is now taken
	w = doRequest(r, "POST", "/api/orders", token, map[string]interface{}{"table_id": 101})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 opening a second order on the table, got %d", w.Code)
	}
	return orderID
}

func addItemsTest(t *testing.T, r *gin.Engine, orderID, token string) {
	url := "/api/orders/" + orderID + "/add_item"

	for _, body := range []map[string]interface{}{
		{"item_id": "F001", "quantity": 2},
		{"item_id": "F001", "quantity": 1}, // merges into the existing line
		{"item_id": "F002", "quantity": 1},
	} {
		w := doRequest(r, "POST", url, token, body)
		if w.Code != http.StatusOK {
			t.Fatalf("add item failed: %d %s", w.Code, w.Body.String())
		}
	}

	w := doRequest(r, "GET", "/api/orders/"+orderID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get order failed: %d %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w)
	details := data["details"].([]interface{})
	if len(details) != 2 {
		t.Fatalf("expected 2 lines after merge, got %d", len(details))
	}
	// 3 x 12.5 + 1 x 4.0
	if total := data["total_price"].(float64); total != 41.5 {
		t.Fatalf("expected total 41.5, got %v", total)
	}
}

func completeOrderTest(t *testing.T, r *gin.Engine, orderID, token string) {
	url := "/api/orders/" + orderID + "/complete"

	w := doRequest(r, "POST", url, token, map[string]interface{}{
		"customer_name": "", "customer_phone": "0812345678",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank customer name, got %d", w.Code)
	}

	w = doRequest(r, "POST", url, token, map[string]interface{}{
		"customer_name": "Jane Roe", "customer_phone": "0812345678",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("complete order failed: %d %s", w.Code, w.Body.String())
	}

	// settling twice is rejected
	w = doRequest(r, "POST", url, token, map[string]interface{}{
		"customer_name": "Jane Roe", "customer_phone": "0812345678",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 completing a settled order, got %d", w.Code)
	}
}

func checkAftermathTest(t *testing.T, r *gin.Engine, db *gorm.DB, token string) {
	var table models.Table
	if err := db.First(&table, 101).Error; err != nil {
		t.Fatalf("table lookup failed: %v", err)
	}
	if table.Status != models.TableAvailable {
		t.Fatalf("expected table Available after settlement, got %s", table.Status)
	}

	var customer models.Customer
	if err := db.Where("phone = ?", "0812345678").First(&customer).Error; err != nil {
		t.Fatalf("customer was not created by settlement: %v", err)
	}
	if customer.FullName != "Jane Roe" {
		t.Fatalf("unexpected customer name %q", customer.FullName)
	}

	w := doRequest(r, "GET", "/api/revenue", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("revenue failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data []struct {
			Date    string  `json:"date"`
			Revenue float64 `json:"revenue"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode revenue: %v", err)
	}
	if len(resp.Data) != 7 {
		t.Fatalf("expected 7 revenue buckets, got %d", len(resp.Data))
	}
	if today := resp.Data[6].Revenue; today != 41.5 {
		t.Fatalf("expected today's revenue 41.5, got %v", today)
	}

	// staff mutation is manager-only and this token qualifies
	w = doRequest(r, "POST", "/api/staff", token, map[string]interface{}{
		"full_name": "New Waiter", "phone": "0899999999",
		"role": "Waiter", "role_detail": "English",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("manager staff create failed: %d %s", w.Code, w.Body.String())
	}
}
