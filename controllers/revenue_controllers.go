package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-pos/models"
	"restaurant-pos/utils"
)

type RevenueController struct {
	DB *gorm.DB
}

func NewRevenueController(db *gorm.DB) *RevenueController {
	return &RevenueController{DB: db}
}

type RevenueBucket struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// GetLast7Days -> trailing 7-day revenue series, oldest day first
func (rc *RevenueController) GetLast7Days(c *gin.Context) {
	buckets, err := LastSevenDaysRevenue(rc.DB, time.Now())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Revenue for the last 7 days", buckets)
}

// LastSevenDaysRevenue builds the 7-day window ending at ref inclusive,
// seeded with zero per day. Each Paid order created in the window adds
// the sum of quantity x price over its details to its creation day;
// details with a missing item or price contribute 0 instead of failing
// the order.
func LastSevenDaysRevenue(db *gorm.DB, ref time.Time) ([]RevenueBucket, error) {
	start := truncateDay(ref).AddDate(0, 0, -6)
	end := truncateDay(ref).AddDate(0, 0, 1)

	var orders []models.Order
	err := db.Preload("Details.Item").
		Where("status = ? AND created_at >= ? AND created_at < ?", models.OrderPaid, start, end).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	totals := make([]float64, 7)
	for _, o := range orders {
		day := int(truncateDay(o.CreatedAt).Sub(start).Hours() / 24)
		if day < 0 || day > 6 {
			continue
		}
		totals[day] += o.TotalPrice()
	}

	buckets := make([]RevenueBucket, 7)
	for i := range buckets {
		buckets[i] = RevenueBucket{
			Date:    start.AddDate(0, 0, i).Format("02/01"),
			Revenue: totals[i],
		}
	}
	return buckets, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
