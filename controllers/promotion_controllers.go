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

type PromotionController struct {
	DB *gorm.DB
}

func NewPromotionController(db *gorm.DB) *PromotionController {
	return &PromotionController{DB: db}
}

// GetAllPromotions -> list promotions; ?active=true keeps unexpired ones
func (pc *PromotionController) GetAllPromotions(c *gin.Context) {
	query := pc.DB.Order("promo_id")
	if c.Query("active") == "true" {
		query = query.Where("expire_date IS NULL OR expire_date >= ?", time.Now())
	}

	var promos []models.Promotion
	if err := query.Find(&promos).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of promotions", promos)
}

// GetPromotionByID -> one promotion
func (pc *PromotionController) GetPromotionByID(c *gin.Context) {
	var promo models.Promotion
	if err := pc.DB.First(&promo, "promo_id = ?", c.Param("promo_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("promotion not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Promotion detail", promo)
}

// CreatePromotion -> add a promotion
func (pc *PromotionController) CreatePromotion(c *gin.Context) {
	var req struct {
		Description     string     `json:"description" binding:"required"`
		MinValue        *float64   `json:"min_value"`
		ExpireDate      *time.Time `json:"expire_date"`
		DiscountPercent *float64   `json:"discount_percent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tx := pc.DB.Begin()
	promoID, err := utils.UniqueID(tx, "PRM", "promotions", "promo_id")
	if err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	promo := models.Promotion{
		PromoID:         promoID,
		Description:     req.Description,
		MinValue:        req.MinValue,
		ExpireDate:      req.ExpireDate,
		DiscountPercent: req.DiscountPercent,
	}
	if err := tx.Create(&promo).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Promotion created", promo)
}

// UpdatePromotion -> change any promotion field
func (pc *PromotionController) UpdatePromotion(c *gin.Context) {
	var promo models.Promotion
	if err := pc.DB.First(&promo, "promo_id = ?", c.Param("promo_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("promotion not found"))
		return
	}

	var req struct {
		Description     *string    `json:"description"`
		MinValue        *float64   `json:"min_value"`
		ExpireDate      *time.Time `json:"expire_date"`
		DiscountPercent *float64   `json:"discount_percent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Description != nil {
		promo.Description = *req.Description
	}
	if req.MinValue != nil {
		promo.MinValue = req.MinValue
	}
	if req.ExpireDate != nil {
		promo.ExpireDate = req.ExpireDate
	}
	if req.DiscountPercent != nil {
		promo.DiscountPercent = req.DiscountPercent
	}

	if err := pc.DB.Save(&promo).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Promotion updated", promo)
}

// DeletePromotion -> remove a promotion
func (pc *PromotionController) DeletePromotion(c *gin.Context) {
	var promo models.Promotion
	if err := pc.DB.First(&promo, "promo_id = ?", c.Param("promo_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("promotion not found"))
		return
	}

	if err := pc.DB.Delete(&promo).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Promotion deleted", gin.H{"promo_id": promo.PromoID})
}
