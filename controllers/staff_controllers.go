package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"restaurant-pos/models"
	"restaurant-pos/services"
	"restaurant-pos/utils"
)

var validate = validator.New()

type StaffController struct {
	DB    *gorm.DB
	Procs services.ProcedureRunner
}

func NewStaffController(db *gorm.DB, procs services.ProcedureRunner) *StaffController {
	return &StaffController{DB: db, Procs: procs}
}

// staffView annotates a staff row with its derived role and the
// role-specific detail (experience, education or fluency).
type staffView struct {
	models.Staff
	Role   string `json:"role"`
	Detail string `json:"detail"`
}

// resolveRole looks the staff id up against the three extension tables.
// At most one row is expected; precedence is chef, cashier, waiter.
func (sc *StaffController) resolveRole(staffID string) (string, string) {
	var chef models.Chef
	if err := sc.DB.First(&chef, "staff_id = ?", staffID).Error; err == nil {
		return models.RoleChef, strconv.Itoa(chef.Experience)
	}
	var cashier models.Cashier
	if err := sc.DB.First(&cashier, "staff_id = ?", staffID).Error; err == nil {
		return models.RoleCashier, cashier.Education
	}
	var waiter models.Waiter
	if err := sc.DB.First(&waiter, "staff_id = ?", staffID).Error; err == nil {
		return models.RoleWaiter, waiter.Fluency
	}
	return models.RolePlain, ""
}

// GetAllStaff -> staff annotated with role and detail; ?role= filters to
// chef, cashier or waiter
func (sc *StaffController) GetAllStaff(c *gin.Context) {
	roleFilter := c.DefaultQuery("role", "all")

	var staff []models.Staff
	if err := sc.DB.Order("staff_id").Find(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	views := make([]staffView, 0, len(staff))
	for _, s := range staff {
		role, detail := sc.resolveRole(s.StaffID)
		switch roleFilter {
		case "chef":
			if role != models.RoleChef {
				continue
			}
		case "cashier":
			if role != models.RoleCashier {
				continue
			}
		case "waiter":
			if role != models.RoleWaiter {
				continue
			}
		}
		views = append(views, staffView{Staff: s, Role: role, Detail: detail})
	}
	utils.RespondJSON(c, http.StatusOK, "List of staff", views)
}

// GetStaffByID -> one staff member with role annotation
func (sc *StaffController) GetStaffByID(c *gin.Context) {
	var staff models.Staff
	if err := sc.DB.First(&staff, "staff_id = ?", c.Param("staff_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("staff not found"))
		return
	}
	role, detail := sc.resolveRole(staff.StaffID)
	utils.RespondJSON(c, http.StatusOK, "Staff detail", staffView{Staff: staff, Role: role, Detail: detail})
}

// CreateStaff delegates to the staff mutation procedure.
func (sc *StaffController) CreateStaff(c *gin.Context) {
	var req services.StaffInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	req.StaffID = ""
	if err := validate.Struct(req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tx := sc.DB.Begin()
	staffID, err := sc.Procs.SaveStaff(tx, req)
	if err != nil {
		tx.Rollback()
		utils.ErrorLogger.Printf("Staff create failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, fmt.Errorf("could not create staff"))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Staff %s created (role=%s)", staffID, req.Role)
	utils.RespondJSON(c, http.StatusCreated, "Staff created", gin.H{"staff_id": staffID})
}

// UpdateStaff delegates to the staff mutation procedure.
func (sc *StaffController) UpdateStaff(c *gin.Context) {
	staffID := c.Param("staff_id")

	var exists int64
	sc.DB.Model(&models.Staff{}).Where("staff_id = ?", staffID).Count(&exists)
	if exists == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("staff not found"))
		return
	}

	var req services.StaffInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	req.StaffID = staffID
	if err := validate.Struct(req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tx := sc.DB.Begin()
	if _, err := sc.Procs.SaveStaff(tx, req); err != nil {
		tx.Rollback()
		utils.ErrorLogger.Printf("Staff update failed for %s: %v", staffID, err)
		utils.RespondError(c, http.StatusInternalServerError, fmt.Errorf("could not update staff"))
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Staff updated", gin.H{"staff_id": staffID})
}

// DeleteStaff removes a staff member unless any line item, invoice,
// payment or closing link still references them. Sub-role rows and
// supervision links go in the same transaction.
func (sc *StaffController) DeleteStaff(c *gin.Context) {
	staffID := c.Param("staff_id")

	tx := sc.DB.Begin()

	var staff models.Staff
	if err := tx.First(&staff, "staff_id = ?", staffID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("staff not found"))
		return
	}

	if blocker := sc.referenceBlocker(tx, staffID); blocker != "" {
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("staff is referenced by %s and cannot be deleted", blocker))
		return
	}

	for _, subRole := range []interface{}{&models.Chef{}, &models.Cashier{}, &models.Waiter{}} {
		if err := tx.Where("staff_id = ?", staffID).Delete(subRole).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	if err := tx.Where("minor_staff_id = ? OR major_staff_id = ?", staffID, staffID).
		Delete(&models.Supervision{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Delete(&staff).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Staff %s deleted", staffID)
	utils.RespondJSON(c, http.StatusOK, "Staff deleted", gin.H{"staff_id": staffID})
}

// referenceBlocker names the first dependency still pointing at the
// staff id, or returns empty when deletion is safe.
func (sc *StaffController) referenceBlocker(tx *gorm.DB, staffID string) string {
	var count int64

	tx.Model(&models.Detail{}).Where("staff_id = ?", staffID).Count(&count)
	if count > 0 {
		return "order details"
	}
	tx.Model(&models.Invoice{}).Where("staff_id = ?", staffID).Count(&count)
	if count > 0 {
		return "invoices"
	}
	tx.Model(&models.Payment{}).Where("staff_id = ?", staffID).Count(&count)
	if count > 0 {
		return "payments"
	}
	tx.Model(&models.Ptorder{}).Where("staff_id = ?", staffID).Count(&count)
	if count > 0 {
		return "order closing records"
	}
	return ""
}

// GetAllChefs -> chef extension rows with embedded staff
func (sc *StaffController) GetAllChefs(c *gin.Context) {
	var chefs []models.Chef
	if err := sc.DB.Preload("Staff").Order("staff_id").Find(&chefs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of chefs", chefs)
}

// GetAllCashiers -> cashier extension rows with embedded staff
func (sc *StaffController) GetAllCashiers(c *gin.Context) {
	var cashiers []models.Cashier
	if err := sc.DB.Preload("Staff").Order("staff_id").Find(&cashiers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of cashiers", cashiers)
}

// GetAllWaiters -> waiter extension rows with embedded staff
func (sc *StaffController) GetAllWaiters(c *gin.Context) {
	var waiters []models.Waiter
	if err := sc.DB.Preload("Staff").Order("staff_id").Find(&waiters).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of waiters", waiters)
}
