package services

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"restaurant-pos/models"
	"restaurant-pos/utils"
)

// LocalProcedureRunner implements the procedure contract natively over
// GORM. It is used when the database has no stored procedures (sqlite,
// the test suite) and must behave identically to the MySQL versions.
type LocalProcedureRunner struct{}

func NewLocalProcedureRunner() *LocalProcedureRunner {
	return &LocalProcedureRunner{}
}

func (r *LocalProcedureRunner) UpsertCustomer(tx *gorm.DB, fullName, phone string) (string, error) {
	var customer models.Customer
	err := tx.Where("phone = ?", phone).First(&customer).Error
	if err == nil {
		if customer.FullName != fullName {
			customer.FullName = fullName
			if err := tx.Save(&customer).Error; err != nil {
				return "", err
			}
		}
		return customer.CustomerID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	id, err := utils.UniqueID(tx, "CUS", "customers", "customer_id")
	if err != nil {
		return "", err
	}
	customer = models.Customer{
		CustomerID: id,
		FullName:   fullName,
		Phone:      &phone,
	}
	if err := tx.Create(&customer).Error; err != nil {
		return "", err
	}
	return customer.CustomerID, nil
}

func (r *LocalProcedureRunner) DeleteOrderCascade(tx *gorm.DB, orderID string) error {
	var order models.Order
	if err := tx.First(&order, "order_id = ?", orderID).Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", orderID).Delete(&models.Detail{}).Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", orderID).Delete(&models.Ptorder{}).Error; err != nil {
		return err
	}
	return tx.Delete(&order).Error
}

func (r *LocalProcedureRunner) SaveStaff(tx *gorm.DB, in StaffInput) (string, error) {
	var staff models.Staff
	if in.StaffID == "" {
		id, err := utils.UniqueID(tx, "STF", "staff", "staff_id")
		if err != nil {
			return "", err
		}
		staff = models.Staff{
			StaffID:   id,
			FullName:  in.FullName,
			Phone:     &in.Phone,
			Status:    "Active",
			ManagerID: in.ManagerID,
		}
		if err := tx.Create(&staff).Error; err != nil {
			return "", err
		}
	} else {
		if err := tx.First(&staff, "staff_id = ?", in.StaffID).Error; err != nil {
			return "", err
		}
		staff.FullName = in.FullName
		staff.Phone = &in.Phone
		staff.ManagerID = in.ManagerID
		if err := tx.Save(&staff).Error; err != nil {
			return "", err
		}
	}

	if in.Role != "" {
		if err := r.saveSubRole(tx, staff.StaffID, in.Role, in.RoleDetail); err != nil {
			return "", err
		}
	}
	return staff.StaffID, nil
}

// saveSubRole replaces the staff member's sub-role rows with the one
// requested. The flow assumes a single role per staff id.
func (r *LocalProcedureRunner) saveSubRole(tx *gorm.DB, staffID, role, detail string) error {
	if role != models.RoleChef {
		if err := tx.Where("staff_id = ?", staffID).Delete(&models.Chef{}).Error; err != nil {
			return err
		}
	}
	if role != models.RoleCashier {
		if err := tx.Where("staff_id = ?", staffID).Delete(&models.Cashier{}).Error; err != nil {
			return err
		}
	}
	if role != models.RoleWaiter {
		if err := tx.Where("staff_id = ?", staffID).Delete(&models.Waiter{}).Error; err != nil {
			return err
		}
	}

	switch role {
	case models.RoleChef:
		experience, _ := strconv.Atoi(detail)
		chef := models.Chef{StaffID: staffID}
		if err := tx.Where(models.Chef{StaffID: staffID}).FirstOrCreate(&chef).Error; err != nil {
			return err
		}
		return tx.Model(&chef).Update("experience", experience).Error
	case models.RoleCashier:
		cashier := models.Cashier{StaffID: staffID}
		if err := tx.Where(models.Cashier{StaffID: staffID}).FirstOrCreate(&cashier).Error; err != nil {
			return err
		}
		return tx.Model(&cashier).Update("education", detail).Error
	case models.RoleWaiter:
		waiter := models.Waiter{StaffID: staffID}
		if err := tx.Where(models.Waiter{StaffID: staffID}).FirstOrCreate(&waiter).Error; err != nil {
			return err
		}
		return tx.Model(&waiter).Update("fluency", detail).Error
	}
	return nil
}
