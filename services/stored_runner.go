package services

import (
	"fmt"

	"gorm.io/gorm"
)

// StoredProcedureRunner calls the MySQL stored procedures shipped with
// the POS schema. The procedures are opaque: positional arguments in,
// one result row (or nothing) out, error on failure.
type StoredProcedureRunner struct{}

func NewStoredProcedureRunner() *StoredProcedureRunner {
	return &StoredProcedureRunner{}
}

func (r *StoredProcedureRunner) UpsertCustomer(tx *gorm.DB, fullName, phone string) (string, error) {
	var row struct {
		CustomerID string `gorm:"column:customer_id"`
	}
	err := tx.Raw("CALL upsert_customer_by_phone(?, ?)", fullName, phone).Scan(&row).Error
	if err != nil {
		return "", fmt.Errorf("upsert_customer_by_phone: %w", err)
	}
	if row.CustomerID == "" {
		return "", fmt.Errorf("upsert_customer_by_phone returned no customer id")
	}
	return row.CustomerID, nil
}

func (r *StoredProcedureRunner) DeleteOrderCascade(tx *gorm.DB, orderID string) error {
	if err := tx.Exec("CALL delete_order_cascade(?)", orderID).Error; err != nil {
		return fmt.Errorf("delete_order_cascade: %w", err)
	}
	return nil
}

func (r *StoredProcedureRunner) SaveStaff(tx *gorm.DB, in StaffInput) (string, error) {
	var row struct {
		StaffID string `gorm:"column:staff_id"`
	}
	err := tx.Raw("CALL save_staff(?, ?, ?, ?, ?, ?)",
		in.StaffID, in.FullName, in.Phone, in.ManagerID, in.Role, in.RoleDetail,
	).Scan(&row).Error
	if err != nil {
		return "", fmt.Errorf("save_staff: %w", err)
	}
	if row.StaffID == "" {
		return "", fmt.Errorf("save_staff returned no staff id")
	}
	return row.StaffID, nil
}
