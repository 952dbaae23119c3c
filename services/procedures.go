package services

import (
	"gorm.io/gorm"
)

// StaffInput is the argument block for the staff create/update procedure.
// RoleDetail carries the role-specific attribute: years of experience for
// a chef, education for a cashier, language fluency for a waiter.
type StaffInput struct {
	StaffID    string  `json:"staff_id"`
	FullName   string  `json:"full_name" validate:"required"`
	Phone      string  `json:"phone" validate:"required"`
	ManagerID  *string `json:"manager_id"`
	Role       string  `json:"role" validate:"omitempty,oneof=Chef Cashier Waiter"`
	RoleDetail string  `json:"role_detail"`
}

// ProcedureRunner is the contract for the logic the POS delegates to the
// database: customer upsert by phone, cascading order deletion, and staff
// mutation. Callers pass the transaction the work must join; a runner
// returns an error to roll the whole operation back.
type ProcedureRunner interface {
	// UpsertCustomer resolves a customer by phone, creating the row if
	// absent, and returns the customer id. Idempotent per phone number.
	UpsertCustomer(tx *gorm.DB, fullName, phone string) (string, error)

	// DeleteOrderCascade removes an order together with its dependent
	// rows. The order must exist; deleting an unknown id is an error.
	DeleteOrderCascade(tx *gorm.DB, orderID string) error

	// SaveStaff creates (empty StaffID) or updates a staff member and its
	// sub-role row, returning the staff id.
	SaveStaff(tx *gorm.DB, in StaffInput) (string, error)
}
