package models

// Derived role labels for the staff directory. A staff row with no
// extension row is plain staff.
const (
	RoleChef    = "Chef"
	RoleCashier = "Cashier"
	RoleWaiter  = "Waiter"
	RolePlain   = "Staff"
)

type Staff struct {
	StaffID   string  `gorm:"primaryKey;type:varchar(10)" json:"staff_id"`
	FullName  string  `gorm:"type:varchar(100);not null" json:"full_name"`
	Phone     *string `gorm:"type:varchar(15);unique" json:"phone"`
	Status    string  `gorm:"type:varchar(8)" json:"status"`
	ManagerID *string `gorm:"type:varchar(10)" json:"manager_id"`
}

func (Staff) TableName() string { return "staff" }

// Chef is the preparer extension: one row per staff member who cooks.
type Chef struct {
	StaffID    string `gorm:"primaryKey;type:varchar(10)" json:"staff_id"`
	Staff      Staff  `gorm:"foreignKey:StaffID;references:StaffID" json:"staff"`
	Experience int    `json:"experience"`
}

type Cashier struct {
	StaffID   string `gorm:"primaryKey;type:varchar(10)" json:"staff_id"`
	Staff     Staff  `gorm:"foreignKey:StaffID;references:StaffID" json:"staff"`
	Education string `gorm:"type:varchar(50)" json:"education"`
}

type Waiter struct {
	StaffID string `gorm:"primaryKey;type:varchar(10)" json:"staff_id"`
	Staff   Staff  `gorm:"foreignKey:StaffID;references:StaffID" json:"staff"`
	Fluency string `gorm:"type:varchar(50)" json:"fluency"`
}

// Supervision links a junior staff member to the senior overseeing them.
type Supervision struct {
	MinorStaffID string `gorm:"primaryKey;type:varchar(10);column:minor_staff_id" json:"minor_staff_id"`
	MajorStaffID string `gorm:"primaryKey;type:varchar(10);column:major_staff_id" json:"major_staff_id"`
}
