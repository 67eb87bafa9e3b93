package models

import "time"

// Customer is the single entity managed by the API.
// Password always holds a hash record, never plaintext, once persisted.
type Customer struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string     `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	FirstName string     `json:"firstName" gorm:"column:first_name;type:varchar(100);not null"`
	Surname   string     `json:"surname" gorm:"type:varchar(100);not null"`
	Password  string     `json:"-" gorm:"type:varchar(2000);not null"`
	Created   time.Time  `json:"created" gorm:"not null"`
	Updated   *time.Time `json:"updated,omitempty"`
}

// TableName pins the table name regardless of GORM's naming strategy.
func (Customer) TableName() string {
	return "customers"
}

// FullName joins first name and surname with a single space.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.Surname
}
