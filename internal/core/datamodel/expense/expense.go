package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the row shape of the expenses table. ID keeps insertion order.
type Expense struct {
	ID          int64           `gorm:"primaryKey"`
	Date        string          `gorm:"column:date;not null"`
	Amount      decimal.Decimal `gorm:"column:amount;not null"`
	Category    string          `gorm:"column:category;not null"`
	Description string          `gorm:"column:description;not null;default:''"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}
