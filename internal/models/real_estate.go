package models

import "time"

// RealEstate is an agency owned by a single user. Properties reference
// agencies through the property_real_estates join table.
type RealEstate struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255)" validate:"required,max=255"`
	Address   string    `json:"address" gorm:"type:varchar(255)" validate:"required,max=255"`
	UserID    uint      `json:"-" gorm:"index;not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
