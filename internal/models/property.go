package models

import "time"

// Property is a listing owned by a single user and linked to zero or more
// RealEstates. The association is an unordered set; replacing it is
// all-or-nothing.
type Property struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"type:varchar(255)"`
	Address     string       `json:"address" gorm:"type:varchar(255)"`
	Description string       `json:"description" gorm:"type:varchar(255)"`
	Features    string       `json:"features" gorm:"type:varchar(255)"`
	Status      bool         `json:"status"`
	Type        string       `json:"type" gorm:"type:varchar(255)"`
	Finality    string       `json:"finality" gorm:"type:varchar(255)"`
	UserID      uint         `json:"-" gorm:"index;not null"`
	RealEstates []RealEstate `json:"real_estates" gorm:"many2many:property_real_estates;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time    `json:"-"`
	UpdatedAt   time.Time    `json:"-"`
}

// RealEstateIDs returns the ids of the associated real estates, never nil.
func (p *Property) RealEstateIDs() []uint {
	ids := make([]uint, 0, len(p.RealEstates))
	for _, re := range p.RealEstates {
		ids = append(ids, re.ID)
	}
	return ids
}
