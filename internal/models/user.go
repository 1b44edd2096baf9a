package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MinDataSharingAge is the youngest age allowed to opt in to data sharing.
const MinDataSharingAge = 15

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username        string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Password        string    `gorm:"not null" json:"-"`
	Age             int       `gorm:"not null" json:"age"`
	CanBeContacted  bool      `gorm:"not null;default:false" json:"can_be_contacted"`
	CanDataBeShared bool      `gorm:"not null;default:false" json:"can_data_be_shared"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ConsentAllowed reports whether the data-sharing flag is compatible with the user's age.
func (u *User) ConsentAllowed() bool {
	return !u.CanDataBeShared || u.Age >= MinDataSharingAge
}
