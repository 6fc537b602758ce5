package entities

import (
	"time"

	"github.com/google/uuid"
)

type TrackedItem struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID            uuid.UUID  `json:"user_id"`
	OwnerEmail        string     `json:"owner_email"`
	ProductName       string     `json:"product_name"`
	Category          string     `json:"category"`
	StorageCondition  string     `json:"storage_condition"` // "room", "refrigerated", "frozen"
	IsOpened          bool       `json:"is_opened"`
	ShelfLifeDays     int        `json:"shelf_life_days"`
	ManufacturingDate *time.Time `json:"manufacturing_date,omitempty"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	ReminderDate      *time.Time `json:"reminder_date,omitempty"`
	ReminderSent      bool       `json:"reminder_sent"`
	Cancelled         bool       `json:"cancelled"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
