package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateReminder = "tracked item created successfully"
	MessageSuccessListUpcoming   = "upcoming reminders retrieved successfully"
	MessageSuccessCancelReminder = "reminder cancelled successfully"
	MessageSuccessRunSweep       = "reminder sweep completed"

	MessageFailedCreateReminder = "failed to create tracked item"
	MessageFailedListUpcoming   = "failed to retrieve upcoming reminders"
	MessageFailedCancelReminder = "failed to cancel reminder"
	MessageFailedRunSweep       = "failed to run reminder sweep"

	ErrTrackedItemNotFound       = errors.New("tracked item not found")
	ErrDuplicateTrackedItem      = errors.New("tracked item already exists")
	ErrInvalidStorageCondition   = errors.New("storage condition must be room, refrigerated or frozen")
	ErrInvalidManufacturingDate  = errors.New("invalid manufacturing date")
	ErrManufacturingDateRequired = errors.New("manufacturing date required to schedule a reminder")
	ErrEmptyRecipient            = errors.New("recipient email is empty")
	ErrOwnerNotFound             = errors.New("owner account not found")
	ErrReminderAlreadySent       = errors.New("reminder already sent, cannot cancel")
	ErrDeliveryFailed            = errors.New("reminder delivery failed")
)

type (
	CreateReminderRequest struct {
		ProductName       string `json:"product_name" validate:"required"`
		Category          string `json:"category" validate:"required"`
		ManufacturingDate string `json:"manufacturing_date" validate:"omitempty"`
		StorageCondition  string `json:"storage_condition" validate:"required,oneof=room refrigerated frozen"`
		IsOpened          bool   `json:"is_opened"`
	}

	ReminderResponse struct {
		ID                string     `json:"id"`
		ProductName       string     `json:"product_name"`
		Category          string     `json:"category"`
		StorageCondition  string     `json:"storage_condition"`
		IsOpened          bool       `json:"is_opened"`
		ShelfLifeDays     int        `json:"shelf_life_days"`
		ManufacturingDate *time.Time `json:"manufacturing_date,omitempty"`
		ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
		ReminderDate      *time.Time `json:"reminder_date,omitempty"`
		ReminderSent      bool       `json:"reminder_sent"`
		Cancelled         bool       `json:"cancelled"`
	}

	SweepResult struct {
		Attempted int `json:"attempted"`
		Succeeded int `json:"succeeded"`
		Failed    int `json:"failed"`
	}
)
