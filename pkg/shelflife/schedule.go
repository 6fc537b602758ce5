package shelflife

import "time"

// ReminderLeadDays is how many days before expiry the reminder fires.
const ReminderLeadDays = 2

// Schedule derives the expiry and reminder dates from a manufacturing date
// and a shelf life in whole days. Both results are nil when the
// manufacturing date is unknown; no reminder can be scheduled in that case.
func Schedule(manufacturingDate *time.Time, shelfLifeDays int) (expiryDate, reminderDate *time.Time) {
	if manufacturingDate == nil {
		return nil, nil
	}
	expiry := manufacturingDate.AddDate(0, 0, shelfLifeDays)
	reminder := expiry.AddDate(0, 0, -ReminderLeadDays)
	return &expiry, &reminder
}
