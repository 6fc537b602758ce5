package reminder

import (
	"Shelf-Buddy-Backend/domain"
	"Shelf-Buddy-Backend/entities"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type (
	ReminderRepository interface {
		Create(ctx context.Context, item *entities.TrackedItem) error
		GetByID(ctx context.Context, id string) (*entities.TrackedItem, error)
		GetUserEmail(ctx context.Context, userID string) (string, error)

		// FindDue returns items whose reminder date has arrived and that are
		// neither sent nor cancelled, oldest due first.
		FindDue(ctx context.Context, asOf time.Time) ([]*entities.TrackedItem, error)

		// MarkSent flips reminder_sent on an unsent, uncancelled row. A row
		// that is missing, already sent or cancelled is left untouched.
		MarkSent(ctx context.Context, id string) error

		// MarkCancelled flips cancelled on an unsent row. The guard on
		// reminder_sent makes cancellation lose cleanly against a sweep that
		// already delivered.
		MarkCancelled(ctx context.Context, id string) error

		ListUpcoming(ctx context.Context, userID string, asOf time.Time) ([]*entities.TrackedItem, error)
	}

	reminderRepository struct {
		db *gorm.DB
	}
)

func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) Create(ctx context.Context, item *entities.TrackedItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *reminderRepository) GetByID(ctx context.Context, id string) (*entities.TrackedItem, error) {
	var item entities.TrackedItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *reminderRepository) GetUserEmail(ctx context.Context, userID string) (string, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return "", err
	}
	return user.Email, nil
}

func (r *reminderRepository) FindDue(ctx context.Context, asOf time.Time) ([]*entities.TrackedItem, error) {
	var items []*entities.TrackedItem

	if err := r.db.WithContext(ctx).
		Where("reminder_date IS NOT NULL AND reminder_date <= ? AND reminder_sent = ? AND cancelled = ?",
			asOf, false, false).
		Order("reminder_date asc").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *reminderRepository) MarkSent(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&entities.TrackedItem{}).
		Where("id = ? AND reminder_sent = ? AND cancelled = ?", id, false, false).
		Update("reminder_sent", true).Error
}

func (r *reminderRepository) MarkCancelled(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&entities.TrackedItem{}).
		Where("id = ? AND reminder_sent = ? AND cancelled = ?", id, false, false).
		Update("cancelled", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// The guard failed: report why.
	item, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return err
	}
	if item.ReminderSent {
		return domain.ErrReminderAlreadySent
	}
	// Already cancelled: the terminal state holds, nothing to do.
	return nil
}

func (r *reminderRepository) ListUpcoming(ctx context.Context, userID string, asOf time.Time) ([]*entities.TrackedItem, error) {
	var items []*entities.TrackedItem

	// Cancelled rows stay in the listing so the dashboard can show history.
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND reminder_date IS NOT NULL AND reminder_date >= ?", userID, asOf).
		Order("reminder_date asc").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}
