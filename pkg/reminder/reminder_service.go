package reminder

import (
	"Shelf-Buddy-Backend/domain"
	"Shelf-Buddy-Backend/entities"
	"Shelf-Buddy-Backend/internal/utils/mailing"
	"Shelf-Buddy-Backend/pkg/shelflife"
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReminderService interface {
		CreateTrackedItem(ctx context.Context, req domain.CreateReminderRequest, userID string) (domain.ReminderResponse, error)
		ListUpcoming(ctx context.Context, userID string) ([]domain.ReminderResponse, error)
		Cancel(ctx context.Context, itemID string, userID string) error
		Sweep(ctx context.Context, asOf time.Time) (domain.SweepResult, error)
	}

	reminderService struct {
		reminderRepository ReminderRepository
		mailer             mailing.Mailer
		maxConcurrency     int
	}
)

func NewReminderService(reminderRepository ReminderRepository, mailer mailing.Mailer) ReminderService {
	return &reminderService{
		reminderRepository: reminderRepository,
		mailer:             mailer,
		maxConcurrency:     5,
	}
}

func (s *reminderService) CreateTrackedItem(ctx context.Context, req domain.CreateReminderRequest, userID string) (domain.ReminderResponse, error) {
	if !shelflife.IsValidStorageCondition(req.StorageCondition) {
		return domain.ReminderResponse{}, domain.ErrInvalidStorageCondition
	}

	var manufacturingDate *time.Time
	if req.ManufacturingDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ManufacturingDate)
		if err != nil {
			return domain.ReminderResponse{}, domain.ErrInvalidManufacturingDate
		}
		manufacturingDate = &parsed
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ReminderResponse{}, domain.ErrParseUUID
	}

	// The owner contact is resolved once here and never re-resolved; later
	// email changes do not redirect reminders already scheduled.
	ownerEmail, err := s.reminderRepository.GetUserEmail(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReminderResponse{}, domain.ErrOwnerNotFound
		}
		return domain.ReminderResponse{}, err
	}

	// Shelf life is snapshot at creation time, not recomputed if the
	// lookup tables change later.
	shelfLifeDays := shelflife.Estimate(req.ProductName, req.Category, req.StorageCondition, req.IsOpened)
	expiryDate, reminderDate := shelflife.Schedule(manufacturingDate, shelfLifeDays)

	item := &entities.TrackedItem{
		ID:                uuid.New(),
		UserID:            userUUID,
		OwnerEmail:        ownerEmail,
		ProductName:       req.ProductName,
		Category:          req.Category,
		StorageCondition:  req.StorageCondition,
		IsOpened:          req.IsOpened,
		ShelfLifeDays:     shelfLifeDays,
		ManufacturingDate: manufacturingDate,
		ExpiryDate:        expiryDate,
		ReminderDate:      reminderDate,
	}

	if err := s.reminderRepository.Create(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ReminderResponse{}, domain.ErrDuplicateTrackedItem
		}
		return domain.ReminderResponse{}, err
	}

	return toReminderResponse(item), nil
}

func (s *reminderService) ListUpcoming(ctx context.Context, userID string) ([]domain.ReminderResponse, error) {
	today := startOfDay(time.Now().UTC())

	items, err := s.reminderRepository.ListUpcoming(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	var response []domain.ReminderResponse
	for _, item := range items {
		response = append(response, toReminderResponse(item))
	}

	return response, nil
}

func (s *reminderService) Cancel(ctx context.Context, itemID string, userID string) error {
	item, err := s.reminderRepository.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTrackedItemNotFound
		}
		return err
	}

	if item.UserID.String() != userID {
		return domain.ErrUserNotAllowed
	}

	if err := s.reminderRepository.MarkCancelled(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTrackedItemNotFound
		}
		return err
	}

	// The cancellation is committed; the confirmation email is best-effort
	// and its failure must not surface as an error.
	if err := s.mailer.Send(
		item.OwnerEmail,
		cancellationSubject(item.ProductName),
		cancellationBody(item.OwnerEmail, item.ProductName, item.ExpiryDate),
	); err != nil {
		log.Printf("warning: cancellation notification for item %s not delivered: %v", itemID, err)
	}

	return nil
}

func (s *reminderService) Sweep(ctx context.Context, asOf time.Time) (domain.SweepResult, error) {
	due, err := s.reminderRepository.FindDue(ctx, asOf)
	if err != nil {
		return domain.SweepResult{}, err
	}

	var (
		result domain.SweepResult
		mu     sync.Mutex
		wg     sync.WaitGroup
		sem    = make(chan struct{}, s.maxConcurrency)
	)

	result.Attempted = len(due)

	for _, item := range due {
		wg.Add(1)
		sem <- struct{}{}

		go func(item *entities.TrackedItem) {
			defer wg.Done()
			defer func() { <-sem }()

			ok := s.deliverReminder(ctx, item)

			mu.Lock()
			if ok {
				result.Succeeded++
			} else {
				result.Failed++
			}
			mu.Unlock()
		}(item)
	}

	wg.Wait()
	return result, nil
}

// deliverReminder sends one reminder email and marks the row sent. Any
// failure is logged and reported back so the sweep can count it; the item
// stays due and the next sweep retries it.
func (s *reminderService) deliverReminder(ctx context.Context, item *entities.TrackedItem) bool {
	if item.OwnerEmail == "" || item.ExpiryDate == nil {
		log.Printf("skipping item %s: missing owner email or expiry date", item.ID)
		return false
	}

	if err := s.mailer.Send(
		item.OwnerEmail,
		reminderSubject(item.ProductName),
		reminderBody(item.ProductName, item.Category, *item.ExpiryDate),
	); err != nil {
		log.Printf("failed sending reminder for item %s: %v", item.ID, err)
		return false
	}

	if err := s.reminderRepository.MarkSent(ctx, item.ID.String()); err != nil {
		log.Printf("failed marking reminder as sent for item %s: %v", item.ID, err)
		return false
	}

	return true
}

func toReminderResponse(item *entities.TrackedItem) domain.ReminderResponse {
	return domain.ReminderResponse{
		ID:                item.ID.String(),
		ProductName:       item.ProductName,
		Category:          item.Category,
		StorageCondition:  item.StorageCondition,
		IsOpened:          item.IsOpened,
		ShelfLifeDays:     item.ShelfLifeDays,
		ManufacturingDate: item.ManufacturingDate,
		ExpiryDate:        item.ExpiryDate,
		ReminderDate:      item.ReminderDate,
		ReminderSent:      item.ReminderSent,
		Cancelled:         item.Cancelled,
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
