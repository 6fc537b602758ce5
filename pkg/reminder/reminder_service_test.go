package reminder

import (
	"Shelf-Buddy-Backend/domain"
	"Shelf-Buddy-Backend/entities"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRepository mirrors the store contract in memory. Its MarkSent and
// MarkCancelled use the same conditional guards as the SQL implementation
// so the race-related tests exercise the real semantics.
type fakeRepository struct {
	mu     sync.Mutex
	items  map[string]*entities.TrackedItem
	emails map[string]string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		items:  make(map[string]*entities.TrackedItem),
		emails: make(map[string]string),
	}
}

func (r *fakeRepository) Create(_ context.Context, item *entities.TrackedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID.String()]; ok {
		return gorm.ErrDuplicatedKey
	}
	clone := *item
	r.items[item.ID.String()] = &clone
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*entities.TrackedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *fakeRepository) GetUserEmail(_ context.Context, userID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email, ok := r.emails[userID]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return email, nil
}

func (r *fakeRepository) FindDue(_ context.Context, asOf time.Time) ([]*entities.TrackedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []*entities.TrackedItem
	for _, item := range r.items {
		if item.ReminderDate == nil || item.ReminderSent || item.Cancelled {
			continue
		}
		if item.ReminderDate.After(asOf) {
			continue
		}
		clone := *item
		due = append(due, &clone)
	}
	for i := 0; i < len(due); i++ {
		for j := i + 1; j < len(due); j++ {
			if due[j].ReminderDate.Before(*due[i].ReminderDate) {
				due[i], due[j] = due[j], due[i]
			}
		}
	}
	return due, nil
}

func (r *fakeRepository) MarkSent(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.ReminderSent || item.Cancelled {
		return nil
	}
	item.ReminderSent = true
	return nil
}

func (r *fakeRepository) MarkCancelled(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if item.ReminderSent {
		return domain.ErrReminderAlreadySent
	}
	item.Cancelled = true
	return nil
}

func (r *fakeRepository) ListUpcoming(_ context.Context, userID string, asOf time.Time) ([]*entities.TrackedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*entities.TrackedItem
	for _, item := range r.items {
		if item.UserID.String() != userID || item.ReminderDate == nil {
			continue
		}
		if item.ReminderDate.Before(asOf) {
			continue
		}
		clone := *item
		items = append(items, &clone)
	}
	return items, nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	failFor map[string]error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: make(map[string]error)}
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if to == "" {
		return domain.ErrEmptyRecipient
	}
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *fakeMailer) sentTo(to string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sent {
		if s.To == to {
			n++
		}
	}
	return n
}

func setup() (*fakeRepository, *fakeMailer, ReminderService, string) {
	repo := newFakeRepository()
	mailer := newFakeMailer()
	service := NewReminderService(repo, mailer)

	userID := uuid.New().String()
	repo.emails[userID] = "owner@example.com"
	return repo, mailer, service, userID
}

func seedDueItem(repo *fakeRepository, userID, email, product, category string, reminderDate time.Time) *entities.TrackedItem {
	expiry := reminderDate.AddDate(0, 0, 2)
	item := &entities.TrackedItem{
		ID:           uuid.New(),
		UserID:       uuid.MustParse(userID),
		OwnerEmail:   email,
		ProductName:  product,
		Category:     category,
		ExpiryDate:   &expiry,
		ReminderDate: &reminderDate,
	}
	repo.items[item.ID.String()] = item
	return item
}

func TestCreateTrackedItemWithManufacturingDate(t *testing.T) {
	repo, _, service, userID := setup()

	res, err := service.CreateTrackedItem(context.Background(), domain.CreateReminderRequest{
		ProductName:       "Homemade Kheer",
		Category:          "dairy_products",
		ManufacturingDate: "2024-01-01",
		StorageCondition:  "refrigerated",
	}, userID)
	require.NoError(t, err)

	assert.Equal(t, 7, res.ShelfLifeDays)
	require.NotNil(t, res.ExpiryDate)
	require.NotNil(t, res.ReminderDate)
	assert.Equal(t, "2024-01-08", res.ExpiryDate.Format("2006-01-02"))
	assert.Equal(t, "2024-01-06", res.ReminderDate.Format("2006-01-02"))
	assert.False(t, res.ReminderSent)
	assert.False(t, res.Cancelled)

	stored, err := repo.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", stored.OwnerEmail)
}

func TestCreateTrackedItemWithoutManufacturingDate(t *testing.T) {
	_, _, service, userID := setup()

	res, err := service.CreateTrackedItem(context.Background(), domain.CreateReminderRequest{
		ProductName:      "Bread",
		Category:         "baked_goods",
		StorageCondition: "room",
	}, userID)
	require.NoError(t, err)

	assert.Nil(t, res.ExpiryDate)
	assert.Nil(t, res.ReminderDate)
	assert.Equal(t, 5, res.ShelfLifeDays) // Bread, room, closed
}

func TestCreateTrackedItemValidation(t *testing.T) {
	_, _, service, userID := setup()

	_, err := service.CreateTrackedItem(context.Background(), domain.CreateReminderRequest{
		ProductName:      "Milk",
		Category:         "dairy_products",
		StorageCondition: "cellar",
	}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidStorageCondition)

	_, err = service.CreateTrackedItem(context.Background(), domain.CreateReminderRequest{
		ProductName:       "Milk",
		Category:          "dairy_products",
		ManufacturingDate: "01/02/2024",
		StorageCondition:  "room",
	}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidManufacturingDate)

	_, err = service.CreateTrackedItem(context.Background(), domain.CreateReminderRequest{
		ProductName:      "Milk",
		Category:         "dairy_products",
		StorageCondition: "room",
	}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrOwnerNotFound)
}

func TestSweepPartialFailure(t *testing.T) {
	repo, mailer, service, userID := setup()
	today := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	good := seedDueItem(repo, userID, "good@example.com", "Milk (packet)", "dairy_products", today.AddDate(0, 0, -1))
	bad := seedDueItem(repo, userID, "bad@example.com", "Bread", "baked_goods", today)
	mailer.failFor["bad@example.com"] = errors.New("smtp: connection refused")

	result, err := service.Sweep(context.Background(), today)
	require.NoError(t, err)

	assert.Equal(t, domain.SweepResult{Attempted: 2, Succeeded: 1, Failed: 1}, result)

	goodStored, _ := repo.GetByID(context.Background(), good.ID.String())
	badStored, _ := repo.GetByID(context.Background(), bad.ID.String())
	assert.True(t, goodStored.ReminderSent)
	assert.False(t, badStored.ReminderSent, "failed delivery must stay due for the next sweep")
}

func TestSweepIdempotentAcrossRuns(t *testing.T) {
	repo, mailer, service, userID := setup()
	today := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	seedDueItem(repo, userID, "owner@example.com", "Milk (packet)", "dairy_products", today)

	first, err := service.Sweep(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, domain.SweepResult{Attempted: 1, Succeeded: 1}, first)

	// Second run of the same day finds nothing due: no duplicate email.
	second, err := service.Sweep(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, domain.SweepResult{}, second)
	assert.Equal(t, 1, mailer.sentTo("owner@example.com"))
}

func TestSweepSkipsCancelledAndSent(t *testing.T) {
	repo, _, service, userID := setup()
	today := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	cancelled := seedDueItem(repo, userID, "owner@example.com", "Milk (packet)", "dairy_products", today)
	cancelled.Cancelled = true
	sent := seedDueItem(repo, userID, "owner@example.com", "Bread", "baked_goods", today)
	sent.ReminderSent = true
	future := seedDueItem(repo, userID, "owner@example.com", "Biscuits", "snacks", today.AddDate(0, 0, 3))
	_ = future

	result, err := service.Sweep(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, domain.SweepResult{}, result)
}

func TestSweepReminderContent(t *testing.T) {
	repo, mailer, service, userID := setup()
	today := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	seedDueItem(repo, userID, "owner@example.com", "Milk (packet)", "dairy_products", today)

	_, err := service.Sweep(context.Background(), today)
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].Subject, "Milk (packet)")
	assert.Contains(t, mailer.sent[0].Body, "mac and cheese")
	assert.Contains(t, mailer.sent[0].Body, "2024-03-12") // expiry date
}

func TestCancelReminder(t *testing.T) {
	repo, mailer, service, userID := setup()
	today := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	item := seedDueItem(repo, userID, "owner@example.com", "Milk (packet)", "dairy_products", today)

	err := service.Cancel(context.Background(), item.ID.String(), userID)
	require.NoError(t, err)

	stored, _ := repo.GetByID(context.Background(), item.ID.String())
	assert.True(t, stored.Cancelled)
	assert.False(t, stored.ReminderSent)
	assert.Equal(t, 1, mailer.sentTo("owner@example.com"))
	assert.Contains(t, mailer.sent[0].Subject, "Reminder Cancelled")
}

func TestCancelIsBestEffortOnNotification(t *testing.T) {
	repo, mailer, service, userID := setup()
	today := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	item := seedDueItem(repo, userID, "owner@example.com", "Milk (packet)", "dairy_products", today)
	mailer.failFor["owner@example.com"] = errors.New("smtp: timeout")

	err := service.Cancel(context.Background(), item.ID.String(), userID)
	require.NoError(t, err, "confirmation failure must not undo the cancellation")

	stored, _ := repo.GetByID(context.Background(), item.ID.String())
	assert.True(t, stored.Cancelled)
}

func TestCancelErrors(t *testing.T) {
	repo, _, service, userID := setup()
	today := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	err := service.Cancel(context.Background(), uuid.New().String(), userID)
	assert.ErrorIs(t, err, domain.ErrTrackedItemNotFound)

	item := seedDueItem(repo, userID, "owner@example.com", "Milk (packet)", "dairy_products", today)
	err = service.Cancel(context.Background(), item.ID.String(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	item.ReminderSent = true
	err = service.Cancel(context.Background(), item.ID.String(), userID)
	assert.ErrorIs(t, err, domain.ErrReminderAlreadySent)
}

func TestCancelSweepRace(t *testing.T) {
	// Cancellation racing a sweep must end in exactly one of the two
	// terminal states, never both.
	for i := 0; i < 50; i++ {
		repo, _, service, userID := setup()
		today := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
		item := seedDueItem(repo, userID, "owner@example.com", "Milk (packet)", "dairy_products", today)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = service.Sweep(context.Background(), today)
		}()
		go func() {
			defer wg.Done()
			_ = service.Cancel(context.Background(), item.ID.String(), userID)
		}()
		wg.Wait()

		stored, err := repo.GetByID(context.Background(), item.ID.String())
		require.NoError(t, err)
		assert.False(t, stored.ReminderSent && stored.Cancelled,
			"sent and cancelled must never both hold")
		assert.True(t, stored.ReminderSent || stored.Cancelled,
			"one of the two operations must have won")
	}
}

func TestListUpcomingIncludesCancelled(t *testing.T) {
	repo, _, service, userID := setup()
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)

	active := seedDueItem(repo, userID, "owner@example.com", "Milk (packet)", "dairy_products", tomorrow)
	cancelled := seedDueItem(repo, userID, "owner@example.com", "Bread", "baked_goods", tomorrow.AddDate(0, 0, 1))
	cancelled.Cancelled = true
	past := seedDueItem(repo, userID, "owner@example.com", "Biscuits", "snacks", time.Now().UTC().AddDate(0, 0, -5))
	_ = past

	// Another user's item must not leak into the listing.
	otherUser := uuid.New().String()
	repo.emails[otherUser] = "other@example.com"
	seedDueItem(repo, otherUser, "other@example.com", "Paneer", "dairy_products", tomorrow)

	items, err := service.ListUpcoming(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, items, 2)
	ids := []string{items[0].ID, items[1].ID}
	assert.Contains(t, ids, active.ID.String())
	assert.Contains(t, ids, cancelled.ID.String())
}
