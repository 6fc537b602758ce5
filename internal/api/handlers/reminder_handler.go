package handlers

import (
	"Shelf-Buddy-Backend/domain"
	"Shelf-Buddy-Backend/internal/api/presenters"
	"Shelf-Buddy-Backend/pkg/reminder"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReminderHandler interface {
		CreateReminder(c *fiber.Ctx) error
		ListUpcoming(c *fiber.Ctx) error
		CancelReminder(c *fiber.Ctx) error
		RunSweep(c *fiber.Ctx) error
	}

	reminderHandler struct {
		reminderService reminder.ReminderService
		validator       *validator.Validate
	}
)

func NewReminderHandler(reminderService reminder.ReminderService, validator *validator.Validate) ReminderHandler {
	return &reminderHandler{
		reminderService: reminderService,
		validator:       validator,
	}
}

func (h *reminderHandler) CreateReminder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateReminderRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateReminder, err)
	}

	res, err := h.reminderService.CreateTrackedItem(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateReminder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateReminder)
}

func (h *reminderHandler) ListUpcoming(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	items, err := h.reminderService.ListUpcoming(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedListUpcoming, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"count": len(items),
	}, fiber.StatusOK, domain.MessageSuccessListUpcoming)
}

func (h *reminderHandler) CancelReminder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	if err := h.reminderService.Cancel(c.Context(), itemID, userID); err != nil {
		status := fiber.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrTrackedItemNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, domain.ErrUserNotAllowed):
			status = fiber.StatusForbidden
		case errors.Is(err, domain.ErrReminderAlreadySent):
			status = fiber.StatusConflict
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedCancelReminder, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelReminder)
}

// RunSweep is invoked by infrastructure on a schedule, not by end users.
func (h *reminderHandler) RunSweep(c *fiber.Ctx) error {
	result, err := h.reminderService.Sweep(c.Context(), time.Now().UTC())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedRunSweep, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessRunSweep)
}
