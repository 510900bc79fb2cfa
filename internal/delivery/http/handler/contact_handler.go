package handler

import (
	"errors"

	"devskillshub/internal/delivery/http/dto"
	"devskillshub/internal/delivery/http/middleware"
	"devskillshub/internal/pkg/response"
	"devskillshub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ContactHandler struct {
	uc usecase.ContactUsecase
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func NewContactHandler(uc usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// RegisterRoutes mounts the public submit route and the inbox behind ownerOnly, which
// must reject requests when owner auth is not configured.
func (h *ContactHandler) RegisterRoutes(r fiber.Router, ownerOnly fiber.Handler) {
	if r == nil || ownerOnly == nil {
		return
	}

	r.Post("/contact", h.Submit)
	r.Get("/contact/messages", ownerOnly, h.List)
}

func (h *ContactHandler) Submit(c fiber.Ctx) error {
	var req contactRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	msg, err := h.uc.Submit(c.Context(), usecase.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		var fe *usecase.ContactFieldError
		if errors.As(err, &fe) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid contact form", fe.Fields, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusCreated, "Message sent successfully", dto.NewContactMessageResponse(msg))
}

func (h *ContactHandler) List(c fiber.Ctx) error {
	msgs, err := h.uc.ListMessages(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	res := make([]dto.ContactMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, dto.NewContactMessageResponse(m))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
