package handler

import (
	"errors"

	"devskillshub/internal/delivery/http/dto"
	"devskillshub/internal/delivery/http/middleware"
	"devskillshub/internal/domain/skill"
	"devskillshub/internal/pkg/response"
	"devskillshub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

// Note is the single free-text note of the edit form; Notes, when present, wins.
type createSkillRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Proficiency int      `json:"proficiency"`
	Note        string   `json:"note"`
	Notes       []string `json:"notes"`
}

type updateSkillRequest struct {
	Name        *string   `json:"name"`
	Category    *string   `json:"category"`
	Proficiency *int      `json:"proficiency"`
	Note        *string   `json:"note"`
	Notes       *[]string `json:"notes"`
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

// RegisterRoutes mounts the skill routes; guard runs in front of every write.
func (h *SkillHandler) RegisterRoutes(r fiber.Router, guard fiber.Handler) {
	if r == nil || guard == nil {
		return
	}

	r.Get("/skills", h.List)
	r.Get("/skills/categories", h.Categories)
	r.Get("/skills/chart", h.Chart)
	r.Get("/skills/:id", h.Get)

	r.Post("/skills", guard, h.Create)
	r.Put("/skills/:id", guard, h.Update)
	r.Patch("/skills/:id", guard, h.Update)
	r.Delete("/skills/:id", guard, h.Delete)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	list, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SkillListResponse{
		Items:    dto.NewSkillResponses(list.Items),
		Degraded: list.Degraded,
	})
}

func (h *SkillHandler) Categories(c fiber.Ctx) error {
	list, err := h.uc.ListByCategory(c.Context())
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCategoryListResponse(list))
}

func (h *SkillHandler) Chart(c fiber.Ctx) error {
	chart, err := h.uc.Chart(c.Context())
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ChartResponse{Labels: chart.Labels, Data: chart.Data})
}

func (h *SkillHandler) Get(c fiber.Ctx) error {
	s, err := h.uc.GetSkill(c.Context(), c.Params("id"))
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillResponse(s))
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req createSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	notes := req.Notes
	if notes == nil && req.Note != "" {
		notes = []string{req.Note}
	}

	created, err := h.uc.AddSkill(c.Context(), skill.CreateInput{
		Name:        req.Name,
		Category:    req.Category,
		Proficiency: req.Proficiency,
		Notes:       notes,
	})
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skill created successfully", dto.NewSkillResponse(created))
}

func (h *SkillHandler) Update(c fiber.Ctx) error {
	var req updateSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := skill.UpdateInput{
		Name:        req.Name,
		Category:    req.Category,
		Proficiency: req.Proficiency,
		Notes:       req.Notes,
	}
	if in.Notes == nil && req.Note != nil {
		notes := []string{}
		if *req.Note != "" {
			notes = append(notes, *req.Note)
		}
		in.Notes = &notes
	}

	updated, err := h.uc.UpdateSkill(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill updated successfully", dto.NewSkillResponse(updated))
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	if err := h.uc.DeleteSkill(c.Context(), c.Params("id")); err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill deleted successfully", nil)
}

func mapSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidProficiencyLevel):
		return middleware.NewAppError(fiber.StatusBadRequest, "Proficiency must be between 1 and 10", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
