package handler

import (
	"errors"

	"devskillshub/internal/delivery/http/middleware"
	"devskillshub/internal/pkg/response"
	"devskillshub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const projectsFailedMessage = "Failed to load projects. Please check the username and try again."

type ProjectHandler struct {
	uc usecase.ProjectUsecase
}

func NewProjectHandler(uc usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

func (h *ProjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/projects")
	grp.Get("/:username", h.List)
	grp.Get("/:username/:repo", h.Get)
}

func (h *ProjectHandler) List(c fiber.Ctx) error {
	repos, err := h.uc.ListProjects(c.Context(), c.Params("username"))
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, repos)
}

func (h *ProjectHandler) Get(c fiber.Ctx) error {
	repo, err := h.uc.GetProject(c.Context(), c.Params("username"), c.Params("repo"))
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, repo)
}

func mapProjectUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid GitHub username", nil, err)
	case errors.Is(err, usecase.ErrProjectsNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, projectsFailedMessage, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusBadGateway, projectsFailedMessage, nil, err)
	}
}
