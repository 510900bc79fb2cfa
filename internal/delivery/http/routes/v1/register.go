package v1

import (
	"devskillshub/internal/delivery/http/handler"
	"devskillshub/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Skill   *handler.SkillHandler
	Project *handler.ProjectHandler
	Contact *handler.ContactHandler
	Auth    *handler.AuthHandler
	AuthMw  *middleware.AuthMiddleware
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	guard := h.AuthMw.Middleware()

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r)
	}
	if h.Skill != nil {
		h.Skill.RegisterRoutes(r, guard)
	}
	if h.Project != nil {
		h.Project.RegisterRoutes(r)
	}
	if h.Contact != nil {
		h.Contact.RegisterRoutes(r, h.AuthMw.OwnerOnly())
	}
}
