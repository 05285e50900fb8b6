package server

import (
	"vicharak/internal/models"
	"vicharak/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetRoles handles GET /api/roles with optional name search and pagination.
func (s *Server) GetRoles(c *fiber.Ctx) error {
	p := parsePagination(c, 10)

	roles, total, err := s.roleService.List(c.Context(), service.ListRolesInput{
		Search: c.Query("search"),
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"roles":  roles,
		"total":  total,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetRole handles GET /api/roles/:id
func (s *Server) GetRole(c *fiber.Ctx) error {
	roleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	role, err := s.roleService.Get(c.Context(), roleID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(role)
}

// CreateRole handles POST /api/roles (admin only)
func (s *Server) CreateRole(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name        string   `json:"name"`
		Permissions []string `json:"permissions"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	role, err := s.roleService.Create(c.Context(), service.CreateRoleInput{
		ActorID:     userID,
		Name:        req.Name,
		Permissions: req.Permissions,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(role)
}

// UpdateRole handles PUT /api/roles/:id (admin only). A permissions field
// replaces the role's permission set wholesale.
func (s *Server) UpdateRole(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	roleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        *string   `json:"name"`
		Permissions *[]string `json:"permissions"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	role, err := s.roleService.Update(c.Context(), service.UpdateRoleInput{
		ActorID:     userID,
		RoleID:      roleID,
		Name:        req.Name,
		Permissions: req.Permissions,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(role)
}

// DeleteRole handles DELETE /api/roles/:id (admin only)
func (s *Server) DeleteRole(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	roleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.roleService.Delete(c.Context(), userID, roleID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
