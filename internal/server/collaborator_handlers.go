package server

import (
	"vicharak/internal/models"
	"vicharak/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCollaborators handles GET /api/vichars/:id/collaborators
func (s *Server) GetCollaborators(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	vicharID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	collaborators, err := s.vicharService.ListCollaborators(c.Context(), vicharID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"collaborators": collaborators,
	})
}

// AddCollaborator handles POST /api/vichars/:id/collaborators
func (s *Server) AddCollaborator(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	vicharID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UserID uint  `json:"user_id"`
		RoleID *uint `json:"role_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	collaborator, err := s.vicharService.AddCollaborator(c.Context(), service.AddCollaboratorInput{
		ActorID:  actorID,
		VicharID: vicharID,
		UserID:   req.UserID,
		RoleID:   req.RoleID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(collaborator)
}

// UpdateCollaboratorRole handles PUT /api/vichars/:id/collaborators/:userId.
// A null role_id clears the collaborator's role.
func (s *Server) UpdateCollaboratorRole(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	vicharID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	var req struct {
		RoleID *uint `json:"role_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	collaborator, err := s.vicharService.UpdateCollaboratorRole(c.Context(), service.UpdateCollaboratorInput{
		ActorID:  actorID,
		VicharID: vicharID,
		UserID:   targetID,
		RoleID:   req.RoleID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(collaborator)
}

// RemoveCollaborator handles DELETE /api/vichars/:id/collaborators/:userId.
// Collaborators may remove themselves.
func (s *Server) RemoveCollaborator(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	vicharID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.vicharService.RemoveCollaborator(c.Context(), actorID, vicharID, targetID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
