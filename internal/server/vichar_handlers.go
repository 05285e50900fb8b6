package server

import (
	"vicharak/internal/models"
	"vicharak/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetVichars handles GET /api/vichars. It lists vichars the caller owns or
// collaborates on, newest first, with optional title search.
func (s *Server) GetVichars(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, defaultVicharLimit)

	vichars, err := s.vicharService.List(c.Context(), service.ListVicharsInput{
		UserID: userID,
		Search: c.Query("search"),
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"vichars": vichars,
		"limit":   p.Limit,
		"offset":  p.Offset,
	})
}

// CreateVichar handles POST /api/vichars
func (s *Server) CreateVichar(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	vichar, err := s.vicharService.Create(c.Context(), service.CreateVicharInput{
		UserID: userID,
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(vichar)
}

// GetDeletedVichars handles GET /api/vichars/deleted. Only the caller's own
// soft-deleted vichars are returned.
func (s *Server) GetDeletedVichars(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, defaultVicharLimit)

	vichars, err := s.vicharService.ListDeleted(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"vichars": vichars,
		"limit":   p.Limit,
		"offset":  p.Offset,
	})
}

// GetVichar handles GET /api/vichars/:id
func (s *Server) GetVichar(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	vicharID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	vichar, err := s.vicharService.Get(c.Context(), vicharID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(vichar)
}

// UpdateVichar handles PUT /api/vichars/:id. Fields absent from the body are
// left unchanged.
func (s *Server) UpdateVichar(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	vicharID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title *string `json:"title"`
		Body  *string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	vichar, err := s.vicharService.Update(c.Context(), service.UpdateVicharInput{
		UserID:   userID,
		VicharID: vicharID,
		Title:    req.Title,
		Body:     req.Body,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(vichar)
}

// DeleteVichar handles DELETE /api/vichars/:id (soft delete)
func (s *Server) DeleteVichar(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	vicharID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.vicharService.SoftDelete(c.Context(), vicharID, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RestoreVichar handles POST /api/vichars/:id/restore
func (s *Server) RestoreVichar(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	vicharID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	vichar, err := s.vicharService.Restore(c.Context(), vicharID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(vichar)
}

// DeleteVicharPermanently handles DELETE /api/vichars/:id/permanent. Only an
// already soft-deleted vichar can be permanently removed.
func (s *Server) DeleteVicharPermanently(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	vicharID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.vicharService.DeletePermanently(c.Context(), vicharID, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
