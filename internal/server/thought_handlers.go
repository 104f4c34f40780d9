package server

import (
	"socialnet/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetThoughts handles GET /thoughts
// @Summary List thoughts
// @Tags thoughts
// @Produce json
// @Success 200 {array} models.Thought
// @Failure 500 {object} models.ErrorResponse
// @Router /thoughts [get]
func (s *Server) GetThoughts(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	thoughts, err := s.thoughtService.ListThoughts(ctx)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(thoughts)
}

// CreateThought handles POST /thoughts
// @Summary Create thought
// @Description The thought is linked to the user matching both userId and username. If that fails the thought is still created and the response carries a warning.
// @Tags thoughts
// @Accept json
// @Produce json
// @Param request body service.CreateThoughtInput true "New thought"
// @Success 201 {object} models.Thought
// @Failure 400 {object} models.ErrorResponse
// @Router /thoughts [post]
func (s *Server) CreateThought(c *fiber.Ctx) error {
	var req service.CreateThoughtInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	thought, err := s.thoughtService.CreateThought(ctx, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(thought)
}

// GetThought handles GET /thoughts/:thoughtId
// @Summary Get thought
// @Tags thoughts
// @Produce json
// @Param thoughtId path string true "Thought ID"
// @Success 200 {object} models.Thought
// @Failure 404 {object} models.ErrorResponse
// @Router /thoughts/{thoughtId} [get]
func (s *Server) GetThought(c *fiber.Ctx) error {
	id, err := parseID(c, "thoughtId")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	thought, err := s.thoughtService.GetThought(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(thought)
}

// UpdateThought handles PUT /thoughts/:thoughtId
// @Summary Update thought text
// @Tags thoughts
// @Accept json
// @Produce json
// @Param thoughtId path string true "Thought ID"
// @Param request body service.UpdateThoughtInput true "New text"
// @Success 200 {object} models.Thought
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /thoughts/{thoughtId} [put]
func (s *Server) UpdateThought(c *fiber.Ctx) error {
	id, err := parseID(c, "thoughtId")
	if err != nil {
		return nil
	}

	var req service.UpdateThoughtInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	thought, err := s.thoughtService.UpdateThought(ctx, id, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(thought)
}

// DeleteThought handles DELETE /thoughts/:thoughtId
// @Summary Delete thought
// @Description Also removes the thought id from every user's thoughts list.
// @Tags thoughts
// @Produce json
// @Param thoughtId path string true "Thought ID"
// @Success 200 {object} service.DeleteThoughtResult
// @Failure 404 {object} models.ErrorResponse
// @Router /thoughts/{thoughtId} [delete]
func (s *Server) DeleteThought(c *fiber.Ctx) error {
	id, err := parseID(c, "thoughtId")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := s.thoughtService.DeleteThought(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// AddReaction handles POST /thoughts/:thoughtId/reactions
// @Summary Add reaction
// @Description The reaction id is generated by the server.
// @Tags reactions
// @Accept json
// @Produce json
// @Param thoughtId path string true "Thought ID"
// @Param request body service.AddReactionInput true "Reaction"
// @Success 201 {object} models.Thought
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /thoughts/{thoughtId}/reactions [post]
func (s *Server) AddReaction(c *fiber.Ctx) error {
	id, err := parseID(c, "thoughtId")
	if err != nil {
		return nil
	}

	var req service.AddReactionInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	thought, err := s.thoughtService.AddReaction(ctx, id, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(thought)
}

// RemoveReaction handles DELETE /thoughts/:thoughtId/reactions/:reactionId
// @Summary Remove reaction
// @Tags reactions
// @Produce json
// @Param thoughtId path string true "Thought ID"
// @Param reactionId path string true "Reaction ID"
// @Success 200 {object} models.Thought
// @Failure 404 {object} models.ErrorResponse
// @Router /thoughts/{thoughtId}/reactions/{reactionId} [delete]
func (s *Server) RemoveReaction(c *fiber.Ctx) error {
	thoughtID, err := parseID(c, "thoughtId")
	if err != nil {
		return nil
	}
	reactionID, err := parseID(c, "reactionId")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	thought, err := s.thoughtService.RemoveReaction(ctx, thoughtID, reactionID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(thought)
}
