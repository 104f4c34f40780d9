package server

import (
	"socialnet/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /users
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} models.ErrorResponse
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := s.userService.ListUsers(ctx)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// CreateUser handles POST /users
// @Summary Create user
// @Description Username and email must both be unique.
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.CreateUserInput true "New user"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users [post]
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := s.userService.CreateUser(ctx, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser handles GET /users/:userId
// @Summary Get user
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{userId} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "userId")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := s.userService.GetUser(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PUT /users/:userId
// @Summary Update user
// @Description Omitted fields are left unchanged. A new username is copied onto the user's thoughts and reactions.
// @Tags users
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body service.UpdateUserInput true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/{userId} [put]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "userId")
	if err != nil {
		return nil
	}

	var req service.UpdateUserInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := s.userService.UpdateUser(ctx, id, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /users/:userId
// @Summary Delete user
// @Description Deletes the user, the thoughts it authored and its entry in other users' friend lists.
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} service.DeleteUserResult
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{userId} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "userId")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := s.userService.DeleteUser(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// AddFriend handles POST /users/:userId/friends/:friendId
// @Summary Add friend
// @Tags friends
// @Produce json
// @Param userId path string true "User ID"
// @Param friendId path string true "Friend user ID"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{userId}/friends/{friendId} [post]
func (s *Server) AddFriend(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return nil
	}
	friendID, err := parseID(c, "friendId")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := s.userService.AddFriend(ctx, userID, friendID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// RemoveFriend handles DELETE /users/:userId/friends/:friendId
// @Summary Remove friend
// @Tags friends
// @Produce json
// @Param userId path string true "User ID"
// @Param friendId path string true "Friend user ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{userId}/friends/{friendId} [delete]
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return nil
	}
	friendID, err := parseID(c, "friendId")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := s.userService.RemoveFriend(ctx, userID, friendID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}
