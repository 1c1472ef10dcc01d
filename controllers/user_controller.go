package controllers

import (
	"mobile-shop/models"
	"mobile-shop/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userSvc *services.UserService
}

func NewUserController() *UserController {
	return &UserController{userSvc: services.NewUserService()}
}

// GetAllUsers godoc
// @Summary Get all users
// @Description Get paginated list of users (Admin)
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /admin/users [get]
func (ctrl *UserController) GetAllUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	response, err := ctrl.userSvc.GetAllUsers(page, limit)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to get users"})
		return
	}

	c.JSON(200, response)
}

// GetUserByID godoc
// @Summary Get user by ID
// @Description Get one user with profile (Admin)
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id} [get]
func (ctrl *UserController) GetUserByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	user, err := ctrl.userSvc.GetUserByID(id)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "User retrieved", "data": user})
}

// UpdateUser godoc
// @Summary Update user
// @Description Update a user's account and profile (Admin)
// @Tags Admin - Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body models.UpdateUserRequest true "Update Request"
// @Success 200 {object} models.Response
// @Router /admin/users/{id} [patch]
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	user, err := ctrl.userSvc.UpdateUser(id, req)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "User updated", "data": user})
}

// DeleteUser godoc
// @Summary Delete user
// @Description Delete a user and their profile (Admin)
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response
// @Router /admin/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	userID := c.GetInt("user_id")

	if id == userID {
		c.JSON(400, gin.H{"success": false, "message": "Cannot delete your own account"})
		return
	}

	if err := ctrl.userSvc.DeleteUser(id); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "User deleted"})
}
