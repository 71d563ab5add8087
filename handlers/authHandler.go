package handlers

import (
	"net/http"

	"bitbucket.org/indofreight/freight_backend/models"
	"bitbucket.org/indofreight/freight_backend/utils"
	"github.com/gin-gonic/gin"
)

func Signin(c *gin.Context) {
	var input models.SigninInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := models.Signin(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func CreateUser(c *gin.Context) {
	var input models.NewUser
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := models.CreateUser(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "auth", "CreateUser", err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func ListUsers(c *gin.Context) {
	users, err := models.GetUsers(c.Request.Context())
	if err != nil {
		respondError(c, "auth", "ListUsers", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type toggleActiveUserInput struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func ToggleUser(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input toggleActiveUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := models.ToggleActiveUser(c.Request.Context(), id, *input.IsActive)
	if err != nil {
		respondError(c, "auth", "ToggleUser", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type changePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func ChangePassword(c *gin.Context) {
	var input changePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	userId, ok := utils.GetUserIdFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if err := models.ChangePassword(c.Request.Context(), userId, input.OldPassword, input.NewPassword); err != nil {
		respondError(c, "auth", "ChangePassword", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}
