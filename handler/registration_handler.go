package handler

import (
	"main/model"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func RegistrationHandler(c *gin.Context, userService *usecase.UserService) {
	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	if err := userService.CreateUser(c, &user); err != nil {
		switch err {
		case usecase.ErrUsernameTaken:
			utils.Conflict(c, "username already exists")
		case usecase.ErrEmailTaken:
			utils.Conflict(c, "email already registered")
		default:
			utils.BadRequest(c, err.Error())
		}
		return
	}

	token, err := services.GenerateToken(user.UserID, user.Email)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "failed to generate refresh token")
		return
	}

	utils.Created(c, gin.H{
		"message": "user registered successfully",
		"token":   token,
		"refresh": refreshToken,
	})
}
