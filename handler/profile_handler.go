package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetUserProfileHandler(c *gin.Context, userService *usecase.UserService) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	user, err := userService.UsersRepo.FindUser(c, userID)
	if err != nil {
		utils.InternalError(c, "Could not fetch user details")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	utils.Success(c, dto.ToUserProfileResponse(user))
}
