package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// GetPublicNoteHandler serves anonymous share-link reads. No auth runs on
// this route; the token is the whole credential. The response is the
// reduced projection without owner or collaborator information.
func GetPublicNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	token := c.Param("token")

	note, err := notesService.GetPublicNote(c, token)
	if err != nil {
		if err == usecase.ErrNoteNotFound {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.InternalError(c, "Failed to fetch note")
		return
	}

	utils.Success(c, dto.ToPublicNoteResponse(note))
}
