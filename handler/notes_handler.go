package handler

import (
	"strconv"

	"main/dto"
	"main/middleware"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func principalFromContext(c *gin.Context) usecase.Principal {
	return usecase.Principal{
		UserID: c.GetString("user_id"),
		Email:  c.GetString("email"),
	}
}

// noteIDParam validates the :id path segment before anything touches the
// store; malformed ids are a 400, not a lookup.
func noteIDParam(c *gin.Context) (string, bool) {
	noteID := c.Param("id")
	if !utils.ValidateObjectID(noteID) {
		utils.BadRequest(c, "Invalid note id")
		return "", false
	}
	return noteID, true
}

func parseBoolFilter(c *gin.Context, name string) *bool {
	switch c.Query(name) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

func searchOptionsFromQuery(c *gin.Context) usecase.NoteSearchOptions {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if pageSize > 100 {
		pageSize = 100
	}

	return usecase.NoteSearchOptions{
		Query:    c.Query("q"),
		Tags:     c.QueryArray("tags"),
		Archived: parseBoolFilter(c, "archived"),
		Pinned:   parseBoolFilter(c, "pinned"),
		Page:     page,
		PageSize: pageSize,
	}
}

func GetUserNotesHandler(c *gin.Context, notesService *usecase.NotesService, baseURL string) {
	opts := searchOptionsFromQuery(c)

	notes, total, err := notesService.ListNotes(c, principalFromContext(c), opts)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, dto.NewNotesPageResponse(notes, total, opts.Page, opts.PageSize, baseURL))
}

func SearchNotesHandler(c *gin.Context, notesService *usecase.NotesService, baseURL string) {
	opts := searchOptionsFromQuery(c)

	notes, total, err := notesService.SearchNotes(c, principalFromContext(c), opts)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, dto.NewNotesPageResponse(notes, total, opts.Page, opts.PageSize, baseURL))
}

func GetNoteHandler(c *gin.Context, notesService *usecase.NotesService, baseURL string) {
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	note, err := notesService.GetNote(c, principalFromContext(c), noteID)
	if err != nil {
		if err == usecase.ErrNoteNotFound {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.InternalError(c, "Failed to fetch note")
		return
	}

	utils.Success(c, dto.ToNoteResponse(note, baseURL))
}

func CreateNoteHandler(c *gin.Context, notesService *usecase.NotesService, baseURL string) {
	var note model.Note
	if err := c.ShouldBindJSON(&note); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if err := notesService.CreateNote(c, principalFromContext(c), &note); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	middleware.TrackNoteOperation("create")
	utils.Created(c, dto.ToNoteResponse(&note, baseURL))
}

func UpdateNoteHandler(c *gin.Context, notesService *usecase.NotesService, baseURL string) {
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	var updates model.Note
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	note, err := notesService.UpdateNote(c, principalFromContext(c), noteID, &updates)
	if err != nil {
		if err == usecase.ErrNoteNotFound {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	middleware.TrackNoteOperation("update")
	utils.Success(c, dto.ToNoteResponse(note, baseURL))
}

func DeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	if err := notesService.DeleteNote(c, principalFromContext(c), noteID); err != nil {
		if err == usecase.ErrNoteNotFound {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.InternalError(c, "Failed to delete note")
		return
	}

	middleware.TrackNoteOperation("delete")
	utils.Success(c, gin.H{"message": "Note deleted successfully"})
}

func TogglePinHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	if err := notesService.TogglePin(c, principalFromContext(c), noteID); err != nil {
		if err == usecase.ErrNoteNotFound {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.InternalError(c, "Failed to toggle pin")
		return
	}

	utils.Success(c, gin.H{"message": "Note pin status toggled successfully"})
}

func ToggleArchiveHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	if err := notesService.ToggleArchive(c, principalFromContext(c), noteID); err != nil {
		if err == usecase.ErrNoteNotFound {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.InternalError(c, "Failed to toggle archive")
		return
	}

	utils.Success(c, gin.H{"message": "Note archive status toggled successfully"})
}

func AddCollaboratorHandler(c *gin.Context, notesService *usecase.NotesService, baseURL string) {
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	note, err := notesService.AddCollaborator(c, principalFromContext(c), noteID, req.Email)
	if err != nil {
		if err == usecase.ErrNoteNotFound {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, dto.ToNoteResponse(note, baseURL))
}

func RemoveCollaboratorHandler(c *gin.Context, notesService *usecase.NotesService, baseURL string) {
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	note, err := notesService.RemoveCollaborator(c, principalFromContext(c), noteID, req.Email)
	if err != nil {
		if err == usecase.ErrNoteNotFound {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, dto.ToNoteResponse(note, baseURL))
}

func ShareNoteHandler(c *gin.Context, notesService *usecase.NotesService, baseURL string) {
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	note, err := notesService.SetPublic(c, principalFromContext(c), noteID, true)
	if err != nil {
		if err == usecase.ErrNoteNotFound {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.InternalError(c, "Failed to share note")
		return
	}

	middleware.TrackNoteOperation("share")
	utils.Success(c, dto.ToNoteResponse(note, baseURL))
}

func UnshareNoteHandler(c *gin.Context, notesService *usecase.NotesService, baseURL string) {
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	note, err := notesService.SetPublic(c, principalFromContext(c), noteID, false)
	if err != nil {
		if err == usecase.ErrNoteNotFound {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.InternalError(c, "Failed to unshare note")
		return
	}

	utils.Success(c, dto.ToNoteResponse(note, baseURL))
}

func RegenerateShareTokenHandler(c *gin.Context, notesService *usecase.NotesService, baseURL string) {
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	note, err := notesService.RegenerateShareToken(c, principalFromContext(c), noteID)
	if err != nil {
		if err == usecase.ErrNoteNotFound {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.InternalError(c, "Failed to regenerate share token")
		return
	}

	utils.Success(c, dto.ToNoteResponse(note, baseURL))
}

func ReorderNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	var req struct {
		NoteIDs []string `json:"note_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	for _, id := range req.NoteIDs {
		if !utils.ValidateObjectID(id) {
			utils.BadRequest(c, "Invalid note id")
			return
		}
	}

	if err := notesService.ReorderNotes(c, principalFromContext(c), req.NoteIDs); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	middleware.TrackNoteOperation("reorder")
	utils.Success(c, gin.H{
		"message": "Notes reordered successfully",
		"count":   len(req.NoteIDs),
	})
}
