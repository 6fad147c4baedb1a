package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-nlpdocs/types"
)

type Extractor interface {
	Extract(ctx context.Context, req types.Request) (types.Response, error)
}

type extractRequest struct {
	Task     string        `json:"task" binding:"required"`
	Text     string        `json:"text" binding:"required"`
	Question string        `json:"question"`
	Options  types.Options `json:"options"`
}

// Extract runs a single task over the posted text.
func Extract(c *gin.Context, ext Extractor) {
	var request extractRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := types.ParseTaskKind(request.Task)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if task == types.TaskAnswer && request.Question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required for question-answering"})
		return
	}

	resp, err := ext.Extract(c.Request.Context(), types.Request{
		Task:     task,
		Text:     request.Text,
		Question: request.Question,
		Options:  request.Options,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
