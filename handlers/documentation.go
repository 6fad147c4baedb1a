package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-nlpdocs/docs"
	"go-nlpdocs/types"
)

type textRequest struct {
	Text string `json:"text" binding:"required"`
}

type documentationResponse struct {
	Entities       []types.EntityResult `json:"entities"`
	StructuredInfo types.StructuredInfo `json:"structured_info"`
	Documentation  docs.Document        `json:"documentation"`
}

type complianceResponse struct {
	Summary       string        `json:"summary"`
	Documentation docs.Document `json:"documentation"`
}

// GenerateDocumentation recognizes the participants in the posted project
// description and returns the rendered project documentation.
func GenerateDocumentation(c *gin.Context, r docs.EntityRecognizer) {
	var request textRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entities, info, doc, err := docs.GenerateDocumentation(c.Request.Context(), r, request.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if entities == nil {
		entities = []types.EntityResult{}
	}
	c.JSON(http.StatusOK, documentationResponse{
		Entities:       entities,
		StructuredInfo: info,
		Documentation:  doc,
	})
}

// GenerateCompliance summarizes posted regulatory requirements into the
// Part-11 compliance summary.
func GenerateCompliance(c *gin.Context, s docs.Summarizer) {
	var request textRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, doc, err := docs.GenerateComplianceDocumentation(c.Request.Context(), s, request.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, complianceResponse{
		Summary:       summary.SummaryText,
		Documentation: doc,
	})
}
