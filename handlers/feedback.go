package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"precojusto-backend/dtos"
	"precojusto-backend/feedback"
	"precojusto-backend/logger"
)

type FeedbackHandler struct {
	Board *feedback.Board
}

func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	c.JSON(http.StatusOK, h.Board.List())
}

// SubmitFeedback publishes a review once the board accepts it. The request
// is held for the board's publishing delay.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req dtos.FeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.Board.Submit(c.Request.Context(), feedback.Submission{
		UserName:  req.UserName,
		UserPhoto: req.UserPhoto,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info(c, "feedback published", zap.String("feedback_id", entry.ID), zap.Int("rating", entry.Rating))
	c.JSON(http.StatusCreated, entry)
}

func (h *FeedbackHandler) LikeFeedback(c *gin.Context) {
	entry, err := h.Board.Like(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
