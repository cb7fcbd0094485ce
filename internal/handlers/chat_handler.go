package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gatherly/api/internal/models"
	"github.com/gatherly/api/internal/services"
	"github.com/gin-gonic/gin"
)

// StartConversation finds or lazily creates the thread between the caller
// and the other participant. Repeated calls for the same pair return the
// same conversation.
func StartConversation(ch *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := getClaims(c)
		if !ok {
			return
		}

		var req struct {
			ParticipantID string `json:"participantId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		convo, err := ch.GetOrCreate(c.Request.Context(), claims.UserID, req.ParticipantID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(convo, ""))
	}
}

func ListConversations(ch *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := getClaims(c)
		if !ok {
			return
		}

		conversations, err := ch.ListConversations(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(conversations, ""))
	}
}

// MessageHistory returns the full message log for a conversation, oldest
// first.
func MessageHistory(ch *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := strings.TrimSpace(c.Param("id"))
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("conversation ID is required"))
			return
		}

		claims, ok := getClaims(c)
		if !ok {
			return
		}

		messages, err := ch.History(c.Request.Context(), conversationID, claims.UserID)
		if err != nil {
			c.JSON(http.StatusForbidden, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(messages, ""))
	}
}

func SendMessage(ch *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := strings.TrimSpace(c.Param("id"))
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("conversation ID is required"))
			return
		}

		claims, ok := getClaims(c)
		if !ok {
			return
		}

		var req struct {
			Content string `json:"content" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		msg, err := ch.Send(c.Request.Context(), conversationID, claims.UserID, req.Content)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(msg, ""))
	}
}

func MarkConversationRead(ch *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := strings.TrimSpace(c.Param("id"))
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("conversation ID is required"))
			return
		}

		claims, ok := getClaims(c)
		if !ok {
			return
		}

		if err := ch.MarkRead(c.Request.Context(), conversationID, claims.UserID); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "conversation marked as read"))
	}
}

// StreamMessages holds an SSE stream open and pushes every new message in
// the conversation as it is appended. The subscription is torn down when
// the client disconnects.
func StreamMessages(ch *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := strings.TrimSpace(c.Param("id"))
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("conversation ID is required"))
			return
		}

		claims, ok := getClaims(c)
		if !ok {
			return
		}

		sub, err := ch.Subscribe(c.Request.Context(), conversationID, claims.UserID)
		if err != nil {
			c.JSON(http.StatusForbidden, models.ErrorResponse(err.Error()))
			return
		}
		defer sub.Cancel()

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		c.Stream(func(w io.Writer) bool {
			select {
			case msg, open := <-sub.C:
				if !open {
					return false
				}
				c.SSEvent("message", msg)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
