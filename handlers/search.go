package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"precojusto-backend/catalog"
	"precojusto-backend/dtos"
	"precojusto-backend/filter"
	"precojusto-backend/search"
)

const streamHeartbeat = 15 * time.Second

// SearchHandler drives server-side search boxes. Keystrokes are posted as
// they happen and the applied query settles after the debounce delay.
type SearchHandler struct {
	Store    *catalog.Store
	Sessions *search.Registry
}

func (h *SearchHandler) result(v search.View) dtos.SearchResult {
	products := filter.Products(h.Store.Snapshot().Products, v.Query, v.Category)
	return dtos.SearchResult{View: v, Results: filter.ByCategory(products)}
}

func (h *SearchHandler) session(c *gin.Context) (*search.Session, bool) {
	s, ok := h.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Search session not found"})
	}
	return s, ok
}

func (h *SearchHandler) CreateSession(c *gin.Context) {
	var req dtos.CreateSearchSessionRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	s := h.Sessions.Create(req.Category)
	if req.Text != "" {
		s.Type(req.Text)
		s.Flush()
	}
	c.JSON(http.StatusCreated, h.result(s.View()))
}

// UpdateInput records the box contents. The response reflects the query
// applied so far, which lags the input until typing pauses or flush is set.
func (h *SearchHandler) UpdateInput(c *gin.Context) {
	var req dtos.SearchInputRequest
	if !bindJSON(c, &req) {
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}

	if req.Category != nil {
		s.SetCategory(*req.Category)
	}
	if req.Text != nil {
		s.Type(*req.Text)
	}
	if req.Flush {
		s.Flush()
	}
	c.JSON(http.StatusOK, h.result(s.View()))
}

func (h *SearchHandler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.result(s.View()))
}

func (h *SearchHandler) DeleteSession(c *gin.Context) {
	if !h.Sessions.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Search session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// StreamSession pushes a "view" event every time the applied query or
// category changes, starting with the current one.
func (h *SearchHandler) StreamSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	updates, cancel := s.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("view", h.result(s.View()))
	c.Writer.Flush()

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().UnixMilli())
			c.Writer.Flush()
		case v, open := <-updates:
			if !open {
				return
			}
			c.SSEvent("view", h.result(v))
			c.Writer.Flush()
		}
	}
}
