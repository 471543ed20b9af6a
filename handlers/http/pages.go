package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	userID, _ := CurrentUserID(c)
	c.HTML(http.StatusOK, "index.html", gin.H{"user": userID})
}

// Gallery handles GET /gallery. No per-user image history is persisted
// yet, so the page renders without entries.
func (h *PageHandler) Gallery(c *gin.Context) {
	userID, _ := CurrentUserID(c)
	c.HTML(http.StatusOK, "gallery.html", gin.H{"user": userID})
}

// NotFound renders the custom 404 page for every unmatched route.
func (h *PageHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{})
}
