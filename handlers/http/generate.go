package httpHandler

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"draw2photo-server/services"
)

type GenerateHandler struct {
	transformer services.SketchTransformer
}

func NewGenerateHandler(transformer services.SketchTransformer) *GenerateHandler {
	return &GenerateHandler{transformer: transformer}
}

// GenerateForm handles GET /generate. Anonymous visitors are sent to the
// login page instead of getting an error.
func (h *GenerateHandler) GenerateForm(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.HTML(http.StatusOK, "generate.html", gin.H{"user": userID})
}

// Generate handles POST /generate. It accepts a PNG or JPEG sketch upload
// and streams back the transformed PNG inline.
func (h *GenerateHandler) Generate(c *gin.Context) {
	if _, ok := CurrentUserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A sketch file is required"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/png" && contentType != "image/jpeg" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PNG/JPEG only"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read upload"})
		return
	}
	defer file.Close()

	sketch, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read upload"})
		return
	}

	generationID := uuid.New().String()
	photo, err := h.transformer.Transform(c.Request.Context(), sketch)
	if err != nil {
		log.Printf("generation %s failed: %v", generationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image generation failed"})
		return
	}
	log.Printf("generation %s: %d bytes in, %d bytes out", generationID, len(sketch), len(photo))

	c.Header("Content-Disposition", `inline; filename="result.png"`)
	c.Data(http.StatusOK, "image/png", photo)
}
