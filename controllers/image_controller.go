package controllers

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "learnhub-backend/common/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ImageController streams static lesson images by filename.
type ImageController struct {
	imagesDir string
}

// NewImageController creates a new ImageController serving files from dir.
func NewImageController(dir string) *ImageController {
	return &ImageController{imagesDir: dir}
}

// GetImage handles GET /images/:filename
func (ic *ImageController) GetImage(c *gin.Context) {
	filename := c.Param("filename")

	// Reject anything that could escape the images directory.
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		c.Error(apperrors.Validation("Invalid image name"))
		return
	}

	path := filepath.Join(ic.imagesDir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		zap.L().Info("Image not found", zap.String("filename", filename))
		c.Error(apperrors.NotFound("Image not found"))
		return
	}

	c.File(path)
}
