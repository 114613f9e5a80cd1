package controllers

import (
	"errors"
	"net/http"

	"amazonia/internal/middleware"
	"amazonia/internal/storage"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	store storage.ImageStore
}

func NewUploadController(store storage.ImageStore) *UploadController {
	return &UploadController{store: store}
}

// Upload godoc
// @Summary Upload article images
// @Description Store up to five images (jpeg/png/gif/webp, 5 MB each) and return their URLs
// @Tags cms
// @Accept mpfd
// @Produce json
// @Param imagenes formData file true "Image files"
// @Success 201 {object} map[string]interface{} "Stored image URLs"
// @Failure 400 {object} map[string]interface{} "Invalid file"
// @Router /cms/imagenes [post]
func (uc *UploadController) Upload(c *gin.Context) {
	user := middleware.CurrentUser(c)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid multipart form",
			"error":   err.Error(),
		})
		return
	}

	urls, err := uc.store.SaveAll(user.UID, form.File["imagenes"])
	if err != nil {
		status := http.StatusInternalServerError
		message := "Failed to store images"
		if isUploadValidationError(err) {
			status = http.StatusBadRequest
			message = "Upload rejected"
		}
		c.JSON(status, gin.H{
			"status":  "error",
			"message": message,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Images uploaded successfully",
		"data":    gin.H{"urls": urls},
	})
}

func isUploadValidationError(err error) bool {
	return errors.Is(err, storage.ErrTooManyFiles) ||
		errors.Is(err, storage.ErrFileTooLarge) ||
		errors.Is(err, storage.ErrInvalidType) ||
		errors.Is(err, storage.ErrEmptyUpload) ||
		errors.Is(err, storage.ErrInvalidName)
}
