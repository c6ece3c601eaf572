package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eatsexchange/eats-exchange-server/internal/access"
	"github.com/eatsexchange/eats-exchange-server/internal/apierror"
	"github.com/eatsexchange/eats-exchange-server/internal/storage"
	"github.com/eatsexchange/eats-exchange-server/pkg/logger"
	"github.com/eatsexchange/eats-exchange-server/pkg/middleware"
	"github.com/gin-gonic/gin"
)

const presignTTL = 15 * time.Minute

// ImageHandler stores listing photos in object storage.
type ImageHandler struct {
	store storage.ImageStore
}

func NewImageHandler(store storage.ImageStore) *ImageHandler {
	return &ImageHandler{store: store}
}

func (h *ImageHandler) Register(r *access.Router) {
	r.POST("/images", h.Upload)
	r.GET("/images/:key", h.Redirect)
}

// Upload accepts a multipart "image" field and answers with the URL to
// store in a listing's FoodImage.
func (h *ImageHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxImageSize+1<<20)
	fh, err := c.FormFile("image")
	if err != nil {
		apierror.Respond(c, fmt.Errorf("%w: multipart field \"image\" is required", apierror.ErrValidation))
		return
	}
	if fh.Size > storage.MaxImageSize {
		apierror.Respond(c, fmt.Errorf("%w: image larger than %d bytes", apierror.ErrValidation, storage.MaxImageSize))
		return
	}
	f, err := fh.Open()
	if err != nil {
		apierror.Respond(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		apierror.Respond(c, fmt.Errorf("%w: unreadable image", apierror.ErrValidation))
		return
	}
	contentType := http.DetectContentType(head[:n])
	key, err := storage.NewImageKey(contentType)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		apierror.Respond(c, fmt.Errorf("rewind upload: %w", err))
		return
	}
	if err := h.store.Put(c.Request.Context(), key, f, fh.Size, contentType); err != nil {
		apierror.Respond(c, err)
		return
	}
	email, _ := middleware.ClaimsEmail(c)
	logger.Infof("stored image %s (%d bytes) for %s", key, fh.Size, email)
	c.JSON(http.StatusCreated, gin.H{"url": "/images/" + key})
}

// Redirect sends the client to a short-lived presigned URL for key.
func (h *ImageHandler) Redirect(c *gin.Context) {
	key := c.Param("key")
	if !storage.ValidKey(key) {
		apierror.Respond(c, fmt.Errorf("image %q: %w", key, apierror.ErrNotFound))
		return
	}
	u, err := h.store.PresignedURL(c.Request.Context(), key, presignTTL)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.Redirect(http.StatusFound, u)
}
