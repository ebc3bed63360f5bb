package upload

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nojast/nojast-api/internal/middleware"
	"github.com/nojast/nojast-api/internal/pkg/imaging"
	"github.com/nojast/nojast-api/internal/pkg/response"
	"github.com/nojast/nojast-api/internal/pkg/storage"
)

// MaxUploadSize bounds the multipart form, slightly above the per-file cap.
const MaxUploadSize = imaging.MaxFileSize + 1024*1024

// Result is the API view of a stored image
type Result struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

// Handler handles image upload requests
type Handler struct {
	storage   storage.Storage
	processor *imaging.Processor
}

// NewHandler creates upload handler
func NewHandler(st storage.Storage, processor *imaging.Processor) *Handler {
	return &Handler{storage: st, processor: processor}
}

// Image handles POST /uploads/image. The file is resized, a thumbnail is
// rendered and both variants are stored.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		response.Error(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "File storage is not configured")
		return
	}

	userID := middleware.GetUserID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		response.Error(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the 5MB limit")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file field")
		return
	}
	defer file.Close()

	if header.Size > imaging.MaxFileSize {
		response.Error(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the 5MB limit")
		return
	}
	if !imaging.ValidateType(header.Filename) {
		response.BadRequest(w, "Only jpg, jpeg, png and webp files are accepted")
		return
	}

	processed, err := h.processor.Process(file)
	if err != nil {
		response.BadRequest(w, "File is not a valid image")
		return
	}

	// Key extension follows the stored encoding, not the uploaded filename:
	// webp input is re-encoded as jpeg.
	ext := ".jpg"
	if processed.ContentType == "image/png" {
		ext = ".png"
	}
	base := fmt.Sprintf("images/%s/%d-%s", userID.String(), time.Now().Unix(), uuid.NewString()[:8])
	originalKey := base + ext
	thumbKey := base + "_thumb" + ext

	ctx := r.Context()
	if err := h.storage.Put(ctx, originalKey, bytes.NewReader(processed.Original), processed.ContentType); err != nil {
		log.Error().Err(err).Msg("Failed to store uploaded image")
		response.InternalError(w)
		return
	}
	if err := h.storage.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), processed.ContentType); err != nil {
		log.Error().Err(err).Msg("Failed to store thumbnail")
		h.storage.Delete(ctx, originalKey)
		response.InternalError(w)
		return
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("key", originalKey).
		Msg("Image uploaded")

	response.Created(w, Result{
		URL:          h.storage.PublicURL(originalKey),
		ThumbnailURL: h.storage.PublicURL(thumbKey),
		Width:        processed.Width,
		Height:       processed.Height,
	})
}
