package handler

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

type MediaHandler struct {
	mediaService *service.MediaService
	writer       *httputil.Writer
	maxUpload    int64
}

func NewMediaHandler(mediaService *service.MediaService, writer *httputil.Writer, maxUpload int64) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
		writer:       writer,
		maxUpload:    maxUpload,
	}
}

// Upload handles POST /api/medias. The file field is named "file"; the
// response carries the attachment id the client sends back in
// tweet_media_ids when creating the tweet.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		h.writer.InternalError(w, errors.New("no user in context"))
		return
	}

	// Extra headroom for multipart framing on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writer.BadRequest(w, "Missing file field")
		return
	}
	defer file.Close()

	attachment, err := h.mediaService.Upload(r.Context(), user.APIKey, file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge),
			errors.Is(err, model.ErrInvalidImageType),
			errors.Is(err, model.ErrNotAnImage):
			h.writer.BadRequest(w, err.Error())
		default:
			log.Errorf("[ERROR] Upload media handler: %v", err)
			h.writer.InternalError(w, err)
		}
		return
	}

	h.writer.JSON(w, http.StatusCreated, model.MediaUploadResponse{Result: true, MediaID: attachment.ID})
}
