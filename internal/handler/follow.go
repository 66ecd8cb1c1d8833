package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"microblog/internal/httputil"
	"microblog/internal/metrics"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

type FollowHandler struct {
	followService *service.FollowService
	writer        *httputil.Writer
	metrics       *metrics.Metrics
}

func NewFollowHandler(followService *service.FollowService, writer *httputil.Writer, m *metrics.Metrics) *FollowHandler {
	return &FollowHandler{
		followService: followService,
		writer:        writer,
		metrics:       m,
	}
}

func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		h.writer.InternalError(w, errors.New("no user in context"))
		return
	}

	followeeIDStr := chi.URLParam(r, "id")
	followeeID, err := strconv.ParseInt(followeeIDStr, 10, 64)
	if err != nil {
		h.writer.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.followService.Follow(r.Context(), user.ID, followeeID); err != nil {
		switch {
		case errors.Is(err, model.ErrCannotFollowSelf), errors.Is(err, model.ErrAlreadyFollowing):
			h.metrics.RejectedRequests.WithLabelValues(r.URL.Path).Inc()
			h.writer.BadRequest(w, err.Error())
		case errors.Is(err, model.ErrUserNotFound):
			h.metrics.RejectedRequests.WithLabelValues(r.URL.Path).Inc()
			h.writer.NotFound(w, err.Error())
		default:
			log.Errorf("[ERROR] Follow handler: %v", err)
			h.writer.InternalError(w, err)
		}
		return
	}

	h.metrics.FollowRequests.WithLabelValues(r.URL.Path).Inc()
	h.writer.JSON(w, http.StatusOK, model.ResultResponse{Result: true})
}

func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		h.writer.InternalError(w, errors.New("no user in context"))
		return
	}

	followeeIDStr := chi.URLParam(r, "id")
	followeeID, err := strconv.ParseInt(followeeIDStr, 10, 64)
	if err != nil {
		h.writer.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.followService.Unfollow(r.Context(), user.ID, followeeID); err != nil {
		switch {
		case errors.Is(err, model.ErrNotFollowing):
			h.metrics.RejectedRequests.WithLabelValues(r.URL.Path).Inc()
			h.writer.BadRequest(w, err.Error())
		default:
			log.Errorf("[ERROR] Unfollow handler: %v", err)
			h.writer.InternalError(w, err)
		}
		return
	}

	h.writer.JSON(w, http.StatusOK, model.ResultResponse{Result: true})
}
