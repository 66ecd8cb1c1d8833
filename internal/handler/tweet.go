package handler

import (
	"encoding/json"
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

type TweetHandler struct {
	tweetService *service.TweetService
	writer       *httputil.Writer
	metrics      *metrics.Metrics
}

func NewTweetHandler(tweetService *service.TweetService, writer *httputil.Writer, m *metrics.Metrics) *TweetHandler {
	return &TweetHandler{
		tweetService: tweetService,
		writer:       writer,
		metrics:      m,
	}
}

// List returns tweets newest first. offset is a 1-based page number, limit
// the page size; with either absent the full list comes back.
func (h *TweetHandler) List(w http.ResponseWriter, r *http.Request) {
	offset := parsePositiveInt(r.URL.Query().Get("offset"))
	limit := parsePositiveInt(r.URL.Query().Get("limit"))

	tweets, err := h.tweetService.List(r.Context(), offset, limit)
	if err != nil {
		log.Errorf("[ERROR] List tweets handler: %v", err)
		h.writer.InternalError(w, err)
		return
	}

	h.writer.JSON(w, http.StatusOK, model.TweetListResponse{Result: true, Tweets: tweets})
}

func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		h.writer.InternalError(w, errors.New("no user in context"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req model.CreateTweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writer.BadRequest(w, "Invalid request body")
		return
	}

	tweet, err := h.tweetService.Create(r.Context(), user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrContentRequired), errors.Is(err, model.ErrContentTooLong):
			h.metrics.RejectedRequests.WithLabelValues(r.URL.Path).Inc()
			h.writer.BadRequest(w, err.Error())
		default:
			log.Errorf("[ERROR] Create tweet handler: %v", err)
			h.writer.InternalError(w, err)
		}
		return
	}

	h.metrics.TweetsCreated.WithLabelValues(r.URL.Path).Inc()
	h.writer.JSON(w, http.StatusCreated, model.CreateTweetResponse{Result: true, TweetID: tweet.ID})
}

func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		h.writer.InternalError(w, errors.New("no user in context"))
		return
	}

	tweetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writer.BadRequest(w, "Invalid tweet ID")
		return
	}

	if err := h.tweetService.Delete(r.Context(), tweetID, user.ID); err != nil {
		switch {
		case errors.Is(err, model.ErrNotTweetOwner):
			h.metrics.RejectedRequests.WithLabelValues(r.URL.Path).Inc()
			h.writer.Forbidden(w, err.Error())
		case errors.Is(err, model.ErrTweetNotFound):
			h.metrics.RejectedRequests.WithLabelValues(r.URL.Path).Inc()
			h.writer.NotFound(w, err.Error())
		default:
			log.Errorf("[ERROR] Delete tweet handler: %v", err)
			h.writer.InternalError(w, err)
		}
		return
	}

	h.metrics.TweetsDeleted.WithLabelValues(r.URL.Path).Inc()
	h.writer.JSON(w, http.StatusOK, model.ResultResponse{Result: true})
}

func (h *TweetHandler) Like(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		h.writer.InternalError(w, errors.New("no user in context"))
		return
	}

	tweetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writer.BadRequest(w, "Invalid tweet ID")
		return
	}

	if err := h.tweetService.Like(r.Context(), tweetID, user.ID); err != nil {
		switch {
		case errors.Is(err, model.ErrTweetNotFound):
			h.metrics.RejectedRequests.WithLabelValues(r.URL.Path).Inc()
			h.writer.NotFound(w, err.Error())
		case errors.Is(err, model.ErrAlreadyLiked):
			h.metrics.RejectedRequests.WithLabelValues(r.URL.Path).Inc()
			h.writer.BadRequest(w, err.Error())
		default:
			log.Errorf("[ERROR] Like handler: %v", err)
			h.writer.InternalError(w, err)
		}
		return
	}

	h.metrics.LikeRequests.WithLabelValues(r.URL.Path).Inc()
	h.writer.JSON(w, http.StatusOK, model.ResultResponse{Result: true})
}

func (h *TweetHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		h.writer.InternalError(w, errors.New("no user in context"))
		return
	}

	tweetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writer.BadRequest(w, "Invalid tweet ID")
		return
	}

	if err := h.tweetService.Unlike(r.Context(), tweetID, user.ID); err != nil {
		switch {
		case errors.Is(err, model.ErrNotLiked):
			h.metrics.RejectedRequests.WithLabelValues(r.URL.Path).Inc()
			h.writer.NotFound(w, err.Error())
		default:
			log.Errorf("[ERROR] Unlike handler: %v", err)
			h.writer.InternalError(w, err)
		}
		return
	}

	h.writer.JSON(w, http.StatusOK, model.ResultResponse{Result: true})
}

// parsePositiveInt returns 0 for absent or invalid values.
func parsePositiveInt(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
