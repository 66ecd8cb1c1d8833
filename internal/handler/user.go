package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

type UserHandler struct {
	userService *service.UserService
	writer      *httputil.Writer
}

func NewUserHandler(userService *service.UserService, writer *httputil.Writer) *UserHandler {
	return &UserHandler{
		userService: userService,
		writer:      writer,
	}
}

// Me returns the profile of the resolved (possibly fallback) user. This route
// never answers 404: the middleware guarantees an identity.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		h.writer.InternalError(w, errors.New("no user in context"))
		return
	}

	profile, err := h.userService.ProfileOf(r.Context(), user)
	if err != nil {
		log.Errorf("[ERROR] Me handler: %v", err)
		h.writer.InternalError(w, err)
		return
	}

	h.writer.JSON(w, http.StatusOK, model.ProfileResponse{Result: true, User: *profile})
}

// GetByID returns another user's profile.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userIDStr := chi.URLParam(r, "id")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.writer.BadRequest(w, "Invalid user ID")
		return
	}

	profile, err := h.userService.Profile(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			h.writer.NotFound(w, err.Error())
		default:
			log.Errorf("[ERROR] GetByID handler: %v", err)
			h.writer.InternalError(w, err)
		}
		return
	}

	h.writer.JSON(w, http.StatusOK, model.ProfileResponse{Result: true, User: *profile})
}

// Register creates a user and returns the generated api key.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writer.BadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNameRequired):
			h.writer.BadRequest(w, err.Error())
		default:
			log.Errorf("[ERROR] Register handler: %v", err)
			h.writer.InternalError(w, err)
		}
		return
	}

	h.writer.JSON(w, http.StatusCreated, model.RegisterResponse{
		Result: true,
		ID:     user.ID,
		APIKey: user.APIKey,
	})
}
