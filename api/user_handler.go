// Package api exposes the REST surface next to the websocket endpoint:
// user lookup, avatar upload/delete, and username updates.
package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"chatrooms/errors"
	"chatrooms/services"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
)

// MaxAvatarSize caps avatar uploads at 5 MiB.
const MaxAvatarSize = 5 << 20

type UserHandler struct {
	presence  services.IPresenceDirectory
	fanout    *services.Fanout
	uploadDir string
	log       *slog.Logger
}

func NewUserHandler(presence services.IPresenceDirectory, fanout *services.Fanout, uploadDir string, log *slog.Logger) *UserHandler {
	return &UserHandler{presence: presence, fanout: fanout, uploadDir: uploadDir, log: log}
}

func (h *UserHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.getUser)
	r.Patch("/upload-avatar", h.uploadAvatar)
	r.Delete("/delete-avatar", h.deleteAvatar)
	r.Patch("/update-username", h.updateUsername)
	return r
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")
	user, err := h.presence.Find(clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// uploadAvatar accepts a multipart "avatar" file, verifies by content
// sniffing that it really is a jpeg or png, stores it under the uploads
// directory and records its public URL on the user.
func (h *UserHandler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")

	r.Body = http.MaxBytesReader(w, r.Body, MaxAvatarSize)
	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, fmt.Errorf("%w: no file uploaded", errors.ErrInvalidInput))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err))
		return
	}

	kind := mimetype.Detect(data)
	if !kind.Is("image/jpeg") && !kind.Is("image/png") {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": fmt.Sprintf("unsupported avatar type %s", kind.String()),
		})
		return
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(header.Filename))
	if err := os.WriteFile(filepath.Join(h.uploadDir, filename), data, 0o644); err != nil {
		h.log.Error("Avatar write failed", "clientId", clientID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not store avatar"})
		return
	}

	avatarURL := "/uploads/" + filename
	if _, err := h.presence.SetAvatar(clientID, avatarURL); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"avatarUrl": avatarURL})
}

func (h *UserHandler) deleteAvatar(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")

	user, err := h.presence.Find(clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	if user.AvatarURL == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user has no avatar"})
		return
	}

	path := filepath.Join(h.uploadDir, filepath.Base(user.AvatarURL))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		h.log.Error("Avatar file removal failed", "path", path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not delete avatar"})
		return
	}

	if _, err := h.presence.SetAvatar(clientID, ""); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "avatar deleted"})
}

func (h *UserHandler) updateUsername(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")

	var body struct {
		NewUsername string `json:"newUsername"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err))
		return
	}

	user, err := h.presence.Rename(clientID, body.NewUsername)
	if err != nil {
		writeError(w, err)
		return
	}
	// A rename over REST is still a presence mutation everyone must see.
	h.fanout.UsersChanged()
	writeJSON(w, http.StatusOK, map[string]string{"username": user.Username})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case stderrors.Is(err, errors.ErrUserNotFound), stderrors.Is(err, errors.ErrRoomNotFound):
		status = http.StatusNotFound
	case stderrors.Is(err, errors.ErrUsernameTaken):
		status = http.StatusConflict
	case stderrors.Is(err, errors.ErrInvalidInput):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
