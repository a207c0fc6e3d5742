package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chatrooms/mocks"
	"chatrooms/repositories"
	"chatrooms/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Minimal valid PNG: signature, IHDR for a 1x1 image, empty IDAT, IEND.
var tinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e,
	0x44, 0xae, 0x42, 0x60, 0x82,
}

type apiHarness struct {
	server    *httptest.Server
	presence  *services.PresenceDirectory
	transport *mocks.MockBroadcaster
	uploadDir string
}

func newAPIHarness(t *testing.T) apiHarness {
	t.Helper()
	req := require.New(t)
	log := slog.Default()

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	ctrl := gomock.NewController(t)
	transport := mocks.NewMockBroadcaster(ctrl)
	rooms := mocks.NewMockIRoomService(ctrl)

	presence := services.NewPresenceDirectory(repositories.NewUserRepository(db), log)
	fanout := services.NewFanout(transport, presence, rooms, log)

	uploadDir := t.TempDir()
	handler := NewUserHandler(presence, fanout, uploadDir, log)
	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)

	return apiHarness{server: server, presence: presence, transport: transport, uploadDir: uploadDir}
}

func multipartAvatar(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func doPatch(t *testing.T, url, contentType string, body *bytes.Buffer) *http.Response {
	t.Helper()
	httpReq, err := http.NewRequest(http.MethodPatch, url, body)
	require.NoError(t, err)
	httpReq.Header.Set("Content-Type", contentType)
	resp, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestGetUser(t *testing.T) {
	req := require.New(t)
	h := newAPIHarness(t)

	_, err := h.presence.Register("c-1")
	req.NoError(err)

	resp, err := http.Get(h.server.URL + "/?clientId=c-1")
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)

	var user map[string]any
	req.NoError(json.NewDecoder(resp.Body).Decode(&user))
	req.Equal("c-1", user["clientId"])

	resp, err = http.Get(h.server.URL + "/?clientId=c-404")
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestUploadAvatar(t *testing.T) {
	req := require.New(t)
	h := newAPIHarness(t)

	_, err := h.presence.Register("c-1")
	req.NoError(err)

	body, contentType := multipartAvatar(t, "selfie.png", tinyPNG)
	resp := doPatch(t, h.server.URL+"/upload-avatar?clientId=c-1", contentType, body)
	req.Equal(http.StatusOK, resp.StatusCode)

	var payload map[string]string
	req.NoError(json.NewDecoder(resp.Body).Decode(&payload))
	req.True(strings.HasPrefix(payload["avatarUrl"], "/uploads/"))
	req.True(strings.HasSuffix(payload["avatarUrl"], "-selfie.png"))

	// The file landed on disk and the presence row points at it.
	_, err = os.Stat(filepath.Join(h.uploadDir, filepath.Base(payload["avatarUrl"])))
	req.NoError(err)
	user, err := h.presence.Find("c-1")
	req.NoError(err)
	req.Equal(payload["avatarUrl"], user.AvatarURL)
}

func TestUploadAvatar_Rejects_Non_Image(t *testing.T) {
	req := require.New(t)
	h := newAPIHarness(t)

	_, err := h.presence.Register("c-1")
	req.NoError(err)

	// Content sniffing decides, not the filename.
	body, contentType := multipartAvatar(t, "selfie.png", []byte("#!/bin/sh\nrm -rf\n"))
	resp := doPatch(t, h.server.URL+"/upload-avatar?clientId=c-1", contentType, body)
	req.Equal(http.StatusUnprocessableEntity, resp.StatusCode)

	user, err := h.presence.Find("c-1")
	req.NoError(err)
	req.Empty(user.AvatarURL)
}

func TestUploadAvatar_Requires_File(t *testing.T) {
	req := require.New(t)
	h := newAPIHarness(t)

	_, err := h.presence.Register("c-1")
	req.NoError(err)

	resp := doPatch(t, h.server.URL+"/upload-avatar?clientId=c-1", "application/json", bytes.NewBufferString("{}"))
	req.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteAvatar(t *testing.T) {
	req := require.New(t)
	h := newAPIHarness(t)

	_, err := h.presence.Register("c-1")
	req.NoError(err)

	// Without an avatar there is nothing to delete.
	httpReq, err := http.NewRequest(http.MethodDelete, h.server.URL+"/delete-avatar?clientId=c-1", nil)
	req.NoError(err)
	resp, err := http.DefaultClient.Do(httpReq)
	req.NoError(err)
	resp.Body.Close()
	req.Equal(http.StatusNotFound, resp.StatusCode)

	body, contentType := multipartAvatar(t, "selfie.png", tinyPNG)
	uploadResp := doPatch(t, h.server.URL+"/upload-avatar?clientId=c-1", contentType, body)
	req.Equal(http.StatusOK, uploadResp.StatusCode)
	var payload map[string]string
	req.NoError(json.NewDecoder(uploadResp.Body).Decode(&payload))

	resp, err = http.DefaultClient.Do(httpReq.Clone(httpReq.Context()))
	req.NoError(err)
	resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)

	_, err = os.Stat(filepath.Join(h.uploadDir, filepath.Base(payload["avatarUrl"])))
	req.True(os.IsNotExist(err))
	user, err := h.presence.Find("c-1")
	req.NoError(err)
	req.Empty(user.AvatarURL)
}

func TestUpdateUsername(t *testing.T) {
	req := require.New(t)
	h := newAPIHarness(t)

	_, err := h.presence.Register("c-1")
	req.NoError(err)

	// The rename is pushed to every live connection.
	h.transport.EXPECT().Broadcast(gomock.Any(), services.EventUsersList, gomock.Any()).Times(1)

	resp := doPatch(t, h.server.URL+"/update-username?clientId=c-1", "application/json",
		bytes.NewBufferString(`{"newUsername":"Alice"}`))
	req.Equal(http.StatusOK, resp.StatusCode)

	var payload map[string]string
	req.NoError(json.NewDecoder(resp.Body).Decode(&payload))
	req.Equal("Alice", payload["username"])

	user, err := h.presence.FindByName("Alice")
	req.NoError(err)
	req.Equal("c-1", user.ClientID)

	// Blank names are rejected.
	resp = doPatch(t, h.server.URL+"/update-username?clientId=c-1", "application/json",
		bytes.NewBufferString(`{"newUsername":"  "}`))
	req.Equal(http.StatusBadRequest, resp.StatusCode)

	// Names held by another connection conflict; nobody is notified.
	_, err = h.presence.Register("c-2")
	req.NoError(err)
	resp = doPatch(t, h.server.URL+"/update-username?clientId=c-2", "application/json",
		bytes.NewBufferString(`{"newUsername":"Alice"}`))
	req.Equal(http.StatusConflict, resp.StatusCode)
}
