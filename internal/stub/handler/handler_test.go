package handler_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillchat-dev/quillchat/internal/stub/handler"
	"github.com/quillchat-dev/quillchat/internal/stub/router"
	"github.com/quillchat-dev/quillchat/internal/stub/service"
	"github.com/quillchat-dev/quillchat/shared/domain"
	"github.com/quillchat-dev/quillchat/shared/jwt"
)

func newTestServer(t *testing.T, jwtService jwt.JwtService) *httptest.Server {
	t.Helper()
	store := service.NewFileStore(0)
	h := handler.New(store, 1<<20)
	server := httptest.NewServer(router.New(h, jwtService, nil))
	t.Cleanup(server.Close)
	return server
}

func ingestBody(t *testing.T, filename, threadId string, content []byte) *bytes.Reader {
	t.Helper()
	payload, err := json.Marshal(map[string]string{
		"filename":  filename,
		"content":   base64.StdEncoding.EncodeToString(content),
		"thread_id": threadId,
	})
	require.NoError(t, err)
	return bytes.NewReader(payload)
}

func TestIngestListDeleteRoundTrip(t *testing.T) {
	server := newTestServer(t, nil)

	// upload a pdf
	resp, err := http.Post(server.URL+"/process-pdf", "application/json", ingestBody(t, "report.pdf", "thread-1", []byte("%PDF fake")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var record domain.AttachmentRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&record))
	assert.NotEmpty(t, record.Id)
	assert.Equal(t, domain.FileKindDocument, record.Kind)
	require.NotNil(t, record.PageCount)
	assert.NotEmpty(t, record.ExtractedText)

	// upload a spreadsheet
	resp, err = http.Post(server.URL+"/process-excel", "application/json", ingestBody(t, "data.xlsx", "thread-1", []byte("cells")))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// list reflects both, in upload order
	resp, err = http.Get(server.URL + "/files/thread-1")
	require.NoError(t, err)
	defer resp.Body.Close()
	var list []domain.AttachmentRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, "report.pdf", list[0].Name)
	assert.Equal(t, "data.xlsx", list[1].Name)

	// delete the pdf
	req, err := http.NewRequest("DELETE", fmt.Sprintf("%s/file/thread-1/%s", server.URL, record.Id), nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// the list shrinks only after the delete is confirmed
	resp, err = http.Get(server.URL + "/files/thread-1")
	require.NoError(t, err)
	defer resp.Body.Close()
	list = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "data.xlsx", list[0].Name)
}

func TestIngest_BadRequests(t *testing.T) {
	server := newTestServer(t, nil)

	t.Run("missing fields", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/process-pdf", "application/json", bytes.NewReader([]byte(`{"filename":"x.pdf"}`)))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid base64", func(t *testing.T) {
		payload := []byte(`{"filename":"x.pdf","content":"not-base64!!!","thread_id":"t"}`)
		resp, err := http.Post(server.URL+"/process-pdf", "application/json", bytes.NewReader(payload))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDelete_UnknownFile(t *testing.T) {
	server := newTestServer(t, nil)

	req, err := http.NewRequest("DELETE", server.URL+"/file/thread-1/never-seen", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListFiles_EmptyThreadIsEmptyArray(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/files/empty-thread")
	require.NoError(t, err)
	defer resp.Body.Close()

	var list []domain.AttachmentRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestAuth(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	server := newTestServer(t, jwtService)

	t.Run("rejects missing token", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/process-pdf", "application/json", ingestBody(t, "report.pdf", "thread-1", []byte("x")))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("accepts valid token", func(t *testing.T) {
		token, err := jwtService.NewToken("thread-1")
		require.NoError(t, err)

		req, err := http.NewRequest("POST", server.URL+"/process-pdf", ingestBody(t, "report.pdf", "thread-1", []byte("x")))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("health stays open", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/health")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
