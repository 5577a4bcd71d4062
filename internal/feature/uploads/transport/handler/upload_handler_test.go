package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job_portal_backend/internal/domain/access"
	"job_portal_backend/internal/feature/uploads/usecase"
	jwtmw "job_portal_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockUploadsUsecase はUploadsUsecaseインターフェースのモック実装です。
type mockUploadsUsecase struct {
	UploadResumeFunc func(caller access.Caller, file usecase.ResumeFile, body []byte) (string, error)
}

func (m *mockUploadsUsecase) UploadResume(_ context.Context, caller access.Caller, file usecase.ResumeFile) (string, error) {
	body, _ := io.ReadAll(file.Body)
	return m.UploadResumeFunc(caller, file, body)
}

var seeker = access.Caller{UserID: 20, Role: access.RoleJobseeker}

func newRouter(uc UploadsUsecase) *gin.Engine {
	h := NewUploadHandler(uc)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(jwtmw.ContextCaller, seeker); c.Next() })
	r.POST("/api/uploads/resume", h.UploadResume)
	return r
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func post(r *gin.Engine, body io.Reader, contentType string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/resume", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestUploadHandler_UploadResume(t *testing.T) {
	tests := []struct {
		name           string
		field          string
		ucErr          error
		expectedStatus int
		expectedError  string
	}{
		{name: "success", field: "resume", expectedStatus: http.StatusCreated},
		{name: "failure: wrong field", field: "file", expectedStatus: http.StatusBadRequest, expectedError: "resume file is required"},
		{name: "failure: file type", field: "resume", ucErr: usecase.ErrUnsupportedFileType, expectedStatus: http.StatusBadRequest, expectedError: "only .pdf, .doc and .docx files are allowed"},
		{name: "failure: employer", field: "resume", ucErr: access.ErrForbidden, expectedStatus: http.StatusForbidden, expectedError: "Only jobseekers can upload resumes"},
		{name: "failure: storage", field: "resume", ucErr: errors.New("bucket missing"), expectedStatus: http.StatusInternalServerError, expectedError: "Error uploading resume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got usecase.ResumeFile
			var gotBody []byte
			uc := &mockUploadsUsecase{UploadResumeFunc: func(_ access.Caller, file usecase.ResumeFile, body []byte) (string, error) {
				got, gotBody = file, body
				if tt.ucErr != nil {
					return "", tt.ucErr
				}
				return "https://storage.googleapis.com/b/resumes/20-1.pdf", nil
			}}

			body, ct := multipartBody(t, tt.field, "cv.pdf", []byte("%PDF-1.7"))
			w, resp := post(newRouter(uc), body, ct)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, resp["error"])
				return
			}
			assert.Equal(t, "https://storage.googleapis.com/b/resumes/20-1.pdf", resp["url"])
			assert.Equal(t, "cv.pdf", got.Filename)
			assert.Equal(t, int64(8), got.Size)
			assert.Equal(t, "%PDF-1.7", string(gotBody))
		})
	}
}

func TestUploadHandler_BodyTooLarge(t *testing.T) {
	uc := &mockUploadsUsecase{UploadResumeFunc: func(access.Caller, usecase.ResumeFile, []byte) (string, error) {
		t.Fatal("usecase must not be called")
		return "", nil
	}}

	body, ct := multipartBody(t, "resume", "cv.pdf", bytes.Repeat([]byte("x"), int(usecase.MaxResumeSize+multipartOverhead)+1))
	w, resp := post(newRouter(uc), body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, usecase.ErrFileTooLarge.Error(), resp["error"])
}
