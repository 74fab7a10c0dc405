package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monkeymesh/monkeymesh/internal/handlers"
	"github.com/monkeymesh/monkeymesh/internal/middlewares"
	"github.com/monkeymesh/monkeymesh/internal/web"
)

func TestPostPageHandler(t *testing.T) {
	rnd, err := web.NewRenderer()
	require.NoError(t, err)

	handler := handlers.NewPostPageHandler(rnd)

	req := httptest.NewRequest(http.MethodGet, "/post", nil)
	ctx := middlewares.SetIdentityToContext(req.Context(), "alice", uuid.New())
	rec := httptest.NewRecorder()

	handler(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "form")
}

func TestCreatePostHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rnd, err := web.NewRenderer()
	require.NoError(t, err)

	tests := []struct {
		name           string
		fields         map[string]string
		filename       string
		setupMocks     func(svc *handlers.MockPostCreator)
		expectedStatus int
		expectedPath   string
		expectedBody   string
	}{
		{
			name:   "text-only post",
			fields: map[string]string{"content": "hello world"},
			setupMocks: func(svc *handlers.MockPostCreator) {
				svc.EXPECT().
					Create(gomock.Any(), "alice", "hello world", "", "", gomock.Nil()).
					Return(nil)
			},
			expectedStatus: http.StatusSeeOther,
			expectedPath:   "/",
		},
		{
			name:   "post with image url",
			fields: map[string]string{"content": "look", "image": "https://example.com/cat.png"},
			setupMocks: func(svc *handlers.MockPostCreator) {
				svc.EXPECT().
					Create(gomock.Any(), "alice", "look", "https://example.com/cat.png", "", gomock.Nil()).
					Return(nil)
			},
			expectedStatus: http.StatusSeeOther,
			expectedPath:   "/",
		},
		{
			name:     "post with uploaded image",
			fields:   map[string]string{"content": "look"},
			filename: "cat.png",
			setupMocks: func(svc *handlers.MockPostCreator) {
				svc.EXPECT().
					Create(gomock.Any(), "alice", "look", "", "cat.png", gomock.Not(gomock.Nil())).
					Return(nil)
			},
			expectedStatus: http.StatusSeeOther,
			expectedPath:   "/",
		},
		{
			name:           "missing content re-renders",
			fields:         map[string]string{"image": "https://example.com/cat.png"},
			setupMocks:     func(svc *handlers.MockPostCreator) {},
			expectedStatus: http.StatusOK,
			expectedBody:   "Content is required.",
		},
		{
			name:   "service failure",
			fields: map[string]string{"content": "hello"},
			setupMocks: func(svc *handlers.MockPostCreator) {
				svc.EXPECT().
					Create(gomock.Any(), "alice", "hello", "", "", gomock.Nil()).
					Return(assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := handlers.NewMockPostCreator(ctrl)
			tt.setupMocks(svc)

			handler := handlers.NewCreatePostHandler(svc, rnd)

			body, contentType := multipartForm(t, tt.fields, tt.filename, []byte("image bytes"))
			req := httptest.NewRequest(http.MethodPost, "/post", body)
			req.Header.Set("Content-Type", contentType)
			ctx := middlewares.SetIdentityToContext(req.Context(), "alice", uuid.New())
			rec := httptest.NewRecorder()

			handler(rec, req.WithContext(ctx))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedPath != "" {
				assert.Equal(t, tt.expectedPath, rec.Header().Get("Location"))
			}
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
		})
	}
}
