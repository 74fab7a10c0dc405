package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/monkeymesh/monkeymesh/internal/handlers"
	"github.com/monkeymesh/monkeymesh/internal/jwt"
	"github.com/monkeymesh/monkeymesh/internal/middlewares"
)

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessionID := uuid.New()

	tests := []struct {
		name           string
		sessionID      uuid.UUID
		setupMocks     func(svc *handlers.MockLogouter, cookies *handlers.MockCookieBaker)
		expectedStatus int
	}{
		{
			name:      "authenticated session is destroyed",
			sessionID: sessionID,
			setupMocks: func(svc *handlers.MockLogouter, cookies *handlers.MockCookieBaker) {
				svc.EXPECT().Logout(gomock.Any(), sessionID).Return(nil)
				cookies.EXPECT().ClearCookie().Return(&http.Cookie{Name: jwt.CookieName, MaxAge: -1, Path: "/"})
			},
			expectedStatus: http.StatusFound,
		},
		{
			name:      "anonymous still gets the redirect",
			sessionID: uuid.Nil,
			setupMocks: func(svc *handlers.MockLogouter, cookies *handlers.MockCookieBaker) {
				cookies.EXPECT().ClearCookie().Return(&http.Cookie{Name: jwt.CookieName, MaxAge: -1, Path: "/"})
			},
			expectedStatus: http.StatusFound,
		},
		{
			name:      "session store failure",
			sessionID: sessionID,
			setupMocks: func(svc *handlers.MockLogouter, cookies *handlers.MockCookieBaker) {
				svc.EXPECT().Logout(gomock.Any(), sessionID).Return(assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := handlers.NewMockLogouter(ctrl)
			cookies := handlers.NewMockCookieBaker(ctrl)
			tt.setupMocks(svc, cookies)

			handler := handlers.NewLogoutHandler(svc, cookies)

			req := httptest.NewRequest(http.MethodGet, "/logout", nil)
			if tt.sessionID != uuid.Nil {
				ctx := middlewares.SetIdentityToContext(req.Context(), "alice", tt.sessionID)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			handler(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusFound {
				assert.Equal(t, "/", rec.Header().Get("Location"))

				var cleared bool
				for _, c := range rec.Result().Cookies() {
					if c.Name == jwt.CookieName && c.MaxAge < 0 {
						cleared = true
					}
				}
				assert.True(t, cleared, "session cookie should be cleared")
			}
		})
	}
}
