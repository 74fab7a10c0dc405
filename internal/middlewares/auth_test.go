package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/monkeymesh/monkeymesh/internal/jwt"
	"github.com/stretchr/testify/assert"
)

func TestSessionMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessionID := uuid.New()

	tests := []struct {
		name         string
		mockSetup    func(tok *MockTokener, sess *MockSessionReader)
		wantUsername string
	}{
		{
			name: "NoToken",
			mockSetup: func(tok *MockTokener, sess *MockSessionReader) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", errors.New("session cookie missing"))
			},
			wantUsername: "",
		},
		{
			name: "InvalidToken",
			mockSetup: func(tok *MockTokener, sess *MockSessionReader) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "sometoken").
					Return(nil, errors.New("invalid token"))
			},
			wantUsername: "",
		},
		{
			name: "LoggedOutSession",
			mockSetup: func(tok *MockTokener, sess *MockSessionReader) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "validtoken").
					Return(&jwt.Claims{Username: "alice", SessionID: sessionID}, nil)
				sess.EXPECT().Get(gomock.Any(), sessionID).
					Return("", nil)
			},
			wantUsername: "",
		},
		{
			name: "SessionLookupError",
			mockSetup: func(tok *MockTokener, sess *MockSessionReader) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "validtoken").
					Return(&jwt.Claims{Username: "alice", SessionID: sessionID}, nil)
				sess.EXPECT().Get(gomock.Any(), sessionID).
					Return("", errors.New("redis down"))
			},
			wantUsername: "",
		},
		{
			name: "ValidSession",
			mockSetup: func(tok *MockTokener, sess *MockSessionReader) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "validtoken").
					Return(&jwt.Claims{Username: "alice", SessionID: sessionID}, nil)
				sess.EXPECT().Get(gomock.Any(), sessionID).
					Return("alice", nil)
			},
			wantUsername: "alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokener := NewMockTokener(ctrl)
			mockSessions := NewMockSessionReader(ctrl)
			tt.mockSetup(mockTokener, mockSessions)

			var gotUsername string
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUsername = GetUsernameFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := SessionMiddleware(mockTokener, mockSessions)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			// The middleware never blocks, it only resolves identity.
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.wantUsername, gotUsername)
		})
	}
}

func TestRequireAuthMiddleware(t *testing.T) {
	t.Run("AnonymousRedirectsToLogin", func(t *testing.T) {
		nextCalled := false
		handler := RequireAuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		}))

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
		assert.False(t, nextCalled)

		// The redirect carries the warning flash.
		assert.NotEmpty(t, rr.Result().Cookies())
	})

	t.Run("AuthenticatedPassesThrough", func(t *testing.T) {
		nextCalled := false
		handler := RequireAuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		ctx := SetIdentityToContext(req.Context(), "alice", uuid.New())
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, nextCalled)
	})
}

func TestIdentityContext(t *testing.T) {
	sessionID := uuid.New()
	ctx := SetIdentityToContext(context.Background(), "alice", sessionID)

	assert.Equal(t, "alice", GetUsernameFromContext(ctx))
	assert.Equal(t, sessionID, GetSessionIDFromContext(ctx))

	assert.Empty(t, GetUsernameFromContext(context.Background()))
	assert.Equal(t, uuid.Nil, GetSessionIDFromContext(context.Background()))
}
