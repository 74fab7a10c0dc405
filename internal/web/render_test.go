package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/monkeymesh/monkeymesh/internal/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestRenderer_AllTemplates(t *testing.T) {
	rn, err := NewRenderer()
	assert.NoError(t, err)

	posts := []models.PostDB{
		{ID: 2, Username: "bob", Content: "hello", Image: strPtr("/static/uploads/cat.png")},
		{ID: 1, Username: "alice", Content: "first", ProfilePic: strPtr("/static/uploads/alice.png")},
	}

	tests := []struct {
		name     string
		template string
		page     Page
		contains []string
	}{
		{
			name:     "index anonymous",
			template: "index.html",
			page:     Page{Data: posts},
			contains: []string{"hello", "first", "alice", "/static/uploads/cat.png", "Log in"},
		},
		{
			name:     "index authenticated with flash",
			template: "index.html",
			page: Page{
				Username: "alice",
				Flash:    &Flash{Level: LevelSuccess, Message: "You were successfully logged in."},
				Data:     posts,
			},
			contains: []string{"alice", "You were successfully logged in.", "Log out"},
		},
		{
			name:     "index empty feed",
			template: "index.html",
			page:     Page{},
			contains: []string{"No posts yet."},
		},
		{
			name:     "login",
			template: "login.html",
			page:     Page{Flash: &Flash{Level: LevelError, Message: "Invalid username or password."}},
			contains: []string{"Invalid username or password.", `name="username"`, `name="password"`},
		},
		{
			name:     "signup",
			template: "signup.html",
			page:     Page{},
			contains: []string{`name="image_file"`, "multipart/form-data"},
		},
		{
			name:     "dashboard",
			template: "dashboard.html",
			page: Page{
				Username: "alice",
				Data: &models.Dashboard{
					Username:   "alice",
					ProfilePic: models.DefaultProfilePic,
					PostCount:  1,
					Posts:      []models.PostDB{{ID: 1, Username: "alice", Content: "mine"}},
				},
			},
			contains: []string{"alice", models.DefaultProfilePic, "mine", "1 post(s)"},
		},
		{
			name:     "post form",
			template: "post.html",
			page:     Page{Username: "alice"},
			contains: []string{`name="content"`, `name="image"`, `name="image_file"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			rn.Render(rr, http.StatusOK, tt.template, tt.page)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
			for _, want := range tt.contains {
				assert.Contains(t, rr.Body.String(), want)
			}
		})
	}
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	rn, err := NewRenderer()
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	rn.Render(rr, http.StatusOK, "missing.html", Page{})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
