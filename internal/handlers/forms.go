package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
)

// maxMultipartMemory bounds in-memory multipart parsing; larger uploads
// spill to temporary files.
const maxMultipartMemory = 10 << 20 // 10 MiB

// ValidationError reports a missing required form field. Handlers turn it
// into a flash message on the re-rendered form, never into a 4xx page.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}

// LoginForm is the decoded login submission.
type LoginForm struct {
	Username string
	Password string
}

// DecodeLoginForm validates and decodes the login form.
func DecodeLoginForm(r *http.Request) (*LoginForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	form := &LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	if form.Username == "" {
		return nil, &ValidationError{Field: "username"}
	}
	if form.Password == "" {
		return nil, &ValidationError{Field: "password"}
	}
	return form, nil
}

// SignupForm is the decoded signup submission. Avatar is nil when no file
// was attached; the caller owns closing it.
type SignupForm struct {
	Username   string
	Password   string
	AvatarName string
	Avatar     multipart.File
}

// DecodeSignupForm validates and decodes the signup form, including the
// optional avatar upload.
func DecodeSignupForm(r *http.Request) (*SignupForm, error) {
	if err := parseAnyForm(r); err != nil {
		return nil, err
	}

	form := &SignupForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	if form.Username == "" {
		return nil, &ValidationError{Field: "username"}
	}
	if form.Password == "" {
		return nil, &ValidationError{Field: "password"}
	}

	file, header, err := r.FormFile("image_file")
	switch {
	case err == nil:
		form.Avatar = file
		form.AvatarName = header.Filename
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// Optional field.
	default:
		return nil, err
	}

	return form, nil
}

// PostForm is the decoded post submission. Image is nil when no file was
// attached; the caller owns closing it.
type PostForm struct {
	Content   string
	ImageURL  string
	ImageName string
	Image     multipart.File
}

// DecodePostForm validates and decodes the post-composition form.
func DecodePostForm(r *http.Request) (*PostForm, error) {
	if err := parseAnyForm(r); err != nil {
		return nil, err
	}

	form := &PostForm{
		Content:  strings.TrimSpace(r.PostFormValue("content")),
		ImageURL: strings.TrimSpace(r.PostFormValue("image")),
	}
	if form.Content == "" {
		return nil, &ValidationError{Field: "content"}
	}

	file, header, err := r.FormFile("image_file")
	switch {
	case err == nil:
		form.Image = file
		form.ImageName = header.Filename
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// Optional field.
	default:
		return nil, err
	}

	return form, nil
}

// parseAnyForm accepts both multipart and urlencoded submissions.
func parseAnyForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxMultipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}
