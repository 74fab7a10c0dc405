package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlash_SetAndPop(t *testing.T) {
	// First response sets the flash.
	rr := httptest.NewRecorder()
	SetFlash(rr, LevelSuccess, "You were successfully logged in.")

	cookies := rr.Result().Cookies()
	assert.Len(t, cookies, 1)

	// Next request carries the cookie and pops it.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rr2 := httptest.NewRecorder()

	flash := PopFlash(rr2, req)
	assert.NotNil(t, flash)
	assert.Equal(t, LevelSuccess, flash.Level)
	assert.Equal(t, "You were successfully logged in.", flash.Message)

	// Pop clears the cookie.
	cleared := rr2.Result().Cookies()
	assert.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
	assert.Empty(t, cleared[0].Value)
}

func TestFlash_MessageWithColon(t *testing.T) {
	rr := httptest.NewRecorder()
	SetFlash(rr, LevelError, "error: something went wrong")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rr.Result().Cookies()[0])

	flash := PopFlash(httptest.NewRecorder(), req)
	assert.NotNil(t, flash)
	assert.Equal(t, LevelError, flash.Level)
	assert.Equal(t, "error: something went wrong", flash.Message)
}

func TestPopFlash_NoCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	flash := PopFlash(httptest.NewRecorder(), req)
	assert.Nil(t, flash)
}

func TestPopFlash_GarbledCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: "%%%not-base64%%%"})

	flash := PopFlash(httptest.NewRecorder(), req)
	assert.Nil(t, flash)
}
