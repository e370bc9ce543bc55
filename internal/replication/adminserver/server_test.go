package adminserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeRunner struct{ running bool }

func (f *fakeRunner) IsRunning() bool { return f.running }

func TestHealthzAllRunning(t *testing.T) {
	s := New([]Runner{&fakeRunner{running: true}, &fakeRunner{running: true}}, func() {})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	s.httpServer.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthzOneDown(t *testing.T) {
	s := New([]Runner{&fakeRunner{running: true}, &fakeRunner{running: false}}, func() {})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	s.httpServer.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestShutdownRejectsGet(t *testing.T) {
	s := New(nil, func() {})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/shutdown", nil)
	s.httpServer.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestShutdownInvokesCallbackOnPost(t *testing.T) {
	called := make(chan struct{})
	s := New(nil, func() { close(called) })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/shutdown", nil)
	s.httpServer.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	<-called
}
