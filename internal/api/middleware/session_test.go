package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/menuhub/restaurant-api/internal/api/handler"
	"github.com/menuhub/restaurant-api/internal/core/ports"
)

type stubFactory struct {
	sess *stubSession
	err  error
}

func (f *stubFactory) Open(context.Context) (ports.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sess, nil
}

func (f *stubFactory) Ping(context.Context) error { return f.err }

func TestSessionMiddleware_ClosesAfterHandler(t *testing.T) {
	factory := &stubFactory{sess: &stubSession{}}
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	handlerErr := errors.New("boom")
	err := Session(factory, zerolog.Nop())(func(c echo.Context) error {
		sess, err := handler.SessionFrom(c)
		if err != nil {
			t.Fatalf("session missing: %v", err)
		}
		if sess.(*stubSession).closed {
			t.Fatal("session closed before handler returned")
		}
		return handlerErr
	})(c)

	if !errors.Is(err, handlerErr) {
		t.Fatalf("expected handler error, got %v", err)
	}
	if !factory.sess.closed {
		t.Fatal("session not closed")
	}
}

func TestSessionMiddleware_OpenFailure(t *testing.T) {
	factory := &stubFactory{err: errors.New("pool exhausted")}
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := Session(factory, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)
	if err == nil {
		t.Fatal("expected open error")
	}
}
