package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionManager(client, "test_session", time.Hour, false)
}

func TestSessionRoundTrip(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.SetUser("42")
	sess.Set("company", "ferrumtrans")

	rec := httptest.NewRecorder()
	if err := sm.Commit(ctx, rec, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "test_session" {
		t.Fatalf("expected session cookie, got %v", cookies)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookies[0])
	loaded, err := sm.Load(ctx, req2)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.User() != "42" {
		t.Fatalf("user not persisted: %q", loaded.User())
	}
	if loaded.Get("company") != "ferrumtrans" {
		t.Fatalf("value not persisted: %q", loaded.Get("company"))
	}
}

func TestSessionDestroy(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, _ := sm.Load(ctx, req)
	sess.SetUser("7")
	rec := httptest.NewRecorder()
	if err := sm.Commit(ctx, rec, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}
	cookie := rec.Result().Cookies()[0]

	sm.Destroy(sess)
	rec2 := httptest.NewRecorder()
	if err := sm.Commit(ctx, rec2, sess); err != nil {
		t.Fatalf("destroy commit: %v", err)
	}
	cleared := rec2.Result().Cookies()[0]
	if cleared.MaxAge != -1 {
		t.Fatalf("expected expired cookie, got MaxAge=%d", cleared.MaxAge)
	}

	req3 := httptest.NewRequest(http.MethodGet, "/", nil)
	req3.AddCookie(cookie)
	loaded, err := sm.Load(ctx, req3)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.User() != "" {
		t.Fatalf("session survived destroy: %q", loaded.User())
	}
}

func TestCSRFTokenLifecycle(t *testing.T) {
	sm := newTestManager(t)
	csrf := NewCSRFManager("secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, _ := sm.Load(context.Background(), req)

	token, err := csrf.EnsureToken(sess)
	if err != nil || token == "" {
		t.Fatalf("ensure token: %v %q", err, token)
	}
	again, _ := csrf.EnsureToken(sess)
	if again != token {
		t.Fatalf("token not stable: %q vs %q", token, again)
	}
	if err := csrf.VerifyToken(sess, token); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := csrf.VerifyToken(sess, "forged"); err == nil {
		t.Fatalf("forged token accepted")
	}
	if err := csrf.VerifyToken(nil, token); err == nil {
		t.Fatalf("nil session accepted")
	}
}
