package graphimpl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/orgball2608/zex-pages/internal/graph"
	"github.com/orgball2608/zex-pages/pkg/config"
	pkgerrors "github.com/orgball2608/zex-pages/pkg/errors"
	"github.com/orgball2608/zex-pages/pkg/logger"
	"github.com/orgball2608/zex-pages/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GraphImpl {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Graph.BaseURL = srv.URL
	cfg.Graph.PageID = "PAGE"
	cfg.Graph.InstagramID = "IG"
	cfg.Graph.PageToken = "token"
	cfg.Graph.RequestsPerS = 1000
	cfg.Graph.Burst = 1000

	g := New(Opts{Config: cfg, Logger: logger.Nop()})
	g.retryCfg = retry.Config{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, Multiplier: 1}
	return g
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestSendPublicReply(t *testing.T) {
	g := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "token", r.PostForm.Get("access_token"))
		switch r.URL.Path {
		case "/C1/comments":
			assert.Equal(t, "السعر في الموقع", r.PostForm.Get("message"))
			writeJSON(w, http.StatusOK, map[string]string{"id": "R1"})
		case "/C2/replies":
			writeJSON(w, http.StatusOK, map[string]string{"id": "R2"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	res := g.SendPublicReply(context.Background(), domain.InboxItem{ID: "C1", Platform: domain.PlatformFacebook}, "السعر في الموقع")
	assert.Equal(t, graph.Success("R1"), res)

	res = g.SendPublicReply(context.Background(), domain.InboxItem{ID: "C2", Platform: domain.PlatformInstagram}, "hi")
	assert.Equal(t, graph.Success("R2"), res)
}

func TestSendPrivateReply(t *testing.T) {
	g := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "/IG/messages", r.URL.Path)
		assert.JSONEq(t, `{"comment_id":"C1"}`, r.PostForm.Get("recipient"))
		assert.JSONEq(t, `{"text":"check your inbox"}`, r.PostForm.Get("message"))
		writeJSON(w, http.StatusOK, map[string]string{"recipient_id": "U1", "message_id": "M1"})
	})

	res := g.SendPrivateReply(context.Background(), domain.InboxItem{ID: "C1", Platform: domain.PlatformInstagram}, "check your inbox")
	assert.True(t, res.OK)
	assert.Equal(t, "M1", res.ID)
}

func TestSendDirectMessageClassifiesErrors(t *testing.T) {
	g := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": map[string]any{"message": "Application request limit reached", "code": 4},
		})
	})

	res := g.SendDirectMessage(context.Background(), "U1", "hello", "T1")
	assert.False(t, res.OK)
	require.Error(t, res.Err)
	assert.True(t, pkgerrors.IsRateLimited(res.Err))

	var apiErr *APIError
	require.ErrorAs(t, res.Err, &apiErr)
	assert.Equal(t, 4, apiErr.Code)
}

func TestCheckCanReplyPrivatelyRetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	g := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "can_reply_privately", r.URL.Query().Get("fields"))
		if calls.Add(1) < 3 {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": map[string]any{"message": "boom", "code": 1}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"can_reply_privately": true})
	})

	ok, err := g.CheckCanReplyPrivately(context.Background(), domain.InboxItem{ID: "C1"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(3), calls.Load())
}

func TestCheckCanReplyPrivatelyDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	g := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": map[string]any{"message": "expired", "code": 190}})
	})

	ok, err := g.CheckCanReplyPrivately(context.Background(), domain.InboxItem{ID: "C1"})
	require.Error(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, err, pkgerrors.ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSchedulePost(t *testing.T) {
	at := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	g := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "/PAGE/photos", r.URL.Path)
		assert.Equal(t, "false", r.PostForm.Get("published"))
		assert.Equal(t, "1704189600", r.PostForm.Get("scheduled_publish_time"))
		assert.Equal(t, "https://cdn.example.com/a.jpg", r.PostForm.Get("url"))
		assert.Equal(t, "new collection", r.PostForm.Get("caption"))
		writeJSON(w, http.StatusOK, map[string]string{"id": "PH1", "post_id": "PAGE_P1"})
	})

	res := g.SchedulePost(context.Background(), graph.PublishRequest{
		Target:      domain.Target{ID: "PAGE", Platform: domain.PlatformFacebook},
		Text:        "new collection",
		ImageRef:    "https://cdn.example.com/a.jpg",
		ScheduledAt: at,
	})
	assert.Equal(t, graph.Success("PAGE_P1"), res)

	res = g.SchedulePost(context.Background(), graph.PublishRequest{
		Target: domain.Target{ID: "IG", Platform: domain.PlatformInstagram},
	})
	assert.False(t, res.OK)
	assert.ErrorIs(t, res.Err, ErrSchedulingUnsupported)
}

func TestFetchComments(t *testing.T) {
	g := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/PAGE/feed":
			writeJSON(w, http.StatusOK, map[string]any{"data": []any{
				map[string]any{"id": "PAGE_P1", "comments": map[string]any{"data": []any{
					map[string]any{"id": "C1", "message": "كم السعر؟", "from": map[string]string{"id": "U1", "name": "Ali"},
						"created_time": "2024-01-03T10:00:00+0000", "can_reply_privately": true},
					map[string]any{"id": "C2", "message": "old", "from": map[string]string{"id": "U2", "name": "Old"},
						"created_time": "2023-12-01T10:00:00+0000"},
					map[string]any{"id": "C3", "message": "thanks!", "from": map[string]string{"id": "PAGE", "name": "Page"},
						"created_time": "2024-01-03T11:00:00+0000"},
					map[string]any{"id": "C4", "message": "reply", "from": map[string]string{"id": "U3", "name": "Mona"},
						"created_time": "2024-01-03T12:00:00+0000", "parent": map[string]string{"id": "C1"}},
				}}},
			}})
		case "/IG/media":
			writeJSON(w, http.StatusOK, map[string]any{"data": []any{
				map[string]any{"id": "M1", "comments": map[string]any{"data": []any{
					map[string]any{"id": "IC1", "text": "price?", "from": map[string]string{"id": "IGU", "username": "sara"},
						"timestamp": "2024-01-03T10:00:00+0000"},
				}}},
			}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items, err := g.FetchComments(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "C1", items[0].ID)
	assert.Equal(t, "PAGE_P1", items[0].PostKey())
	assert.Equal(t, "Ali", items[0].AuthorName)
	assert.True(t, items[0].CanReplyPrivately)

	assert.Equal(t, "C4", items[1].ID)
	assert.Equal(t, "C1", items[1].ParentID)

	assert.Equal(t, "IC1", items[2].ID)
	assert.Equal(t, domain.PlatformInstagram, items[2].Platform)
	assert.Equal(t, "sara", items[2].AuthorName)
	assert.Equal(t, "price?", items[2].Text)
}

func TestFetchMessages(t *testing.T) {
	g := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/PAGE/conversations", r.URL.Path)
		if r.URL.Query().Get("platform") == "instagram" {
			writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{
			map[string]any{"id": "T1", "messages": map[string]any{"data": []any{
				map[string]any{"id": "m2", "message": "شكرًا", "from": map[string]string{"id": "PAGE"}, "created_time": "2024-01-03T10:05:00+0000"},
				map[string]any{"id": "m1", "message": "مرحبا", "from": map[string]string{"id": "U1", "name": "Ahmed"}, "created_time": "2024-01-03T10:00:00+0000"},
			}}},
		}})
	})

	items, err := g.FetchMessages(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.ItemTypeMessage, items[0].Type)
	assert.Equal(t, "T1", items[0].ConversationID)
	assert.Equal(t, "Ahmed", items[0].AuthorName)
	assert.Equal(t, domain.DMPostKey, items[0].PostKey())
}
