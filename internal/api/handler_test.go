package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/orgball2608/zex-pages/internal/bulk"
	mock_bulk "github.com/orgball2608/zex-pages/internal/bulk/mocks"
	"github.com/orgball2608/zex-pages/internal/domain"
	mock_settings "github.com/orgball2608/zex-pages/internal/repositories/settings/mocks"
	"github.com/orgball2608/zex-pages/internal/responder"
	mock_responder "github.com/orgball2608/zex-pages/internal/responder/mocks"
	"github.com/orgball2608/zex-pages/pkg/config"
	pkgerrors "github.com/orgball2608/zex-pages/pkg/errors"
	"github.com/orgball2608/zex-pages/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testAPI struct {
	router    http.Handler
	responder *mock_responder.MockClient
	bulk      *mock_bulk.MockClient
	settings  *mock_settings.MockRepository
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Graph.PageID = "page-1"

	a := &testAPI{
		responder: mock_responder.NewMockClient(ctrl),
		bulk:      mock_bulk.NewMockClient(ctrl),
		settings:  mock_settings.NewMockRepository(ctrl),
	}
	h := NewHandler(Opts{
		Responder:    a.responder,
		Bulk:         a.bulk,
		SettingsRepo: a.settings,
		Logger:       logger.Nop(),
		Config:       cfg,
	})
	a.router = NewRouter(h, logger.Nop())
	return a
}

func (a *testAPI) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", decode(t, rec)["status"])
}

func TestMarkDone(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := newTestAPI(t)
		a.responder.EXPECT().MarkDone(gomock.Any(), "c1").Return(nil)

		rec := a.do(http.MethodPost, "/inbox/c1/done", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown item", func(t *testing.T) {
		a := newTestAPI(t)
		a.responder.EXPECT().MarkDone(gomock.Any(), "nope").Return(pkgerrors.ErrNotFound)

		rec := a.do(http.MethodPost, "/inbox/nope/done", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "not_found", body["error"].(map[string]any)["code"])
	})
}

func TestManualReply(t *testing.T) {
	t.Run("sends message", func(t *testing.T) {
		a := newTestAPI(t)
		a.responder.EXPECT().ManualReply(gomock.Any(), "m1", "see you soon").Return(nil)

		rec := a.do(http.MethodPost, "/inbox/m1/reply", `{"message":"see you soon"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("empty message rejected before send", func(t *testing.T) {
		a := newTestAPI(t)

		rec := a.do(http.MethodPost, "/inbox/m1/reply", `{"message":"   "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		a := newTestAPI(t)

		rec := a.do(http.MethodPost, "/inbox/m1/reply", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty body", func(t *testing.T) {
		a := newTestAPI(t)

		rec := a.do(http.MethodPost, "/inbox/m1/reply", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, errEmptyBody.Error(), decode(t, rec)["error"].(map[string]any)["message"])
	})

	t.Run("send failure maps to bad gateway", func(t *testing.T) {
		a := newTestAPI(t)
		a.responder.EXPECT().ManualReply(gomock.Any(), "m1", "hi").
			Return(pkgerrors.WrapWithCode(pkgerrors.ErrUpstream, pkgerrors.CodeSend, "failed to send reply"))

		rec := a.do(http.MethodPost, "/inbox/m1/reply", `{"message":"hi"}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestRunPass(t *testing.T) {
	a := newTestAPI(t)
	a.responder.EXPECT().RunPass(gomock.Any()).Return(responder.BatchResult{
		Handled: map[string]struct{}{"b": {}, "a": {}},
	}, nil)

	rec := a.do(http.MethodPost, "/responder/run", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, []any{"a", "b"}, data["handled"])
	assert.Equal(t, false, data["skipped"])
}

func TestRunPassStorageFailure(t *testing.T) {
	a := newTestAPI(t)
	a.responder.EXPECT().RunPass(gomock.Any()).
		Return(responder.BatchResult{}, pkgerrors.WrapWithCode(errors.New("db down"), pkgerrors.CodeStorage, "failed to load inbox"))

	rec := a.do(http.MethodPost, "/responder/run", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSyncInbox(t *testing.T) {
	a := newTestAPI(t)
	a.responder.EXPECT().SyncInbox(gomock.Any()).Return(int64(3), nil)

	rec := a.do(http.MethodPost, "/inbox/sync", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, decode(t, rec)["data"].(map[string]any)["added"])
}

func TestSettings(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		a := newTestAPI(t)
		a.settings.EXPECT().Get(gomock.Any(), "page-1").Return(domain.AutoResponderSettings{
			Rules:    []domain.AutoResponderRule{},
			Fallback: domain.DefaultFallback(),
		}, nil)

		rec := a.do(http.MethodGet, "/responder/settings", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("save migrates and wakes the loop", func(t *testing.T) {
		a := newTestAPI(t)
		a.settings.EXPECT().Save(gomock.Any(), "page-1", gomock.Any()).
			DoAndReturn(func(_ any, _ string, s domain.AutoResponderSettings) error {
				assert.Equal(t, domain.FallbackOff, s.Fallback.Mode)
				return nil
			})
		a.responder.EXPECT().Notify()

		rec := a.do(http.MethodPut, "/responder/settings", `{"rules":[]}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("save rejects non-object", func(t *testing.T) {
		a := newTestAPI(t)

		rec := a.do(http.MethodPut, "/responder/settings", `"rules"`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBulkBatch(t *testing.T) {
	a := newTestAPI(t)
	items := []domain.BulkPostItem{{ID: "p1", Text: "hello"}}
	a.bulk.EXPECT().Batch(gomock.Any()).Return(items, nil)

	rec := a.do(http.MethodGet, "/bulk/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBulkSave(t *testing.T) {
	a := newTestAPI(t)
	a.bulk.EXPECT().SaveBatch(gomock.Any(), gomock.Len(2)).
		DoAndReturn(func(_ any, items []domain.BulkPostItem) ([]domain.BulkPostItem, error) {
			return items, nil
		})

	rec := a.do(http.MethodPut, "/bulk/", `[{"text":"a"},{"text":"b"}]`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRedistribute(t *testing.T) {
	t.Run("weekly", func(t *testing.T) {
		a := newTestAPI(t)
		a.bulk.EXPECT().RedistributeBatch(gomock.Any(), domain.StrategyWeekly,
			domain.WeeklyScheduleSettings{Days: []int{1, 3}, Time: "09:30"}, []string{"p1"}).
			Return([]domain.BulkPostItem{{ID: "p1"}}, nil)

		rec := a.do(http.MethodPost, "/bulk/redistribute",
			`{"strategy":"weekly","weekly":{"days":[1,3],"time":"09:30"},"ids":["p1"]}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("weekly without days", func(t *testing.T) {
		a := newTestAPI(t)

		rec := a.do(http.MethodPost, "/bulk/redistribute", `{"strategy":"weekly","weekly":{"time":"09:30"}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		a := newTestAPI(t)

		rec := a.do(http.MethodPost, "/bulk/redistribute", `{"strategy":"random"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad time", func(t *testing.T) {
		a := newTestAPI(t)
		a.bulk.EXPECT().RedistributeBatch(gomock.Any(), domain.StrategyWeekly, gomock.Any(), gomock.Nil()).
			Return(nil, bulk.ErrInvalidTime)

		rec := a.do(http.MethodPost, "/bulk/redistribute", `{"strategy":"weekly","weekly":{"days":[2],"time":"9am"}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCommit(t *testing.T) {
	a := newTestAPI(t)
	a.bulk.EXPECT().CommitBatch(gomock.Any()).Return(bulk.CommitResult{Committed: 2, Failed: 1}, nil)

	rec := a.do(http.MethodPost, "/bulk/commit", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["data"].(map[string]any)["committed"])
}

func TestTargets(t *testing.T) {
	a := newTestAPI(t)
	a.bulk.EXPECT().Targets().Return([]domain.Target{{ID: "page-1", Name: "Zex", Platform: domain.PlatformFacebook}})

	rec := a.do(http.MethodGet, "/bulk/targets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decode(t, rec)["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "facebook", data[0].(map[string]any)["platform"])
}
