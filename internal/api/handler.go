package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/orgball2608/zex-pages/internal/bulk"
	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/orgball2608/zex-pages/internal/repositories/settings"
	"github.com/orgball2608/zex-pages/internal/responder"
	"github.com/orgball2608/zex-pages/pkg/config"
	"github.com/orgball2608/zex-pages/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Responder    responder.Client
	Bulk         bulk.Client
	SettingsRepo settings.Repository
	Logger       logger.Logger
	Config       *config.Config
}

type Handler struct {
	responder responder.Client
	bulk      bulk.Client
	settings  settings.Repository
	logger    logger.Logger
	validate  *validator.Validate
	pageID    string
}

func NewHandler(opts Opts) *Handler {
	return &Handler{
		responder: opts.Responder,
		bulk:      opts.Bulk,
		settings:  opts.SettingsRepo,
		logger:    opts.Logger.WithComponent("API"),
		validate:  newValidator(),
		pageID:    opts.Config.Graph.PageID,
	}
}

type replyRequest struct {
	Message string `json:"message" validate:"nonblank"`
}

type passResponse struct {
	Handled []string `json:"handled"`
	Skipped bool     `json:"skipped"`
}

type syncResponse struct {
	Added int64 `json:"added"`
}

type redistributeRequest struct {
	Strategy domain.Strategy               `json:"strategy" validate:"oneof=even weekly"`
	Weekly   domain.WeeklyScheduleSettings `json:"weekly"`
	IDs      []string                      `json:"ids" validate:"omitempty,dive,required"`
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := mapError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, r, status, code, err.Error())
}

func (h *Handler) markDone(w http.ResponseWriter, r *http.Request) {
	if err := h.responder.MarkDone(r.Context(), chi.URLParam(r, "item_id")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

func (h *Handler) manualReply(w http.ResponseWriter, r *http.Request) {
	var req replyRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	if err := h.responder.ManualReply(r.Context(), chi.URLParam(r, "item_id"), req.Message); err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

func (h *Handler) syncInbox(w http.ResponseWriter, r *http.Request) {
	added, err := h.responder.SyncInbox(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, syncResponse{Added: added})
}

func (h *Handler) runPass(w http.ResponseWriter, r *http.Request) {
	res, err := h.responder.RunPass(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, passResponse{Handled: res.HandledIDs(), Skipped: res.Skipped})
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get(r.Context(), h.pageID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, s)
}

func (h *Handler) saveSettings(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	// Accept older client payloads too.
	s, err := settings.Migrate(raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.settings.Save(r.Context(), h.pageID, s); err != nil {
		h.fail(w, r, err)
		return
	}

	h.responder.Notify()
	writeSuccess(w, http.StatusOK, s)
}

func (h *Handler) getBatch(w http.ResponseWriter, r *http.Request) {
	items, err := h.bulk.Batch(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, items)
}

func (h *Handler) saveBatch(w http.ResponseWriter, r *http.Request) {
	var items []domain.BulkPostItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	saved, err := h.bulk.SaveBatch(r.Context(), items)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, saved)
}

func (h *Handler) targets(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, h.bulk.Targets())
}

func (h *Handler) redistribute(w http.ResponseWriter, r *http.Request) {
	var req redistributeRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	if req.Strategy == domain.StrategyWeekly && len(req.Weekly.Days) == 0 {
		writeError(w, r, http.StatusBadRequest, "invalid_input", "select at least one weekday")
		return
	}

	items, err := h.bulk.RedistributeBatch(r.Context(), req.Strategy, req.Weekly, req.IDs)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, items)
}

func (h *Handler) commit(w http.ResponseWriter, r *http.Request) {
	res, err := h.bulk.CommitBatch(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}
