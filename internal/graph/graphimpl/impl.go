package graphimpl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/orgball2608/zex-pages/internal/graph"
	"github.com/orgball2608/zex-pages/internal/ratelimit"
	"github.com/orgball2608/zex-pages/pkg/config"
	pkgerrors "github.com/orgball2608/zex-pages/pkg/errors"
	"github.com/orgball2608/zex-pages/pkg/logger"
	"github.com/orgball2608/zex-pages/pkg/retry"
	"go.uber.org/fx"
)

const graphTimeLayout = "2006-01-02T15:04:05-0700"

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type GraphImpl struct {
	httpClient  *http.Client
	baseURL     string
	pageID      string
	instagramID string
	token       string
	limiter     ratelimit.Limiter
	retryCfg    retry.Config
	logger      logger.Logger
}

func New(opts Opts) *GraphImpl {
	perSecond := opts.Config.Graph.RequestsPerS
	if perSecond <= 0 {
		perSecond = 5
	}
	burst := opts.Config.Graph.Burst
	if burst <= 0 {
		burst = 1
	}

	return &GraphImpl{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     strings.TrimSuffix(opts.Config.Graph.BaseURL, "/"),
		pageID:      opts.Config.Graph.PageID,
		instagramID: opts.Config.Graph.InstagramID,
		token:       opts.Config.Graph.PageToken,
		limiter:     ratelimit.NewInMemoryLimiter(int(perSecond*60), time.Minute, burst),
		retryCfg:    retry.DefaultConfig(),
		logger:      opts.Logger.WithComponent("GraphClient"),
	}
}

var _ graph.Client = (*GraphImpl)(nil)

// APIError is a non-2xx answer from the Graph API.
type APIError struct {
	Status  int
	Code    int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph api status %d code %d: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

func (e *APIError) temporary() bool {
	return e.Status >= http.StatusInternalServerError || errors.Is(e.kind, pkgerrors.ErrRateLimited)
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
		Subcode int    `json:"error_subcode"`
	} `json:"error"`
}

func classify(status int, body []byte) *APIError {
	var parsed apiErrorBody
	_ = json.Unmarshal(body, &parsed)

	e := &APIError{
		Status:  status,
		Code:    parsed.Error.Code,
		Message: parsed.Error.Message,
		kind:    pkgerrors.ErrUpstream,
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}

	switch {
	case status == http.StatusTooManyRequests, e.Code == 4, e.Code == 17, e.Code == 32, e.Code == 613:
		e.kind = pkgerrors.ErrRateLimited
	case status == http.StatusUnauthorized, e.Code == 190:
		e.kind = pkgerrors.ErrUnauthorized
	}
	return e
}

// call performs one request. Writes are form encoded, reads use the query string.
func (g *GraphImpl) call(ctx context.Context, method, path string, params url.Values, out any) error {
	if err := g.limiter.Wait(ctx, g.pageID); err != nil {
		return fmt.Errorf("graph rate limiter: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("access_token", g.token)

	endpoint := g.baseURL + "/" + strings.TrimPrefix(path, "/")
	var body io.Reader
	if method == http.MethodGet {
		endpoint += "?" + params.Encode()
	} else {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build graph request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", pkgerrors.ErrUpstream, err)
	}
	defer safeClose(resp.Body, g.logger)

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", pkgerrors.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classify(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode graph response: %w", err)
		}
	}
	return nil
}

// get retries idempotent reads on transient failures.
func (g *GraphImpl) get(ctx context.Context, path string, params url.Values, out any) error {
	operation := func() error {
		err := g.call(ctx, http.MethodGet, path, cloneValues(params), out)
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.temporary() {
			return retry.Permanent(err)
		}
		return err
	}
	return retry.Do(ctx, g.logger, "graph GET "+path, operation, g.retryCfg)
}

// post never retries: a duplicated write would be a duplicated reply.
func (g *GraphImpl) post(ctx context.Context, path string, params url.Values, out any) error {
	return g.call(ctx, http.MethodPost, path, params, out)
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

func safeClose(closer io.ReadCloser, logger logger.Logger) {
	if err := closer.Close(); err != nil {
		logger.Error("Error closing response body", "error", err)
	}
}

func jsonParam(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
