package graphimpl

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/orgball2608/zex-pages/internal/graph"
)

// ErrSchedulingUnsupported is returned for destinations without native scheduling.
var ErrSchedulingUnsupported = errors.New("platform does not support scheduled publishing")

// SchedulePost creates an unpublished page post that the platform publishes at ScheduledAt.
func (g *GraphImpl) SchedulePost(ctx context.Context, req graph.PublishRequest) graph.Result {
	if req.Target.Platform != domain.PlatformFacebook {
		return graph.Failure(ErrSchedulingUnsupported)
	}

	params := url.Values{
		"published":              {"false"},
		"scheduled_publish_time": {strconv.FormatInt(req.ScheduledAt.Unix(), 10)},
	}

	path := req.Target.ID + "/feed"
	if req.ImageRef != "" {
		path = req.Target.ID + "/photos"
		params.Set("url", req.ImageRef)
		params.Set("caption", req.Text)
	} else {
		params.Set("message", req.Text)
	}

	var resp struct {
		ID     string `json:"id"`
		PostID string `json:"post_id"`
	}
	if err := g.post(ctx, path, params, &resp); err != nil {
		g.logger.Error("Schedule post failed", "targetID", req.Target.ID, "scheduledAt", req.ScheduledAt, "error", err)
		return graph.Failure(err)
	}

	id := resp.PostID
	if id == "" {
		id = resp.ID
	}
	g.logger.Info("Post scheduled", "targetID", req.Target.ID, "postID", id, "scheduledAt", req.ScheduledAt)
	return graph.Success(id)
}
