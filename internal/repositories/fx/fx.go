package fx

import (
	"github.com/orgball2608/zex-pages/internal/repositories/bulkpost"
	"github.com/orgball2608/zex-pages/internal/repositories/inbox"
	"github.com/orgball2608/zex-pages/internal/repositories/replied"
	"github.com/orgball2608/zex-pages/internal/repositories/scheduledpost"
	"github.com/orgball2608/zex-pages/internal/repositories/settings"
	"go.uber.org/fx"
)

var Module = fx.Options(
	inbox.Module,
	settings.Module,
	replied.Module,
	scheduledpost.Module,
	bulkpost.Module,
)
