package bulkimpl

import (
	"strings"

	"github.com/orgball2608/zex-pages/internal/domain"
)

const (
	errMissingImage = "image is required"
	errMissingDate  = "schedule date is required"
	errNoTarget     = "select at least one account"
)

// Validate returns a copy of items with Error set on the ones that cannot be committed.
func Validate(items []domain.BulkPostItem) []domain.BulkPostItem {
	out := cloneItems(items)
	for i := range out {
		out[i].Error = validationError(out[i])
	}
	return out
}

func validationError(it domain.BulkPostItem) string {
	switch {
	case strings.TrimSpace(it.ImageRef) == "":
		return errMissingImage
	case it.ScheduleDate == nil:
		return errMissingDate
	case len(it.TargetIDs) == 0:
		return errNoTarget
	}
	return ""
}
