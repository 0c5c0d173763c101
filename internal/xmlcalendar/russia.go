package xmlcalendar

import (
	"go.uber.org/zap"

	"github.com/username/workcal/internal/calendar"
)

// NewRussianProvider returns a caching exceptions provider backed by the
// embedded Russian calendar dataset.
func NewRussianProvider(logger *zap.Logger) (*calendar.CachedProvider, error) {
	return calendar.NewCachedProvider(NewEmbedded(), logger)
}
