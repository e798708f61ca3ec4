package dashboard

import (
	"context"
	"time"

	"github.com/klinik/klinik/pkg/caldate"
)

type Repository interface {
	// Stats counts the day's appointments and the lab tests completed at or
	// after since.
	Stats(ctx context.Context, day caldate.Date, since time.Time) (*Stats, error)
	// RecentEvents returns at most limit events across all sources, newest
	// first.
	RecentEvents(ctx context.Context, limit int) ([]*Event, error)
}
