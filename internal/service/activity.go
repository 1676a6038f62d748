package service

import (
	"time"

	"github.com/mathieu-neron/cineshelf/internal/model"
)

// MergeActivity merges two event streams, each already sorted newest first,
// into one stream of at most limit events. Events order by timestamp
// descending with missing timestamps treated as the epoch, then by seq
// descending.
func MergeActivity(a, b []model.ActivityEvent, limit int) []model.ActivityEvent {
	out := make([]model.ActivityEvent, 0, min(limit, len(a)+len(b)))
	i, j := 0, 0
	for len(out) < limit && (i < len(a) || j < len(b)) {
		switch {
		case j >= len(b):
			out = append(out, a[i])
			i++
		case i >= len(a):
			out = append(out, b[j])
			j++
		case activityBefore(a[i], b[j]):
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	return out
}

// activityBefore reports whether x sorts ahead of y.
func activityBefore(x, y model.ActivityEvent) bool {
	tx, ty := eventTime(x), eventTime(y)
	if !tx.Equal(ty) {
		return tx.After(ty)
	}
	return x.Seq > y.Seq
}

func eventTime(e model.ActivityEvent) time.Time {
	if e.Timestamp == nil {
		return time.Unix(0, 0).UTC()
	}
	return *e.Timestamp
}
