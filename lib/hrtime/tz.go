package hrtime

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

type TimeZoneOffset int32

const (
	hourInMinutes                       = 3600
	TzUtc0Offset         TimeZoneOffset = 0
	TzUtc8Offset         TimeZoneOffset = 8 * hourInMinutes
	TzAsiaShanghaiOffset TimeZoneOffset = TzUtc8Offset
)

var (
	defaultTimezoneOffset int32
	appStartTime          time.Time
	tzLocations           sync.Map // TimeZoneOffset -> *time.Location
)

func DefaultTimezoneOffset() int {
	return int(atomic.LoadInt32(&defaultTimezoneOffset))
}

func SetDefaultTimezoneOffset(tz TimeZoneOffset) {
	atomic.StoreInt32(&defaultTimezoneOffset, int32(tz))
}

// loadTZLocation resolves a fixed timezone for the given offset in
// seconds east of UTC. Locations are cached, time.In only borrows them.
func loadTZLocation(offset TimeZoneOffset) *time.Location {
	if offset == TzUtc0Offset {
		return time.UTC
	}
	if loc, ok := tzLocations.Load(offset); ok {
		return loc.(*time.Location)
	}
	loc := time.FixedZone(fmt.Sprintf("UTC%+d", int(offset)/hourInMinutes), int(offset))
	tzLocations.Store(offset, loc)
	return loc
}
