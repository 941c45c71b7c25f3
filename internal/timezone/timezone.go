package timezone

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const DefaultTimezone = "UTC"

// Now is replaceable in tests.
var Now = time.Now

func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

// ForBusiness resolves the business's official timezone, UTC when unset or invalid.
func ForBusiness(b *models.Business) *time.Location {
	if b == nil {
		return time.UTC
	}
	return Location(b.Timezone)
}

func NowIn(tz string) time.Time {
	return Now().In(Location(tz))
}
