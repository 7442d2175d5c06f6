package utils

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata" // keep Asia/Kolkata resolvable on hosts without a zoneinfo database

	"pawcare/config"

	"go.uber.org/zap"
)

// istOffset is Asia/Kolkata's fixed offset; used only if the zone cannot be loaded.
const istOffset = 5*60*60 + 30*60

var (
	appLocation *time.Location
	tzOnce      sync.Once
)

// InitTimezone loads the application zone named by APP_TIMEZONE. Only the first call
// has an effect.
func InitTimezone() {
	tzOnce.Do(loadTimezone)
}

func loadTimezone() {
	name := config.AppConfig.AppTimezone
	if name == "" {
		name = "Asia/Kolkata"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		GetLogger().Error("failed to load timezone, falling back to IST fixed offset",
			zap.String("timezone", name), zap.Error(err))
		loc = time.FixedZone("IST", istOffset)
	}
	appLocation = loc
}

// Location returns the civil calendar zone used for dates and times of day.
func Location() *time.Location {
	InitTimezone()
	return appLocation
}

// Now returns the current time in the application zone.
func Now() time.Time {
	return time.Now().In(Location())
}

// ParseDate parses a "YYYY-MM-DD" civil date at midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return t, nil
}
