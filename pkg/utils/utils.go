package utils

import (
	"time"

	"github.com/benedict-erwin/shop-directory/pkg/logger"
)

// Timestamp layout used by every stored document ("2024-01-31 18:04:05")
const DateTimeLayout = "2006-01-02 15:04:05"

var appLocation = time.UTC

// InitTimezone sets the application timezone, falling back to UTC
func InitTimezone(timezone string) error {
	if timezone == "" {
		appLocation = time.UTC
		return nil
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Error().Err(err).Str("timezone", timezone).Msg("Failed to load timezone, using UTC")
		appLocation = time.UTC
		return err
	}

	appLocation = loc
	logger.Info().Str("timezone", timezone).Msg("Timezone initialized")
	return nil
}

// Now returns current time in application timezone
func Now() time.Time {
	return time.Now().In(appLocation)
}

// NowFormatted returns current time formatted in RFC3339 with app timezone
func NowFormatted() string {
	return Now().Format(time.RFC3339)
}

// NowStamp returns the current time in DateTimeLayout
func NowStamp() string {
	return Now().Format(DateTimeLayout)
}

// ParseStamp parses a DateTimeLayout value in the application timezone
func ParseStamp(s string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, s, appLocation)
}

// GetLocation returns the current application location
func GetLocation() *time.Location {
	return appLocation
}
