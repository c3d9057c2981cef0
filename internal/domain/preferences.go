package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Frequency controls on which days a digest is delivered.
type Frequency string

// Supported delivery frequencies.
const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekdays Frequency = "weekdays"
	FrequencyCustom   Frequency = "custom"
)

// deliveryTimePattern accepts whole hours, "00:00" through "23:00".
var deliveryTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):00$`)

// Preferences records when a user wants to receive their digest.
// CustomDays holds weekday numbers (0 = Sunday) and is only kept for
// FrequencyCustom.
type Preferences struct {
	UserID       string
	DeliveryTime string
	Timezone     string
	Frequency    Frequency
	CustomDays   []int
	CreatedAt    time.Time
}

// Validate checks the preferences and clears CustomDays for non-custom frequencies.
func (p *Preferences) Validate() error {
	fields := make(map[string]string)

	if !deliveryTimePattern.MatchString(p.DeliveryTime) {
		fields["deliveryTime"] = "must be a whole hour between 00:00 and 23:00"
	}

	if p.Timezone == "" {
		fields["timezone"] = "Timezone is required"
	} else if _, err := time.LoadLocation(p.Timezone); err != nil {
		fields["timezone"] = fmt.Sprintf("unknown timezone %q", p.Timezone)
	}

	switch p.Frequency {
	case FrequencyDaily, FrequencyWeekdays:
		p.CustomDays = nil
	case FrequencyCustom:
		if len(p.CustomDays) == 0 {
			fields["customDays"] = "at least one day is required for a custom schedule"
		}

		for _, d := range p.CustomDays {
			if d < 0 || d > 6 {
				fields["customDays"] = "days must be between 0 (Sunday) and 6 (Saturday)"
				break
			}
		}
	default:
		fields["frequency"] = "must be one of: daily weekdays custom"
	}

	if len(fields) > 0 {
		return NewValidationErrorWithFields("invalid preferences", fields)
	}

	return nil
}
