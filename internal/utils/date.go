package utils

import (
	"strings"
	"time"

	"github.com/fairyhunter13/product-analytics/internal/errs"
)

// DateLayout is the canonical calendar day format used as a sort key.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	time.RFC3339,
	"02 Jan 2006",
	"Jan 2, 2006",
}

// ParseDate accepts the common calendar formats above and returns the
// parsed time, or a validation error naming the input.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.NewInvalid("parse_date", s, "unrecognised date format")
}
