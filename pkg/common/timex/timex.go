package timex

import (
	"time"

	"github.com/dustin/go-humanize"
)

const HumanLayout = "2006-01-02 15:04:05"

func Human(value time.Time) string {
	return value.Format(HumanLayout)
}

// HumanRelative is like Human but also tells how long ago the time was.
func HumanRelative(value time.Time) string {
	return Human(value) + " (" + humanize.Time(value) + ")"
}
