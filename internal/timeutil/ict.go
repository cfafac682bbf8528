package timeutil

import (
	"time"
)

// ICT is the Indochina Time location (UTC+7) used across the operation.
var ICT *time.Location

func init() {
	var err error
	ICT, err = time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		// Fallback: create fixed zone if Asia/Ho_Chi_Minh not available
		ICT = time.FixedZone("ICT", 7*60*60) // UTC+7
	}
}

// Now returns the current time in ICT.
func Now() time.Time {
	return time.Now().In(ICT)
}

// ToICT converts any time to ICT.
func ToICT(t time.Time) time.Time {
	return t.In(ICT)
}

// Common layouts for ICT formatting
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)
