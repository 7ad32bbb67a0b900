package store

import (
	"time"

	"github.com/buckleypaul/avrup/internal/avrdude"
)

// UploadRecord captures the result of an upload.
type UploadRecord struct {
	ID        string    `json:"id"`
	Board     string    `json:"board"`
	Port      string    `json:"port"`
	Firmware  string    `json:"firmware"`
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
	ExitCode  int       `json:"exit_code"`
	Duration  string    `json:"duration"`
	Error     string    `json:"error,omitempty"`
}

// NewUploadRecord builds a record for an upload that started at start.
func NewUploadRecord(req avrdude.Request, out avrdude.Outcome, start time.Time) UploadRecord {
	r := UploadRecord{
		Board:     req.Variant.String(),
		Port:      req.Port,
		Firmware:  req.Firmware,
		Timestamp: start,
		Success:   out.Succeeded,
		ExitCode:  out.ExitCode,
		Duration:  out.Duration.Round(time.Millisecond).String(),
	}
	if out.Err != nil {
		r.Error = out.Err.Error()
	}
	return r
}
