package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"crm-insights/pkg/utils"
)

// ErrBadFilename is returned for any recording filename that does not match
// the fixed 5-segment convention. No recovery; the caller must reject the file.
var ErrBadFilename = errors.New("recording filename does not match {code}_{name}_{product}_{MMDD}_{HHMM}")

// Recording filenames omit the call year.
const defaultCallYear = 2025

// RecordingInfo is the decoded positional encoding of a recording filename:
// {12-digit code}_{salesperson}_{product}_{MMDD}_{HHMM}.{ext}
type RecordingInfo struct {
	Code         string
	ShortCode    string
	Salesperson  string
	Product      string
	RegisteredAt time.Time
	CallTime     time.Time
}

// ParseRecordingFilename decodes the fixed 5-segment convention. The 12-digit
// code carries the registration date plus a per-day sequence; the trailing
// segments carry call month/day and hour/minute.
func ParseRecordingFilename(name string) (*RecordingInfo, error) {
	parts := strings.Split(name, "_")
	if len(parts) != 5 {
		return nil, fmt.Errorf("%w: got %d segments", ErrBadFilename, len(parts))
	}

	last := parts[4]
	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}

	code := parts[0]
	if len(code) != 12 || !allDigits(code) {
		return nil, fmt.Errorf("%w: bad customer code %q", ErrBadFilename, code)
	}
	if len(parts[3]) != 4 || !allDigits(parts[3]) {
		return nil, fmt.Errorf("%w: bad call date %q", ErrBadFilename, parts[3])
	}
	if len(last) != 4 || !allDigits(last) {
		return nil, fmt.Errorf("%w: bad call time %q", ErrBadFilename, last)
	}

	loc := utils.GetTaipeiLocation()

	regYear, _ := strconv.Atoi(code[0:4])
	regMonth, _ := strconv.Atoi(code[4:6])
	regDay, _ := strconv.Atoi(code[6:8])

	callMonth, _ := strconv.Atoi(parts[3][0:2])
	callDay, _ := strconv.Atoi(parts[3][2:4])
	callHour, _ := strconv.Atoi(last[0:2])
	callMinute, _ := strconv.Atoi(last[2:4])

	return &RecordingInfo{
		Code:         code,
		ShortCode:    code[8:12],
		Salesperson:  parts[1],
		Product:      parts[2],
		RegisteredAt: time.Date(regYear, time.Month(regMonth), regDay, 0, 0, 0, 0, loc),
		CallTime:     time.Date(defaultCallYear, time.Month(callMonth), callDay, callHour, callMinute, 0, 0, loc),
	}, nil
}

// EncodeSegments re-emits the numeric filename segments. Decoding a valid
// filename and encoding again round-trips.
func (r *RecordingInfo) EncodeSegments() (code, callDate, callTime string) {
	code = fmt.Sprintf("%04d%02d%02d%s",
		r.RegisteredAt.Year(), r.RegisteredAt.Month(), r.RegisteredAt.Day(), r.ShortCode)
	callDate = fmt.Sprintf("%02d%02d", r.CallTime.Month(), r.CallTime.Day())
	callTime = fmt.Sprintf("%02d%02d", r.CallTime.Hour(), r.CallTime.Minute())
	return code, callDate, callTime
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
