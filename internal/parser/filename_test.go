package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordingFilename(t *testing.T) {
	info, err := ParseRecordingFilename("202409230014_何雨達_封口機_1008_1416.mp3")
	require.NoError(t, err)

	assert.Equal(t, "202409230014", info.Code)
	assert.Equal(t, "0014", info.ShortCode)
	assert.Equal(t, "何雨達", info.Salesperson)
	assert.Equal(t, "封口機", info.Product)

	assert.Equal(t, 2024, info.RegisteredAt.Year())
	assert.Equal(t, time.September, info.RegisteredAt.Month())
	assert.Equal(t, 23, info.RegisteredAt.Day())

	assert.Equal(t, 2025, info.CallTime.Year())
	assert.Equal(t, time.October, info.CallTime.Month())
	assert.Equal(t, 8, info.CallTime.Day())
	assert.Equal(t, 14, info.CallTime.Hour())
	assert.Equal(t, 16, info.CallTime.Minute())
}

func TestParseRecordingFilename_RoundTrip(t *testing.T) {
	names := []string{
		"202409230014_何雨達_封口機_1008_1416.mp3",
		"202501050001_林志成_水餃機_0101_0000.wav",
		"202512319999_張三_真空包裝機_1231_2359.m4a",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			info, err := ParseRecordingFilename(name)
			require.NoError(t, err)

			code, callDate, callTime := info.EncodeSegments()
			assert.Equal(t, info.Code, code)
			assert.Contains(t, name, "_"+callDate+"_")
			assert.Contains(t, name, "_"+callTime+".")
		})
	}
}

func TestParseRecordingFilename_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"too few segments", "202409230014_何雨達_1008_1416.mp3"},
		{"too many segments", "202409230014_何雨達_封口機_extra_1008_1416.mp3"},
		{"short customer code", "2024092314_何雨達_封口機_1008_1416.mp3"},
		{"non-digit customer code", "20240923001x_何雨達_封口機_1008_1416.mp3"},
		{"non-digit call date", "202409230014_何雨達_封口機_10a8_1416.mp3"},
		{"non-digit call time", "202409230014_何雨達_封口機_1008_14x6.mp3"},
		{"short call time", "202409230014_何雨達_封口機_1008_141.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecordingFilename(tt.filename)
			assert.ErrorIs(t, err, ErrBadFilename)
		})
	}
}
