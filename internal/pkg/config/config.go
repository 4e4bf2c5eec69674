package config

import (
	"io"
	"time"
)

// TimeConfig reads duration values stored as plain integers in the given unit.
type TimeConfig interface {
	// GetSecond returns the value for key interpreted as seconds.
	GetSecond(key string) time.Duration

	// GetMinute returns the value for key interpreted as minutes.
	GetMinute(key string) time.Duration

	// GetDay returns the value for key interpreted as days (24h).
	GetDay(key string) time.Duration
}

// IntConfig reads signed integer values.
type IntConfig interface {
	// GetInt returns the value for key as an int, or the zero value when the
	// key is missing or not convertible.
	GetInt(key string) int

	// GetInt32 returns the value for key as an int32.
	GetInt32(key string) int32

	// GetInt64 returns the value for key as an int64.
	GetInt64(key string) int64
}

// Config reads typed configuration values. Implementations decide how missing
// or malformed keys are handled; the Viper implementation returns zero values.
type Config interface {
	io.Closer
	TimeConfig
	IntConfig

	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64

	// GetBool returns the value for key as a bool.
	GetBool(key string) bool

	// GetString returns the value for key as a string.
	GetString(key string) string

	// GetBinary returns the value for key decoded from base64.
	GetBinary(key string) []byte

	// GetArray returns the value for key as a string slice. Scalar values in
	// the form <a>,<b>,... are split on commas.
	GetArray(key string) []string
}
