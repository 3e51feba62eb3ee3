package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"SlideInk/internal/ink"
)

// Config is the runtime configuration, read from the environment.
type Config struct {
	SlidesDir  string
	DBPath     string
	ExportDir  string
	RemotePort int // 0 disables the remote pen server
	MDNS       bool
	Input      string // "stylus" or "mouse"
	Space      ink.Space
	Fit        ink.Fit
	Decimation float64
	EraseRad   float64
	Mode       ink.Mode // mode the overlay starts in
	Debug      bool
}

// Load reads the configuration from SLIDEINK_* environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		SlidesDir:  getEnv("SLIDEINK_SLIDES", "slides"),
		DBPath:     getEnv("SLIDEINK_DB", "data/slideink.db"),
		ExportDir:  getEnv("SLIDEINK_EXPORT_DIR", "export"),
		RemotePort: getEnvAsInt("SLIDEINK_REMOTE_PORT", 8888),
		MDNS:       getEnvAsBool("SLIDEINK_MDNS", true),
		Input:      getEnv("SLIDEINK_INPUT", "mouse"),
		Decimation: getEnvAsFloat("SLIDEINK_DECIMATION", ink.DefaultMinDistance),
		EraseRad:   getEnvAsFloat("SLIDEINK_ERASE_RADIUS", ink.DefaultEraseRadius),
		Debug:      getEnvAsBool("SLIDEINK_DEBUG", false),
	}

	space, err := ParseSpace(getEnv("SLIDEINK_SPACE", "2560x1440"))
	if err != nil {
		return nil, err
	}
	cfg.Space = space

	fit, ok := ink.ParseFit(getEnv("SLIDEINK_FIT", "stretch"))
	if !ok {
		return nil, fmt.Errorf("SLIDEINK_FIT: want stretch or contain")
	}
	cfg.Fit = fit

	mode, err := ink.ParseMode(getEnv("SLIDEINK_MODE", "inert"))
	if err != nil {
		return nil, fmt.Errorf("SLIDEINK_MODE: %w", err)
	}
	cfg.Mode = mode

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that Load cannot fix up by itself. Zero decimation
// and erase radius select the engine defaults and are filled in first.
func (c *Config) Validate() error {
	if c.Decimation == 0 {
		c.Decimation = ink.DefaultMinDistance
	}
	if c.EraseRad == 0 {
		c.EraseRad = ink.DefaultEraseRadius
	}
	if c.Input != "stylus" && c.Input != "mouse" {
		return fmt.Errorf("SLIDEINK_INPUT: want stylus or mouse, got %q", c.Input)
	}
	if c.RemotePort < 0 || c.RemotePort > 65535 {
		return fmt.Errorf("SLIDEINK_REMOTE_PORT: %d out of range", c.RemotePort)
	}
	if c.Decimation < 0 {
		return fmt.Errorf("SLIDEINK_DECIMATION: must not be negative")
	}
	if c.EraseRad <= c.Decimation {
		return fmt.Errorf("SLIDEINK_ERASE_RADIUS (%v) must exceed SLIDEINK_DECIMATION (%v)", c.EraseRad, c.Decimation)
	}
	return nil
}

// DeviceFilter returns the filter matching Input.
func (c *Config) DeviceFilter() ink.DeviceFilter {
	if c.Input == "mouse" {
		return ink.AcceptStylusOrMouse
	}
	return ink.AcceptStylus
}

// ParseSpace parses "WIDTHxHEIGHT".
func ParseSpace(s string) (ink.Space, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return ink.Space{}, fmt.Errorf("SLIDEINK_SPACE: want WIDTHxHEIGHT, got %q", s)
	}
	width, err1 := strconv.ParseFloat(w, 64)
	height, err2 := strconv.ParseFloat(h, 64)
	if err1 != nil || err2 != nil || !(width > 0) || !(height > 0) {
		return ink.Space{}, fmt.Errorf("SLIDEINK_SPACE: invalid size %q", s)
	}
	return ink.Space{Width: width, Height: height}, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
