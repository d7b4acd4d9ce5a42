package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	JWTSecret      string `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	// FontDir holds <family>.ttf files used for text outlines; empty means the built-in Go fonts only.
	FontDir string `envconfig:"FONT_DIR"`
	Editor  Editor `envconfig:"EDITOR"`
}

// Editor tunes interaction. Pixel values are in screen pixels and are divided
// by the zoom before use.
type Editor struct {
	HistoryCapacity    int     `envconfig:"HISTORY_CAPACITY" default:"50"`
	HitTolerance       float64 `envconfig:"HIT_TOLERANCE" default:"5"`
	HandleSize         float64 `envconfig:"HANDLE_SIZE" default:"8"`
	RotateHandleOffset float64 `envconfig:"ROTATE_HANDLE_OFFSET" default:"24"`
	SnapRadius         float64 `envconfig:"SNAP_RADIUS" default:"10"`
	Nudge              float64 `envconfig:"NUDGE" default:"1"`
	NudgeLarge         float64 `envconfig:"NUDGE_LARGE" default:"10"`
	FontFamily         string  `envconfig:"FONT_FAMILY" default:"sans-serif"`
	FontSize           float64 `envconfig:"FONT_SIZE" default:"24"`
	SelectionColor     string  `envconfig:"SELECTION_COLOR" default:"#0099ff"`
	StrokeColor        string  `envconfig:"STROKE_COLOR" default:"#000000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultEditor returns the editor defaults without reading the environment.
func DefaultEditor() Editor {
	return Editor{
		HistoryCapacity:    50,
		HitTolerance:       5,
		HandleSize:         8,
		RotateHandleOffset: 24,
		SnapRadius:         10,
		Nudge:              1,
		NudgeLarge:         10,
		FontFamily:         "sans-serif",
		FontSize:           24,
		SelectionColor:     "#0099ff",
		StrokeColor:        "#000000",
	}
}
