// Package config loads the forcechart configuration file.
//
// The file lives at $XDG_CONFIG_HOME/forcechart/config.toml. A missing file
// means defaults; a present file is decoded over the defaults, so it only
// needs the keys that differ.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/forcechart/pkg/editor"
	"github.com/matzehuels/forcechart/pkg/errors"
	"github.com/matzehuels/forcechart/pkg/force"
	"github.com/matzehuels/forcechart/pkg/graph"
	"github.com/matzehuels/forcechart/pkg/store"
)

const appName = "forcechart"

// Config holds forcechart configuration.
type Config struct {
	Canvas  CanvasConfig  `toml:"canvas"`
	Node    NodeConfig    `toml:"node"`
	Edge    EdgeConfig    `toml:"edge"`
	Force   ForceConfig   `toml:"force"`
	Storage StorageConfig `toml:"storage"`
	TUI     TUIConfig     `toml:"tui"`
}

// CanvasConfig sizes the headless canvas and the drag margin.
type CanvasConfig struct {
	Width       float64 `toml:"width" validate:"gt=0"`
	Height      float64 `toml:"height" validate:"gt=0"`
	DragPadding float64 `toml:"drag_padding" validate:"gte=0"`
}

// NodeConfig sets the node box size.
type NodeConfig struct {
	Width  float64 `toml:"width" validate:"gt=0"`
	Height float64 `toml:"height" validate:"gt=0"`
}

// EdgeConfig controls edge drawing.
type EdgeConfig struct {
	ArrowLength float64 `toml:"arrow_length" validate:"gte=0"`
}

// ForceConfig tunes the layout simulation.
type ForceConfig struct {
	Charge          float64 `toml:"charge" validate:"lt=0"`
	LinkDistance    float64 `toml:"link_distance" validate:"gt=0"`
	CenterStrength  float64 `toml:"center_strength" validate:"gt=0,lte=1"`
	VelocityDecay   float64 `toml:"velocity_decay" validate:"gt=0,lt=1"`
	AlphaMin        float64 `toml:"alpha_min" validate:"gt=0,lt=1"`
	DragAlphaTarget float64 `toml:"drag_alpha_target" validate:"gt=0,lte=1"`
}

// StorageConfig selects where the document is kept.
type StorageConfig struct {
	Backend         string `toml:"backend" validate:"oneof=file memory null redis mongo"`
	Key             string `toml:"key" validate:"required"`
	Dir             string `toml:"dir"`
	RedisURL        string `toml:"redis_url"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
	Namespace       string `toml:"namespace"`
}

// TUIConfig controls the terminal editor.
type TUIConfig struct {
	FPS   int  `toml:"fps" validate:"min=1,max=120"`
	Mouse bool `toml:"mouse"`
	// CellWidth and CellHeight map one terminal cell to canvas pixels.
	CellWidth  float64 `toml:"cell_width" validate:"gt=0"`
	CellHeight float64 `toml:"cell_height" validate:"gt=0"`
}

// Default returns the default configuration.
func Default() *Config {
	fo := force.DefaultOptions()
	eo := editor.DefaultOptions()
	return &Config{
		Canvas: CanvasConfig{Width: eo.Width, Height: eo.Height, DragPadding: eo.DragPadding},
		Node:   NodeConfig{Width: eo.NodeWidth, Height: eo.NodeHeight},
		Edge:   EdgeConfig{ArrowLength: eo.ArrowLength},
		Force: ForceConfig{
			Charge:          fo.Charge,
			LinkDistance:    fo.LinkDistance,
			CenterStrength:  fo.CenterStrength,
			VelocityDecay:   fo.VelocityDecay,
			AlphaMin:        fo.AlphaMin,
			DragAlphaTarget: eo.DragAlphaTarget,
		},
		Storage: StorageConfig{Backend: store.BackendFile, Key: graph.StorageKey},
		TUI:     TUIConfig{FPS: 30, Mouse: true, CellWidth: 8, CellHeight: 16},
	}
}

// Dir returns the forcechart config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path, or at [Path] if path is empty.
// A missing file yields the defaults. Unknown keys and invalid values are
// errors.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()

	md, err := toml.DecodeFile(path, cfg)
	if stderrors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, or to [Path] if path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists(path string) error {
	if path == "" {
		path = Path()
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return Save(Default(), path)
}

// =============================================================================
// Validation
// =============================================================================

var validate = validator.New()

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, formatValidationError(err), "invalid configuration")
	}
	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return stderrors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := fieldPath(e.Namespace())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, e.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// fieldPath turns "Config.Force.Charge" into "force.charge".
func fieldPath(ns string) string {
	_, rest, ok := strings.Cut(ns, ".")
	if !ok {
		rest = ns
	}
	return strings.ToLower(rest)
}

// =============================================================================
// Conversion
// =============================================================================

// EditorOptions returns editor options for a viewport of the configured
// canvas size.
func (c *Config) EditorOptions() editor.Options {
	return editor.Options{
		Width:           c.Canvas.Width,
		Height:          c.Canvas.Height,
		NodeWidth:       c.Node.Width,
		NodeHeight:      c.Node.Height,
		ArrowLength:     c.Edge.ArrowLength,
		DragPadding:     c.Canvas.DragPadding,
		DragAlphaTarget: c.Force.DragAlphaTarget,
		Force: force.Options{
			Charge:         c.Force.Charge,
			LinkDistance:   c.Force.LinkDistance,
			CenterStrength: c.Force.CenterStrength,
			VelocityDecay:  c.Force.VelocityDecay,
			AlphaMin:       c.Force.AlphaMin,
		},
		Key: c.Storage.Key,
	}
}

// StoreConfig returns the store backend configuration.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Backend:         c.Storage.Backend,
		Dir:             c.Storage.Dir,
		RedisURL:        c.Storage.RedisURL,
		MongoURI:        c.Storage.MongoURI,
		MongoDatabase:   c.Storage.MongoDatabase,
		MongoCollection: c.Storage.MongoCollection,
		Namespace:       c.Storage.Namespace,
	}
}
