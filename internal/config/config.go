package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/moves/internal/modifiers"
	"github.com/1broseidon/moves/internal/placement"
	"github.com/1broseidon/moves/internal/platform"
)

const (
	DefaultMinWidth       = 40
	DefaultMinHeight      = 40
	DefaultPollIntervalMS = 10
	maxPollIntervalMS     = 1000
)

// Config holds the application configuration.
type Config struct {
	Include                 []string          `yaml:"include,omitempty"`
	Enabled                 bool              `yaml:"enabled"`
	MoveModifiers           []string          `yaml:"move_modifiers"`
	ResizeModifiers         []string          `yaml:"resize_modifiers"`
	ResizeFromClosestCorner bool              `yaml:"resize_from_closest_corner"`
	BringToFront            bool              `yaml:"bring_to_front"`
	MinWidth                int               `yaml:"min_width"`
	MinHeight               int               `yaml:"min_height"`
	PollIntervalMS          int               `yaml:"poll_interval_ms"`
	ExcludedApps            []string          `yaml:"excluded_apps"`
	ToggleHotkey            string            `yaml:"toggle_hotkey"`
	TemplateHotkeys         map[string]string `yaml:"template_hotkeys"`
	PickerHotkey            string            `yaml:"picker_hotkey"`
	PickerBackend           string            `yaml:"picker_backend"`
	ShowInTray              bool              `yaml:"show_in_tray"`
	LogLevel                string            `yaml:"log_level"`

	// inheritedExcludes are excluded_apps that came from included files.
	// Save leaves them to those files.
	inheritedExcludes map[string]struct{}
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:                 true,
		MoveModifiers:           []string{"ctrl", "alt"},
		ResizeModifiers:         []string{"ctrl", "alt", "shift"},
		ResizeFromClosestCorner: true,
		BringToFront:            false,
		MinWidth:                DefaultMinWidth,
		MinHeight:               DefaultMinHeight,
		PollIntervalMS:          DefaultPollIntervalMS,
		ExcludedApps:            []string{},
		ToggleHotkey:            "Mod4-Mod1-m",
		TemplateHotkeys: map[string]string{
			"Mod4-Mod1-Left":  "left-half",
			"Mod4-Mod1-Right": "right-half",
			"Mod4-Mod1-Up":    "maximize",
			"Mod4-Mod1-Down":  "center",
		},
		PickerHotkey:  "Mod4-Mod1-p",
		PickerBackend: "auto",
		ShowInTray:    true,
		LogLevel:      "info",
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Include = append([]string(nil), c.Include...)
	if c.inheritedExcludes != nil {
		out.inheritedExcludes = make(map[string]struct{}, len(c.inheritedExcludes))
		for k := range c.inheritedExcludes {
			out.inheritedExcludes[k] = struct{}{}
		}
	}
	out.MoveModifiers = append([]string(nil), c.MoveModifiers...)
	out.ResizeModifiers = append([]string(nil), c.ResizeModifiers...)
	out.ExcludedApps = append([]string(nil), c.ExcludedApps...)
	if c.TemplateHotkeys != nil {
		out.TemplateHotkeys = make(map[string]string, len(c.TemplateHotkeys))
		for k, v := range c.TemplateHotkeys {
			out.TemplateHotkeys[k] = v
		}
	}
	return &out
}

// Resolver builds the modifier resolver for the configured sets. Lock bits
// are left for the caller to fill in from the running X server.
func (c *Config) Resolver() (modifiers.Resolver, error) {
	move, err := modifiers.Parse(c.MoveModifiers)
	if err != nil {
		return modifiers.Resolver{}, &ValidationError{Path: "move_modifiers", Err: err}
	}
	resize, err := modifiers.Parse(c.ResizeModifiers)
	if err != nil {
		return modifiers.Resolver{}, &ValidationError{Path: "resize_modifiers", Err: err}
	}
	return modifiers.Resolver{Move: move, Resize: resize, Locks: modifiers.DefaultLocks}, nil
}

// MinSize returns the resize floor.
func (c *Config) MinSize() platform.Size {
	return platform.Size{Width: c.MinWidth, Height: c.MinHeight}
}

// PollInterval returns the pointer sampling period.
func (c *Config) PollInterval() time.Duration {
	if c.PollIntervalMS <= 0 {
		return DefaultPollIntervalMS * time.Millisecond
	}
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// SlogLevel maps log_level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsExcluded reports whether windows of app must not be dragged.
//
// Entries starting with "/" match the executable path; a trailing "/" makes
// the entry a directory prefix. Other entries match WM_CLASS class or
// instance, case-insensitively.
func (c *Config) IsExcluded(app platform.AppInfo) bool {
	for _, entry := range c.ExcludedApps {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.HasPrefix(entry, "/") {
			if app.Path == "" {
				continue
			}
			if strings.HasSuffix(entry, "/") {
				if strings.HasPrefix(app.Path, entry) {
					return true
				}
				continue
			}
			if app.Path == entry {
				return true
			}
			continue
		}
		if strings.EqualFold(entry, app.Class) || strings.EqualFold(entry, app.Instance) {
			return true
		}
	}
	return false
}

// Save writes the configuration to the standard location.
//
// Note: this marshals the effective config and will not preserve comments.
// The include list is written back; values set only in included files are
// written too, except excluded_apps, which stay in the files that list them.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo validates and writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	save := c.Clone()
	save.ExcludedApps = excludedAppsForSave(c.ExcludedApps, c.inheritedExcludes)

	data, err := yaml.Marshal(save)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func excludedAppsForSave(apps []string, inherited map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(apps))
	out := make([]string, 0, len(apps))
	for _, app := range apps {
		app = strings.TrimSpace(app)
		if app == "" {
			continue
		}
		if _, ok := inherited[app]; ok {
			continue
		}
		if _, ok := seen[app]; ok {
			continue
		}
		seen[app] = struct{}{}
		out = append(out, app)
	}
	return out
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	move, err := modifiers.Parse(c.MoveModifiers)
	if err != nil {
		return &ValidationError{Path: "move_modifiers", Err: err}
	}
	resize, err := modifiers.Parse(c.ResizeModifiers)
	if err != nil {
		return &ValidationError{Path: "resize_modifiers", Err: err}
	}
	if move == 0 && resize == 0 {
		return &ValidationError{Path: "move_modifiers", Err: fmt.Errorf("at least one of move_modifiers or resize_modifiers must be set")}
	}
	if move != 0 && move == resize {
		return &ValidationError{Path: "resize_modifiers", Err: fmt.Errorf("resize_modifiers must differ from move_modifiers (both are %s)", move)}
	}
	if move&^modifiers.DefaultLocks == 0 && move != 0 {
		return &ValidationError{Path: "move_modifiers", Err: fmt.Errorf("lock modifiers cannot trigger a drag")}
	}
	if resize&^modifiers.DefaultLocks == 0 && resize != 0 {
		return &ValidationError{Path: "resize_modifiers", Err: fmt.Errorf("lock modifiers cannot trigger a drag")}
	}
	if c.MinWidth < 1 {
		return &ValidationError{Path: "min_width", Err: fmt.Errorf("min_width must be >= 1")}
	}
	if c.MinHeight < 1 {
		return &ValidationError{Path: "min_height", Err: fmt.Errorf("min_height must be >= 1")}
	}
	if c.PollIntervalMS < 1 || c.PollIntervalMS > maxPollIntervalMS {
		return &ValidationError{Path: "poll_interval_ms", Err: fmt.Errorf("poll_interval_ms must be between 1 and %d", maxPollIntervalMS)}
	}
	for i, app := range c.ExcludedApps {
		if strings.TrimSpace(app) == "" {
			return &ValidationError{Path: "excluded_apps", Err: fmt.Errorf("excluded_apps[%d] is empty", i)}
		}
	}
	for _, key := range sortedKeys(c.TemplateHotkeys) {
		name := c.TemplateHotkeys[key]
		if strings.TrimSpace(key) == "" {
			return &ValidationError{Path: "template_hotkeys", Err: fmt.Errorf("template_hotkeys contains an empty key sequence")}
		}
		if !placement.IsTemplate(name) {
			return &ValidationError{
				Path: "template_hotkeys." + key,
				Err:  fmt.Errorf("unknown template %q (known: %s)", name, strings.Join(placement.TemplateNames(), ", ")),
			}
		}
		if key == c.ToggleHotkey {
			return &ValidationError{Path: "template_hotkeys." + key, Err: fmt.Errorf("key sequence is already bound to toggle_hotkey")}
		}
	}
	if c.PickerHotkey != "" {
		if c.PickerHotkey == c.ToggleHotkey {
			return &ValidationError{Path: "picker_hotkey", Err: fmt.Errorf("key sequence is already bound to toggle_hotkey")}
		}
		if _, ok := c.TemplateHotkeys[c.PickerHotkey]; ok {
			return &ValidationError{Path: "picker_hotkey", Err: fmt.Errorf("key sequence is already bound in template_hotkeys")}
		}
	}
	switch c.PickerBackend {
	case "auto", "rofi", "fuzzel", "wofi", "dmenu":
	default:
		return &ValidationError{Path: "picker_backend", Err: fmt.Errorf("picker_backend must be one of: auto, rofi, fuzzel, wofi, dmenu")}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
