package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths:
//
//	enabled
//	move_modifiers
//	resize_modifiers
//	resize_from_closest_corner
//	bring_to_front
//	min_width
//	min_height
//	poll_interval_ms
//	excluded_apps
//	toggle_hotkey
//	template_hotkeys
//	template_hotkeys.<key sequence>
//	picker_hotkey
//	picker_backend
//	show_in_tray
//	log_level
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

// Paths lists the top-level keys Explain understands.
func Paths() []string {
	return []string{
		"enabled",
		"move_modifiers",
		"resize_modifiers",
		"resize_from_closest_corner",
		"bring_to_front",
		"min_width",
		"min_height",
		"poll_interval_ms",
		"excluded_apps",
		"toggle_hotkey",
		"template_hotkeys",
		"picker_hotkey",
		"picker_backend",
		"show_in_tray",
		"log_level",
	}
}

func lookupValue(cfg *Config, path string) (any, error) {
	key, rest, nested := strings.Cut(path, ".")
	if nested && key != "template_hotkeys" {
		return nil, fmt.Errorf("unknown path: %s", path)
	}

	switch key {
	case "enabled":
		return cfg.Enabled, nil
	case "move_modifiers":
		return cfg.MoveModifiers, nil
	case "resize_modifiers":
		return cfg.ResizeModifiers, nil
	case "resize_from_closest_corner":
		return cfg.ResizeFromClosestCorner, nil
	case "bring_to_front":
		return cfg.BringToFront, nil
	case "min_width":
		return cfg.MinWidth, nil
	case "min_height":
		return cfg.MinHeight, nil
	case "poll_interval_ms":
		return cfg.PollIntervalMS, nil
	case "excluded_apps":
		return cfg.ExcludedApps, nil
	case "toggle_hotkey":
		return cfg.ToggleHotkey, nil
	case "template_hotkeys":
		if !nested {
			return cfg.TemplateHotkeys, nil
		}
		name, ok := cfg.TemplateHotkeys[rest]
		if !ok {
			return nil, fmt.Errorf("unknown template_hotkeys entry %q", rest)
		}
		return name, nil
	case "picker_hotkey":
		return cfg.PickerHotkey, nil
	case "picker_backend":
		return cfg.PickerBackend, nil
	case "show_in_tray":
		return cfg.ShowInTray, nil
	case "log_level":
		return cfg.LogLevel, nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}
