package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// ModifierList accepts either a list or a single "ctrl+alt" style string.
type ModifierList []string

func (l *ModifierList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = []string{}
			return nil
		}
		*l = splitModifiers(value.Value)
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("modifier entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("modifiers must be a string or list of strings")
	}
}

type RawConfig struct {
	Include                 IncludeList       `yaml:"include"`
	Enabled                 *bool             `yaml:"enabled"`
	MoveModifiers           *ModifierList     `yaml:"move_modifiers"`
	ResizeModifiers         *ModifierList     `yaml:"resize_modifiers"`
	ResizeFromClosestCorner *bool             `yaml:"resize_from_closest_corner"`
	BringToFront            *bool             `yaml:"bring_to_front"`
	MinWidth                *int              `yaml:"min_width"`
	MinHeight               *int              `yaml:"min_height"`
	PollIntervalMS          *int              `yaml:"poll_interval_ms"`
	ExcludedApps            []string          `yaml:"excluded_apps"`
	ToggleHotkey            *string           `yaml:"toggle_hotkey"`
	TemplateHotkeys         map[string]string `yaml:"template_hotkeys"`
	PickerHotkey            *string           `yaml:"picker_hotkey"`
	PickerBackend           *string           `yaml:"picker_backend"`
	ShowInTray              *bool             `yaml:"show_in_tray"`
	LogLevel                *string           `yaml:"log_level"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Enabled != nil {
		out.Enabled = overlay.Enabled
	}
	if overlay.MoveModifiers != nil {
		out.MoveModifiers = overlay.MoveModifiers
	}
	if overlay.ResizeModifiers != nil {
		out.ResizeModifiers = overlay.ResizeModifiers
	}
	if overlay.ResizeFromClosestCorner != nil {
		out.ResizeFromClosestCorner = overlay.ResizeFromClosestCorner
	}
	if overlay.BringToFront != nil {
		out.BringToFront = overlay.BringToFront
	}
	if overlay.MinWidth != nil {
		out.MinWidth = overlay.MinWidth
	}
	if overlay.MinHeight != nil {
		out.MinHeight = overlay.MinHeight
	}
	if overlay.PollIntervalMS != nil {
		out.PollIntervalMS = overlay.PollIntervalMS
	}
	// Exclusions accumulate across includes.
	if overlay.ExcludedApps != nil {
		out.ExcludedApps = append(append([]string(nil), out.ExcludedApps...), overlay.ExcludedApps...)
	}
	if overlay.ToggleHotkey != nil {
		out.ToggleHotkey = overlay.ToggleHotkey
	}
	if overlay.PickerHotkey != nil {
		out.PickerHotkey = overlay.PickerHotkey
	}
	if overlay.PickerBackend != nil {
		out.PickerBackend = overlay.PickerBackend
	}
	if overlay.TemplateHotkeys != nil {
		merged := make(map[string]string, len(out.TemplateHotkeys)+len(overlay.TemplateHotkeys))
		for key, name := range out.TemplateHotkeys {
			merged[key] = name
		}
		for key, name := range overlay.TemplateHotkeys {
			merged[key] = name
		}
		out.TemplateHotkeys = merged
	}
	if overlay.ShowInTray != nil {
		out.ShowInTray = overlay.ShowInTray
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}

	return out
}
