package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Enabled != nil {
		cfg.Enabled = *raw.Enabled
	}
	if raw.MoveModifiers != nil {
		cfg.MoveModifiers = normalizeModifiers(*raw.MoveModifiers)
	}
	if raw.ResizeModifiers != nil {
		cfg.ResizeModifiers = normalizeModifiers(*raw.ResizeModifiers)
	}
	if raw.ResizeFromClosestCorner != nil {
		cfg.ResizeFromClosestCorner = *raw.ResizeFromClosestCorner
	}
	if raw.BringToFront != nil {
		cfg.BringToFront = *raw.BringToFront
	}
	if raw.MinWidth != nil {
		cfg.MinWidth = *raw.MinWidth
	}
	if raw.MinHeight != nil {
		cfg.MinHeight = *raw.MinHeight
	}
	if raw.PollIntervalMS != nil {
		cfg.PollIntervalMS = *raw.PollIntervalMS
	}
	if raw.ExcludedApps != nil {
		cfg.ExcludedApps = make([]string, 0, len(raw.ExcludedApps))
		for _, app := range raw.ExcludedApps {
			cfg.ExcludedApps = append(cfg.ExcludedApps, strings.TrimSpace(app))
		}
	}
	if raw.ToggleHotkey != nil {
		cfg.ToggleHotkey = strings.TrimSpace(*raw.ToggleHotkey)
	}
	if raw.TemplateHotkeys != nil {
		// A user map replaces the default bindings; an empty value unbinds.
		cfg.TemplateHotkeys = make(map[string]string, len(raw.TemplateHotkeys))
		for key, name := range raw.TemplateHotkeys {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			cfg.TemplateHotkeys[strings.TrimSpace(key)] = name
		}
	}
	if raw.PickerHotkey != nil {
		cfg.PickerHotkey = strings.TrimSpace(*raw.PickerHotkey)
	}
	if raw.PickerBackend != nil {
		cfg.PickerBackend = strings.ToLower(strings.TrimSpace(*raw.PickerBackend))
	}
	if raw.ShowInTray != nil {
		cfg.ShowInTray = *raw.ShowInTray
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
	}

	return cfg, nil
}

func normalizeModifiers(list []string) []string {
	out := make([]string, 0, len(list))
	for _, m := range list {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

func splitModifiers(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || r == '-' || r == ',' || r == ' '
	})
}
