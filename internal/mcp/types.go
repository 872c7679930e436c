package mcp

import "github.com/1broseidon/moves/internal/platform"

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	Enabled         bool         `json:"enabled"`
	Intention       string       `json:"intention"`
	MoveModifiers   string       `json:"move_modifiers"`
	ResizeModifiers string       `json:"resize_modifiers"`
	Gesture         *GestureInfo `json:"gesture,omitempty"`
	UptimeSeconds   int64        `json:"uptime_seconds"`
}

// GestureInfo describes the drag in progress.
type GestureInfo struct {
	ID     string        `json:"id"`
	Window uint32        `json:"window"`
	Corner string        `json:"corner,omitempty"`
	Frame  platform.Rect `json:"frame"`
}

// SetEnabledInput is the input for the set_enabled tool.
type SetEnabledInput struct {
	Enabled bool `json:"enabled" jsonschema:"true to allow modifier drags, false to ignore them"`
	Persist bool `json:"persist,omitempty" jsonschema:"Also write the value to the config file so it survives a restart"`
}

// SetEnabledOutput is the output for the set_enabled tool.
type SetEnabledOutput struct {
	Enabled bool `json:"enabled"`
}

// PlaceTemplateInput is the input for the place_template tool.
type PlaceTemplateInput struct {
	Template string `json:"template" jsonschema:"Template name, e.g. left-half, right-half, maximize, center, top-left, left-third"`
}

// PlaceCustomInput is the input for the place_custom tool.
type PlaceCustomInput struct {
	Position        string   `json:"position,omitempty" jsonschema:"Anchor: topLeft, topRight, bottomLeft, bottomRight, center, left, right, top or bottom (default topLeft)"`
	AbsoluteWidth   float64  `json:"absolute_width,omitempty" jsonschema:"Width in pixels; wins over relative_width"`
	RelativeWidth   float64  `json:"relative_width,omitempty" jsonschema:"Width as a fraction of the usable screen width"`
	AbsoluteHeight  float64  `json:"absolute_height,omitempty" jsonschema:"Height in pixels; wins over relative_height"`
	RelativeHeight  float64  `json:"relative_height,omitempty" jsonschema:"Height as a fraction of the usable screen height"`
	AbsoluteXOffset *float64 `json:"absolute_x_offset,omitempty" jsonschema:"Horizontal offset from the anchor in pixels"`
	RelativeXOffset *float64 `json:"relative_x_offset,omitempty" jsonschema:"Horizontal offset as a fraction of the usable width"`
	AbsoluteYOffset *float64 `json:"absolute_y_offset,omitempty" jsonschema:"Vertical offset from the anchor in pixels"`
	RelativeYOffset *float64 `json:"relative_y_offset,omitempty" jsonschema:"Vertical offset as a fraction of the usable height"`
}

// OpenURLInput is the input for the open_url tool.
type OpenURLInput struct {
	URL string `json:"url" jsonschema:"A moves://template/<name> or moves://custom/<position>?... URL"`
}

// PlacementOutput is the output of the placement tools.
type PlacementOutput struct {
	Window  uint32        `json:"window"`
	Frame   platform.Rect `json:"frame"`
	Display string        `json:"display"`
}

// ListTemplatesInput is the input for the list_templates tool.
type ListTemplatesInput struct{}

// ListTemplatesOutput is the output for the list_templates tool.
type ListTemplatesOutput struct {
	Templates []string `json:"templates"`
}
