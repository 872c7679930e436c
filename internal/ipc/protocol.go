package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/moves/internal/placement"
	"github.com/1broseidon/moves/internal/platform"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload        CommandType = "RELOAD"
	CommandGetStatus     CommandType = "GET_STATUS"
	CommandGetMonitors   CommandType = "GET_MONITORS"
	CommandSetEnabled    CommandType = "SET_ENABLED"
	CommandPlaceTemplate CommandType = "PLACE_TEMPLATE"
	CommandPlaceCustom   CommandType = "PLACE_CUSTOM"
	CommandOpenURL       CommandType = "OPEN_URL"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Enabled         bool         `json:"enabled"`
	Intention       string       `json:"intention"`
	MoveModifiers   string       `json:"move_modifiers"`
	ResizeModifiers string       `json:"resize_modifiers"`
	Gesture         *GestureData `json:"gesture,omitempty"`
	UptimeSeconds   int64        `json:"uptime_seconds"`
	DaemonRunning   bool         `json:"daemon_running"`
}

// GestureData describes the drag in progress.
type GestureData struct {
	ID     string        `json:"id"`
	Window uint32        `json:"window"`
	Corner string        `json:"corner,omitempty"`
	Frame  platform.Rect `json:"frame"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID     int           `json:"id"`
	Name   string        `json:"name"`
	X      int           `json:"x"`
	Y      int           `json:"y"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Usable platform.Rect `json:"usable"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// SetEnabledPayload is the payload of SET_ENABLED. Persist also writes the
// value to the config file.
type SetEnabledPayload struct {
	Enabled bool `json:"enabled"`
	Persist bool `json:"persist,omitempty"`
}

// PlaceTemplatePayload is the payload of PLACE_TEMPLATE.
type PlaceTemplatePayload struct {
	Template string `json:"template"`
}

// OpenURLPayload is the payload of OPEN_URL.
type OpenURLPayload struct {
	URL string `json:"url"`
}

// PlacementData is returned by the placement commands. PLACE_CUSTOM takes a
// placement.Custom as its payload.
type PlacementData = placement.Result

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
