package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/moves/internal/placement"
	"github.com/1broseidon/moves/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	// Connect to socket
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	// Set deadline
	conn.SetDeadline(time.Now().Add(c.timeout))

	// Marshal request
	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Send request
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	// Read response
	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Parse response
	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// Check for error response
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	req := &Request{
		Command: CommandReload,
	}

	_, err := c.sendRequest(req)
	return err
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	req := &Request{
		Command: CommandGetStatus,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// GetMonitors retrieves monitor information
func (c *Client) GetMonitors() (*MonitorsData, error) {
	req := &Request{
		Command: CommandGetMonitors,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var monitors MonitorsData
	if err := json.Unmarshal(resp.Data, &monitors); err != nil {
		return nil, fmt.Errorf("failed to parse monitors data: %w", err)
	}

	return &monitors, nil
}

// SetEnabled turns modifier drags on or off in the running daemon. With
// persist the new value is also written to the config file.
func (c *Client) SetEnabled(enabled, persist bool) error {
	payload, err := json.Marshal(SetEnabledPayload{
		Enabled: enabled,
		Persist: persist,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal set-enabled payload: %w", err)
	}

	req := &Request{
		Command: CommandSetEnabled,
		Payload: payload,
	}

	_, err = c.sendRequest(req)
	return err
}

// PlaceTemplate snaps the active window to a named template.
func (c *Client) PlaceTemplate(template string) (*PlacementData, error) {
	return c.place(CommandPlaceTemplate, PlaceTemplatePayload{Template: template})
}

// PlaceCustom moves the active window to a custom frame.
func (c *Client) PlaceCustom(custom placement.Custom) (*PlacementData, error) {
	return c.place(CommandPlaceCustom, custom)
}

// OpenURL asks the daemon to handle a moves:// URL.
func (c *Client) OpenURL(rawURL string) (*PlacementData, error) {
	return c.place(CommandOpenURL, OpenURLPayload{URL: rawURL})
}

func (c *Client) place(cmd CommandType, body any) (*PlacementData, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal placement payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{
		Command: cmd,
		Payload: payload,
	})
	if err != nil {
		return nil, err
	}

	var data PlacementData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse placement data: %w", err)
	}
	return &data, nil
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
