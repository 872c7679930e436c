package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/moves/internal/config"
	"github.com/1broseidon/moves/internal/daemon"
	"github.com/1broseidon/moves/internal/placement"
	"github.com/1broseidon/moves/internal/platform"
	"github.com/1broseidon/moves/internal/runtimepath"
)

// Watcher is the part of the daemon watcher the server drives.
type Watcher interface {
	Status() daemon.Status
	SetEnabled(enabled bool)
}

// Placer applies placement actions to the active window.
type Placer interface {
	Apply(a placement.Action) (placement.Result, error)
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	cfg          *config.Config
	cfgMu        sync.RWMutex
	watcher      Watcher
	placer       Placer
	backend      platform.Backend
	startTime    time.Time
	reloadChan   chan struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex

	loadConfig func() (*config.Config, error)
	saveConfig func(*config.Config) error
}

// NewServer creates a new IPC server
func NewServer(cfg *config.Config, watcher Watcher, placer Placer, backend platform.Backend, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		cfg:        cfg,
		watcher:    watcher,
		placer:     placer,
		backend:    backend,
		startTime:  time.Now(),
		reloadChan: reloadChan,
		loadConfig: config.Load,
		saveConfig: (*config.Config).Save,
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	// Accept connections
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	// Parse request
	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Handle command
	resp := s.handleCommand(req)

	// Send response
	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetMonitors:
		return s.handleGetMonitors()
	case CommandSetEnabled:
		return s.handleSetEnabled(req.Payload)
	case CommandPlaceTemplate:
		return s.handlePlaceTemplate(req.Payload)
	case CommandPlaceCustom:
		return s.handlePlaceCustom(req.Payload)
	case CommandOpenURL:
		return s.handleOpenURL(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleReload reloads the configuration
func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	// Load new config
	newCfg, err := s.loadConfig()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	// Update config atomically
	s.cfgMu.Lock()
	s.cfg = newCfg
	s.cfgMu.Unlock()

	// Notify the main daemon via channel (non-blocking)
	select {
	case s.reloadChan <- struct{}{}:
	default:
	}

	log.Println("IPC: Config reloaded successfully")

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	st := s.watcher.Status()

	status := StatusData{
		Enabled:         st.Enabled,
		Intention:       st.Intention.String(),
		MoveModifiers:   st.Resolver.Move.String(),
		ResizeModifiers: st.Resolver.Resize.String(),
		UptimeSeconds:   int64(time.Since(s.startTime).Seconds()),
		DaemonRunning:   true,
	}
	if g := st.Gesture; g != nil {
		status.Gesture = &GestureData{
			ID:     g.ID,
			Window: uint32(g.Window),
			Corner: g.Corner,
			Frame:  g.Frame,
		}
	}

	resp, _ := NewOKResponse(status)
	return resp
}

// handleGetMonitors returns information about all monitors
func (s *Server) handleGetMonitors() *Response {
	displays, err := s.backend.Displays()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get monitors: %v", err))
	}

	monitorInfos := make([]MonitorInfo, len(displays))
	for i, d := range displays {
		monitorInfos[i] = MonitorInfo{
			ID:     d.ID,
			Name:   d.Name,
			X:      d.Bounds.X,
			Y:      d.Bounds.Y,
			Width:  d.Bounds.Width,
			Height: d.Bounds.Height,
			Usable: d.Usable,
		}
	}

	data := MonitorsData{
		Monitors: monitorInfos,
	}

	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleSetEnabled(payload json.RawMessage) *Response {
	var req SetEnabledPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid set enabled payload: %v", err))
	}

	if req.Persist {
		s.cfgMu.Lock()
		next := s.cfg.Clone()
		next.Enabled = req.Enabled
		err := s.saveConfig(next)
		if err == nil {
			s.cfg = next
		}
		s.cfgMu.Unlock()
		if err != nil {
			return NewErrorResponse(fmt.Sprintf("Failed to save config: %v", err))
		}
	}

	s.watcher.SetEnabled(req.Enabled)
	log.Printf("IPC: enabled=%t persist=%t", req.Enabled, req.Persist)

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handlePlaceTemplate(payload json.RawMessage) *Response {
	var req PlaceTemplatePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid place template payload: %v", err))
	}
	if req.Template == "" {
		return NewErrorResponse("template is required")
	}
	if !placement.IsTemplate(req.Template) {
		return NewErrorResponse(fmt.Sprintf("Unknown template: %s", req.Template))
	}
	return s.place(placement.Action{Template: placement.Template(req.Template)})
}

func (s *Server) handlePlaceCustom(payload json.RawMessage) *Response {
	var req placement.Custom
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid place custom payload: %v", err))
		}
	}
	req.Position = placement.ParsePosition(string(req.Position))
	return s.place(placement.Action{Custom: &req})
}

func (s *Server) handleOpenURL(payload json.RawMessage) *Response {
	var req OpenURLPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid open url payload: %v", err))
	}
	action, err := placement.ParseURL(req.URL)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return s.place(action)
}

func (s *Server) place(action placement.Action) *Response {
	result, err := s.placer.Apply(action)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to place window: %v", err))
	}
	log.Printf("IPC: placed window 0x%x with %s", uint32(result.Window), action)

	resp, err := NewOKResponse(result)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

// GetConfig returns the current config (thread-safe)
func (s *Server) GetConfig() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// UpdateConfig updates the config (thread-safe)
func (s *Server) UpdateConfig(cfg *config.Config) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.cfg = cfg
}
