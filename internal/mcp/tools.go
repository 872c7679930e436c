package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/moves/internal/ipc"
	"github.com/1broseidon/moves/internal/placement"
)

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	st, err := s.daemon.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}

	out := GetStatusOutput{
		Enabled:         st.Enabled,
		Intention:       st.Intention,
		MoveModifiers:   st.MoveModifiers,
		ResizeModifiers: st.ResizeModifiers,
		UptimeSeconds:   st.UptimeSeconds,
	}
	if g := st.Gesture; g != nil {
		out.Gesture = &GestureInfo{ID: g.ID, Window: g.Window, Corner: g.Corner, Frame: g.Frame}
	}
	return nil, out, nil
}

func (s *Server) handleSetEnabled(_ context.Context, _ *mcpsdk.CallToolRequest, args SetEnabledInput) (*mcpsdk.CallToolResult, SetEnabledOutput, error) {
	if err := s.daemon.SetEnabled(args.Enabled, args.Persist); err != nil {
		return nil, SetEnabledOutput{}, err
	}
	return nil, SetEnabledOutput{Enabled: args.Enabled}, nil
}

func (s *Server) handleListTemplates(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListTemplatesInput) (*mcpsdk.CallToolResult, ListTemplatesOutput, error) {
	return nil, ListTemplatesOutput{Templates: placement.TemplateNames()}, nil
}

func (s *Server) handlePlaceTemplate(_ context.Context, _ *mcpsdk.CallToolRequest, args PlaceTemplateInput) (*mcpsdk.CallToolResult, PlacementOutput, error) {
	if !placement.IsTemplate(args.Template) {
		return nil, PlacementOutput{}, fmt.Errorf("unknown template %q; available: %v", args.Template, placement.TemplateNames())
	}
	res, err := s.daemon.PlaceTemplate(args.Template)
	return placementResult(res, err)
}

func (s *Server) handlePlaceCustom(_ context.Context, _ *mcpsdk.CallToolRequest, args PlaceCustomInput) (*mcpsdk.CallToolResult, PlacementOutput, error) {
	res, err := s.daemon.PlaceCustom(placement.Custom{
		Position:        placement.ParsePosition(args.Position),
		AbsoluteWidth:   args.AbsoluteWidth,
		RelativeWidth:   args.RelativeWidth,
		AbsoluteHeight:  args.AbsoluteHeight,
		RelativeHeight:  args.RelativeHeight,
		AbsoluteXOffset: args.AbsoluteXOffset,
		RelativeXOffset: args.RelativeXOffset,
		AbsoluteYOffset: args.AbsoluteYOffset,
		RelativeYOffset: args.RelativeYOffset,
	})
	return placementResult(res, err)
}

func (s *Server) handleOpenURL(_ context.Context, _ *mcpsdk.CallToolRequest, args OpenURLInput) (*mcpsdk.CallToolResult, PlacementOutput, error) {
	if _, err := placement.ParseURL(args.URL); err != nil {
		return nil, PlacementOutput{}, err
	}
	res, err := s.daemon.OpenURL(args.URL)
	return placementResult(res, err)
}

func placementResult(res *ipc.PlacementData, err error) (*mcpsdk.CallToolResult, PlacementOutput, error) {
	if err != nil {
		return nil, PlacementOutput{}, err
	}
	return nil, PlacementOutput{
		Window:  uint32(res.Window),
		Frame:   res.Frame,
		Display: res.Display,
	}, nil
}
