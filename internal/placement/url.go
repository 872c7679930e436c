package placement

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Scheme is the URL scheme handled by ParseURL.
const Scheme = "moves"

// ErrUnsupportedURL is returned for URLs that are not moves:// actions.
var ErrUnsupportedURL = errors.New("unsupported url")

// Action is a placement request: either a template or a custom frame.
type Action struct {
	Template Template
	Custom   *Custom
}

// String renders the action for logs.
func (a Action) String() string {
	if a.Custom != nil {
		return "custom:" + string(ParsePosition(string(a.Custom.Position)))
	}
	return "template:" + string(a.Template)
}

// ParseURL decodes moves://template/<name> and
// moves://custom/<position>?absoluteWidth=…&relativeHeight=…&absoluteXOffset=…
//
// For custom URLs a non-empty "position" query parameter wins over the path;
// an unknown or missing position means topLeft. Size and relative offset
// parameters that do not parse as numbers are ignored. An absolute offset key
// that is present but does not parse counts as 0 and still wins over the
// relative one.
func ParseURL(raw string) (Action, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Action{}, fmt.Errorf("parse %q: %w", raw, err)
	}
	if u.Scheme != Scheme {
		return Action{}, fmt.Errorf("%w: scheme %q", ErrUnsupportedURL, u.Scheme)
	}

	command := strings.Trim(u.Path, "/")
	switch u.Host {
	case "template":
		if command == "" {
			return Action{}, fmt.Errorf("%w: missing template name", ErrUnsupportedURL)
		}
		if !IsTemplate(command) {
			return Action{}, fmt.Errorf("%w: unknown template %q", ErrUnsupportedURL, command)
		}
		return Action{Template: Template(command)}, nil

	case "custom":
		q := u.Query()
		pos := command
		if p := q.Get("position"); p != "" {
			pos = p
		}
		c := Custom{
			Position:        ParsePosition(pos),
			AbsoluteWidth:   queryFloat(q, "absoluteWidth"),
			RelativeWidth:   queryFloat(q, "relativeWidth"),
			AbsoluteHeight:  queryFloat(q, "absoluteHeight"),
			RelativeHeight:  queryFloat(q, "relativeHeight"),
			AbsoluteXOffset: queryPresentFloat(q, "absoluteXOffset"),
			RelativeXOffset: queryFloatPtr(q, "relativeXOffset"),
			AbsoluteYOffset: queryPresentFloat(q, "absoluteYOffset"),
			RelativeYOffset: queryFloatPtr(q, "relativeYOffset"),
		}
		return Action{Custom: &c}, nil

	default:
		return Action{}, fmt.Errorf("%w: unknown action %q", ErrUnsupportedURL, u.Host)
	}
}

func queryFloat(q url.Values, key string) float64 {
	if p := queryFloatPtr(q, key); p != nil {
		return *p
	}
	return 0
}

func queryFloatPtr(q url.Values, key string) *float64 {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

// queryPresentFloat returns nil only when key is absent.
func queryPresentFloat(q url.Values, key string) *float64 {
	if !q.Has(key) {
		return nil
	}
	if p := queryFloatPtr(q, key); p != nil {
		return p
	}
	zero := 0.0
	return &zero
}
