package palette

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/moves/internal/placement"
)

type templateGroup struct {
	title     string
	templates []placement.Template
}

var templateGroups = []templateGroup{
	{"Halves", []placement.Template{
		placement.TemplateLeftHalf, placement.TemplateRightHalf,
		placement.TemplateTopHalf, placement.TemplateBottomHalf,
	}},
	{"Quarters", []placement.Template{
		placement.TemplateTopLeft, placement.TemplateTopRight,
		placement.TemplateBottomLeft, placement.TemplateBottomRight,
	}},
	{"Thirds", []placement.Template{
		placement.TemplateLeftThird, placement.TemplateCenterThird, placement.TemplateRightThird,
	}},
	{"Screen", []placement.Template{
		placement.TemplateMaximize, placement.TemplateCenter,
	}},
}

// TemplateItems returns the picker rows: a header per group followed by its
// templates. Headers are left out for launchers that cannot skip them.
func TemplateItems(caps Capabilities) []Item {
	var items []Item
	for _, g := range templateGroups {
		if caps.NonSelectable {
			items = append(items, Item{Label: g.title, IsHeader: true})
		}
		for _, t := range g.templates {
			items = append(items, Item{
				Label:  templateLabel(t),
				Action: string(t),
				Icon:   "view-restore",
				Meta:   strings.ToLower(g.title) + " " + string(t),
			})
		}
	}
	return items
}

// templateLabel turns "top-left" into "Top Left".
func templateLabel(t placement.Template) string {
	words := strings.Split(string(t), "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// PickTemplate shows the templates and returns the chosen one.
// Picking a header shows the list again.
func PickTemplate(b Backend) (placement.Template, error) {
	items := TemplateItems(b.Capabilities())
	for {
		item, err := b.Show("moves", items)
		if err != nil {
			return "", err
		}
		if item.IsHeader {
			continue
		}
		if !placement.IsTemplate(item.Action) {
			return "", fmt.Errorf("palette: %q is not a template", item.Action)
		}
		return placement.Template(item.Action), nil
	}
}

// IsCancelled reports whether err means the user dismissed the launcher.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
