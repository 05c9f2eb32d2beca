// Package icons is the closed registry of icon identifiers the site's UI
// can render. Content documents store icon names as free-form strings;
// validity is only decided here, at render time, and unknown names resolve
// to the single Fallback icon rather than failing.
package icons

import (
	"sort"
	"strings"
)

// Icon is a renderable icon identifier known to the frontend icon set.
type Icon string

// Fallback is the one fallback used for every unregistered name.
const Fallback Icon = "HelpCircle"

var registry = map[string]Icon{}

// The names mirror the icon set bundled with the site frontend.
var names = []string{
	"Activity", "ArrowRight", "Award", "BarChart", "BarChart3", "Camera",
	"Cctv", "Check", "CheckCircle", "Cloud", "Code2", "Crown", "Database",
	"FireExtinguisher", "FolderKanban", "Github", "HardDrive", "Headphones",
	"HelpCircle", "Lightbulb", "Linkedin", "Megaphone", "Monitor", "Network",
	"Play", "Server", "Shield", "Smartphone", "Star", "Target", "Twitter",
	"Users", "Wifi", "Zap",
}

func init() {
	sort.Strings(names)
	for _, n := range names {
		registry[n] = Icon(n)
	}
}

// Lookup returns the icon for a name and whether the name is registered.
func Lookup(name string) (Icon, bool) {
	icon, ok := registry[name]
	return icon, ok
}

// Resolve maps any name to an icon; unregistered names map to Fallback.
func Resolve(name string) Icon {
	if icon, ok := registry[name]; ok {
		return icon
	}
	return Fallback
}

// Names returns all registered icon names in sorted order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Search filters the registered names by case-insensitive substring match.
// An empty term returns every name.
func Search(term string) []string {
	if term == "" {
		return Names()
	}
	term = strings.ToLower(term)
	var out []string
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), term) {
			out = append(out, n)
		}
	}
	return out
}
