// Package site holds the chrome shared by every page: navigation, head
// scripts and the viewport presentation bands.
package site

import "sync"

const lordiconScript = "https://cdn.lordicon.com/ritcuqlt.js"

// NavLink is one entry of the main navigation.
type NavLink struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

var navLinks = []NavLink{
	{Name: "Home", Href: "/"},
	{Name: "Services", Href: "/services"},
	{Name: "About Us", Href: "/about"},
	{Name: "Careers", Href: "/careers"},
	{Name: "Contact Us", Href: "/contactUs"},
}

// Pages are every route listed in the sitemap.
var pages = []string{"/", "/services", "/about", "/careers", "/careers/openings", "/contactUs", "/terms-and-conditions"}

// NavLinks returns a copy of the main navigation.
func NavLinks() []NavLink {
	out := make([]NavLink, len(navLinks))
	copy(out, navLinks)
	return out
}

var (
	initOnce sync.Once
	scriptMu sync.RWMutex
	scripts  []string
)

// Init registers the external head scripts. Only the first call has an effect.
func Init() {
	initOnce.Do(func() {
		scriptMu.Lock()
		defer scriptMu.Unlock()
		scripts = append(scripts, lordiconScript)
	})
}

// Scripts returns the registered head scripts.
func Scripts() []string {
	scriptMu.RLock()
	defer scriptMu.RUnlock()
	out := make([]string, len(scripts))
	copy(out, scripts)
	return out
}

type Variant string

const (
	Mobile  Variant = "mobile"
	Tablet  Variant = "tablet"
	Desktop Variant = "desktop"
)

const (
	mobileMax = 768
	tabletMax = 1024
)

// VariantFor maps a viewport width in pixels to a presentation band.
// Unknown (non-positive) widths render as desktop.
func VariantFor(width int) Variant {
	switch {
	case width <= 0:
		return Desktop
	case width < mobileMax:
		return Mobile
	case width < tabletMax:
		return Tablet
	default:
		return Desktop
	}
}

// Chrome is the payload of the site endpoint.
type Chrome struct {
	Nav     []NavLink `json:"nav"`
	Scripts []string  `json:"scripts"`
	Variant Variant   `json:"variant"`
}

func ChromeFor(width int) Chrome {
	return Chrome{Nav: NavLinks(), Scripts: Scripts(), Variant: VariantFor(width)}
}
