package content

import "reflect"

const (
	storeNavURL   = "/store"
	contactNavURL = "/contact"
)

// storeNavEntry is the entry navigation repair inserts when a document
// predates the store page.
var storeNavEntry = NavItem{Label: "Store", URL: storeNavURL}

// Normalize heals a possibly stale or partially populated document in place,
// filling missing structure from the bundled default document. Existing
// values are never overwritten; only absent structure is added. It reports
// whether anything changed, and applying it twice always reports false the
// second time.
//
// "Absent" is the JSON zero value: nil slices and all-zero sections take
// their defaults, while explicitly emptied values (empty strings, empty
// non-nil lists) are preserved. Colors are the exception: an empty color is
// unusable by the theme, so each empty color key gets its default.
func Normalize(doc *Document) bool {
	def := DefaultDocument()
	changed := false

	if setIfEmpty(&doc.Site.Name, def.Site.Name) {
		changed = true
	}
	if fillColors(&doc.Site.Colors, def.Site.Colors) {
		changed = true
	}
	if doc.Site.Navigation == nil {
		doc.Site.Navigation = def.Site.Navigation
		changed = true
	}
	if nav, repaired := repairNavigation(doc.Site.Navigation); repaired {
		doc.Site.Navigation = nav
		changed = true
	}
	if fillSlice(&doc.Site.Footer.Visit.Lines, def.Site.Footer.Visit.Lines) {
		changed = true
	}
	if fillSlice(&doc.Site.Footer.Contact.Lines, def.Site.Footer.Contact.Lines) {
		changed = true
	}

	if normalizeHome(&doc.Pages.Home, &def.Pages.Home) {
		changed = true
	}
	if normalizeServices(&doc.Pages.Services, &def.Pages.Services) {
		changed = true
	}
	if normalizeContact(&doc.Pages.Contact, &def.Pages.Contact) {
		changed = true
	}
	if normalizeStore(&doc.Pages.Store, &def.Pages.Store) {
		changed = true
	}

	return changed
}

func normalizeHome(p, def *HomePage) bool {
	changed := fillZero(&p.Meta, def.Meta)
	if fillZero(&p.Hero, def.Hero) {
		changed = true
	}
	if fillZero(&p.WhatWePrint, def.WhatWePrint) {
		changed = true
	}
	if fillSlice(&p.WhatWePrint.Items, def.WhatWePrint.Items) {
		changed = true
	}
	if fillZero(&p.WhyChoose, def.WhyChoose) {
		changed = true
	}
	if fillSlice(&p.WhyChoose.Items, def.WhyChoose.Items) {
		changed = true
	}
	if fillZero(&p.Testimonials, def.Testimonials) {
		changed = true
	}
	if fillSlice(&p.Testimonials.Items, def.Testimonials.Items) {
		changed = true
	}
	return changed
}

func normalizeServices(p, def *ServicesPage) bool {
	changed := fillZero(&p.Meta, def.Meta)
	if fillZero(&p.Hero, def.Hero) {
		changed = true
	}
	if fillZero(&p.Capabilities, def.Capabilities) {
		changed = true
	}
	if fillSlice(&p.Capabilities.Items, def.Capabilities.Items) {
		changed = true
	}
	if fillZero(&p.Bundles, def.Bundles) {
		changed = true
	}
	if fillSlice(&p.Bundles.Items, def.Bundles.Items) {
		changed = true
	}
	if fillZero(&p.Process, def.Process) {
		changed = true
	}
	if fillSlice(&p.Process.Steps, def.Process.Steps) {
		changed = true
	}
	return changed
}

func normalizeContact(p, def *ContactPage) bool {
	changed := fillZero(&p.Meta, def.Meta)
	if fillZero(&p.Hero, def.Hero) {
		changed = true
	}
	if fillZero(&p.Studio, def.Studio) {
		changed = true
	}
	if fillSlice(&p.Studio.Address, def.Studio.Address) {
		changed = true
	}
	if fillSlice(&p.Studio.Hours, def.Studio.Hours) {
		changed = true
	}
	if fillZero(&p.Form, def.Form) {
		changed = true
	}
	if fillSlice(&p.Form.Fields, def.Form.Fields) {
		changed = true
	}
	if fillZero(&p.About, def.About) {
		changed = true
	}
	if fillSlice(&p.About.Cards, def.About.Cards) {
		changed = true
	}
	return changed
}

func normalizeStore(p, def *StorePage) bool {
	changed := fillZero(&p.Meta, def.Meta)
	if fillZero(&p.Hero, def.Hero) {
		changed = true
	}
	if fillZero(&p.Intro, def.Intro) {
		changed = true
	}
	if fillZero(&p.Highlights, def.Highlights) {
		changed = true
	}
	if fillSlice(&p.Highlights.Items, def.Highlights.Items) {
		changed = true
	}
	return changed
}

// repairNavigation guarantees exactly one /store entry: when missing it is
// inserted immediately before the first /contact entry, or appended when the
// document has no contact entry either.
func repairNavigation(nav []NavItem) ([]NavItem, bool) {
	for _, item := range nav {
		if item.URL == storeNavURL {
			return nav, false
		}
	}
	for i, item := range nav {
		if item.URL == contactNavURL {
			out := make([]NavItem, 0, len(nav)+1)
			out = append(out, nav[:i]...)
			out = append(out, storeNavEntry)
			out = append(out, nav[i:]...)
			return out, true
		}
	}
	return append(nav, storeNavEntry), true
}

func fillColors(c *Colors, def Colors) bool {
	changed := setIfEmpty(&c.Primary, def.Primary)
	if setIfEmpty(&c.PrimaryDark, def.PrimaryDark) {
		changed = true
	}
	if setIfEmpty(&c.Accent, def.Accent) {
		changed = true
	}
	if setIfEmpty(&c.Background, def.Background) {
		changed = true
	}
	if setIfEmpty(&c.Text, def.Text) {
		changed = true
	}
	if setIfEmpty(&c.Muted, def.Muted) {
		changed = true
	}
	return changed
}

// fillZero copies def into dst when dst still holds its type's zero value.
// The default always comes from a fresh DefaultDocument, so plain assignment
// never aliases shared state.
func fillZero[T any](dst *T, def T) bool {
	if reflect.ValueOf(dst).Elem().IsZero() {
		*dst = def
		return true
	}
	return false
}

// fillSlice distinguishes a missing list (nil) from a submitted-empty one.
func fillSlice[T any](dst *[]T, def []T) bool {
	if *dst != nil {
		return false
	}
	if def == nil {
		def = []T{}
	}
	*dst = def
	return true
}

func setIfEmpty(dst *string, def string) bool {
	if *dst != "" || def == "" {
		return false
	}
	*dst = def
	return true
}
