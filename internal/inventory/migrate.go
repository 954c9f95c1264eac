package inventory

import (
	"fmt"
	"slices"
	"strings"
)

// Migrate normalizes an inventory in place: legacy image URLs are
// reconciled to their current locations, galleries are cleaned up, missing
// alt text is synthesized and list fields are guaranteed non-nil. It
// reports whether anything changed so callers can skip the persistence
// write when nothing did, and it is idempotent.
//
// Structurally incomplete input (a nil manufacturers list, models without
// cartridges) is healed, never rejected.
func Migrate(inv *Inventory) bool {
	changed := false
	if inv.Manufacturers == nil {
		inv.Manufacturers = []Manufacturer{}
		changed = true
	}
	for mi := range inv.Manufacturers {
		man := &inv.Manufacturers[mi]
		if man.Models == nil {
			man.Models = []Model{}
			changed = true
		}
		for i := range man.Models {
			if migrateModel(man.Name, &man.Models[i]) {
				changed = true
			}
		}
	}
	return changed
}

func migrateModel(manufacturer string, m *Model) bool {
	changed := false
	slug := Slug(manufacturer, m.Model)
	def, mapped := imageDefaults[slug]

	// 1. reconcile a known model's image to the desired one
	if mapped && def.Image != "" && wantsDesiredImage(m.Image, def) {
		if m.Image != def.Image {
			m.Image = def.Image
			changed = true
		}
	}

	// 2. still empty: use the bundled placeholder when one ships for the slug
	if m.Image == "" {
		if p := localImagePath(slug); p != "" {
			m.Image = p
			changed = true
		}
	}

	// 3. gallery: drop empty entries, primary image first, no self-duplicates
	gallery := make([]string, 0, len(m.ImageGallery)+1)
	for _, entry := range m.ImageGallery {
		if entry != "" && entry != m.Image {
			gallery = append(gallery, entry)
		}
	}
	if m.Image != "" {
		gallery = append([]string{m.Image}, gallery...)
	}
	if m.ImageGallery == nil || !slices.Equal(m.ImageGallery, gallery) {
		m.ImageGallery = gallery
		changed = true
	}

	// 4. alt text: replace the legacy placeholder, then synthesize
	if mapped && def.Alt != "" && (m.ImageAlt == "" || strings.HasPrefix(m.ImageAlt, legacyAltPrefix)) {
		if m.ImageAlt != def.Alt {
			m.ImageAlt = def.Alt
			changed = true
		}
	}
	if m.ImageAlt == "" {
		m.ImageAlt = fmt.Sprintf("Stylized illustration of the %s %s laser printer", manufacturer, m.Model)
		changed = true
	}

	// 5. fallback image: mapped default wins, else the bundled placeholder
	if mapped && def.Fallback != "" {
		if m.FallbackImage != def.Fallback {
			m.FallbackImage = def.Fallback
			changed = true
		}
	} else if m.FallbackImage == "" {
		if p := localImagePath(slug); p != "" {
			m.FallbackImage = p
			changed = true
		}
	}

	if m.Cartridges == nil {
		m.Cartridges = []string{}
		changed = true
	}
	return changed
}

// wantsDesiredImage decides whether the current image value should be
// replaced by the mapped default: empty values, anything under the retired
// static tree, the desired value itself, and URLs still pointing at a
// legacy host all qualify. A hand-edited custom image does not.
func wantsDesiredImage(current string, def imageDefault) bool {
	if current == "" || current == def.Image {
		return true
	}
	if strings.HasPrefix(current, legacyStaticPrefix) {
		return true
	}
	for _, frag := range def.LegacySubstrings {
		if strings.Contains(current, frag) {
			return true
		}
	}
	return false
}
