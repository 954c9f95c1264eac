package inventory

import "strings"

const (
	// legacyStaticPrefix is where printer images lived before uploads and
	// bundled assets replaced the old static tree.
	legacyStaticPrefix = "/static/img/printers/"

	// legacyAltPrefix is the generic placeholder alt text an older importer
	// stamped onto every model.
	legacyAltPrefix = "Product photo of"
)

// imageDefault describes the desired image data for one (manufacturer,
// model) pair, plus the legacy URL fragments that identify stale values
// still pointing at retired hosts.
type imageDefault struct {
	Image            string
	Alt              string
	Fallback         string
	LegacySubstrings []string
}

// imageDefaults is keyed by Slug(manufacturer, model).
var imageDefaults = map[string]imageDefault{
	"hp-laserjet-pro-m404dn": {
		Image:    "/static/printers/hp-laserjet-pro-m404dn.svg",
		Alt:      "HP LaserJet Pro M404dn desktop mono laser printer",
		Fallback: "/static/printers/hp-laserjet-pro-m404dn.svg",
		LegacySubstrings: []string{
			"legacy-cdn.printstudio",
			"img.pstatic.example/m404",
		},
	},
	"brother-hl-l2350dw": {
		Image:    "/static/printers/brother-hl-l2350dw.svg",
		Alt:      "Brother HL-L2350DW compact wireless laser printer",
		Fallback: "/static/printers/brother-hl-l2350dw.svg",
		LegacySubstrings: []string{
			"legacy-cdn.printstudio",
			"brother-assets.example",
		},
	},
	"canon-imageclass-lbp6030w": {
		Image:    "/static/printers/canon-imageclass-lbp6030w.svg",
		Alt:      "Canon imageCLASS LBP6030w entry-level laser printer",
		Fallback: "/static/printers/canon-imageclass-lbp6030w.svg",
		LegacySubstrings: []string{
			"legacy-cdn.printstudio",
		},
	},
}

// Slug derives the canonical asset key for a manufacturer/model pair:
// lowercased, with every run of non-alphanumeric characters collapsed to a
// single hyphen.
func Slug(manufacturer, model string) string {
	s := strings.ToLower(manufacturer + " " + model)
	var b strings.Builder
	pendingHyphen := false
	for _, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
