package inventory

import (
	"embed"
	_ "embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

//go:embed default_inventory.json
var defaultInventoryJSON []byte

// printerAssets holds the placeholder illustrations bundled with the binary.
// A model whose slug matches one of these files can always fall back to it.
//
//go:embed assets/printers
var printerAssets embed.FS

// DefaultInventory returns a fresh copy of the bundled printer inventory.
func DefaultInventory() *Inventory {
	var inv Inventory
	if err := json.Unmarshal(defaultInventoryJSON, &inv); err != nil {
		panic(fmt.Sprintf("inventory: bundled default inventory is invalid: %v", err))
	}
	return &inv
}

// localImagePath returns the public path of the bundled placeholder image
// for a slug, or "" when no such asset ships with the binary.
func localImagePath(slug string) string {
	if slug == "" {
		return ""
	}
	if _, err := fs.Stat(printerAssets, "assets/printers/"+slug+".svg"); err != nil {
		return ""
	}
	return "/static/printers/" + slug + ".svg"
}

// AssetFS exposes the bundled printer illustrations for static serving.
func AssetFS() fs.FS {
	sub, err := fs.Sub(printerAssets, "assets/printers")
	if err != nil {
		panic(fmt.Sprintf("inventory: printer assets missing: %v", err))
	}
	return sub
}
