package inventory

import "encoding/json"

// Inventory is the printer catalog shown on the store page, persisted as a
// single JSON value under the "printer_inventory" settings key.
type Inventory struct {
	Manufacturers []Manufacturer `json:"manufacturers"`
}

type Manufacturer struct {
	Name   string  `json:"name"`
	Note   string  `json:"note,omitempty"`
	Models []Model `json:"models"`
}

type Model struct {
	Model         string   `json:"model"`
	ReleaseYear   int      `json:"release_year"`
	Description   string   `json:"description,omitempty"`
	Image         string   `json:"image"`
	ImageAlt      string   `json:"image_alt"`
	ImageGallery  []string `json:"image_gallery"`
	FallbackImage string   `json:"fallback_image"`
	Cartridges    []string `json:"cartridges"`
}

// Decode parses a serialized inventory. Structurally incomplete input is
// fine; Migrate heals it afterwards.
func Decode(data []byte) (*Inventory, error) {
	var inv Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Encode serializes the inventory the way the settings store expects it.
func (inv *Inventory) Encode() ([]byte, error) {
	return json.MarshalIndent(inv, "", "  ")
}
