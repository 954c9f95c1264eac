package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed default_content.json
var defaultContentJSON []byte

// DefaultDocument returns a fresh copy of the bundled default content
// document. Each call decodes the embedded JSON anew, so callers may freely
// take ownership of any part of the returned tree.
func DefaultDocument() *Document {
	var d Document
	if err := json.Unmarshal(defaultContentJSON, &d); err != nil {
		panic(fmt.Sprintf("content: bundled default document is invalid: %v", err))
	}
	return &d
}
