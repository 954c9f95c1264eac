package sessions

// State is the per-client admin session: whether the visitor has
// authenticated, whether they are in admin edit mode, and which draft row
// belongs to them. It is stored server-side; the client only holds a signed
// token naming the session id.
type State struct {
	ID            string `json:"id"`
	Authenticated bool   `json:"authenticated"`
	Editing       bool   `json:"editing"`
	DraftID       string `json:"draftId,omitempty"`
}
