// Package drafts owns the per-session editing workflow: a session in admin
// edit mode works on a scratch copy of the content document, isolated from
// the published copy, until it explicitly publishes or discards.
package drafts

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"printstudio/internal/content"
	"printstudio/internal/forms"
	"printstudio/internal/sessions"
	"printstudio/internal/settings"
	"printstudio/pkg/logger"
)

// Draft rows live in the same key-value store as the published document.
const draftKeyPrefix = "draft:"

var (
	// ErrDraftUnavailable means the session's draft row could not be read
	// or decoded. Page rendering recovers from it by falling back to the
	// published document; edit operations surface it.
	ErrDraftUnavailable = errors.New("draft unavailable")

	// ErrNotEditing means an edit operation arrived for a session that
	// never entered edit mode.
	ErrNotEditing = errors.New("session is not in edit mode")
)

// Manager drives the draft lifecycle. Callers pass the session state in
// explicitly and are responsible for persisting it after operations that
// mutate it (EnterEditMode, Publish, Discard).
type Manager struct {
	store   settings.Repository
	content *settings.Service
}

func NewManager(svc *settings.Service) *Manager {
	return &Manager{store: svc.Repo(), content: svc}
}

func draftKey(id string) string { return draftKeyPrefix + id }

// EnterEditMode moves the session into editing, seeding the draft from the
// current published document when the session has no draft row yet.
// Re-entering while already editing is a no-op that keeps the draft.
func (m *Manager) EnterEditMode(ctx context.Context, sess *sessions.State) error {
	if sess.DraftID == "" {
		sess.DraftID = uuid.NewString()
	}
	if _, err := m.store.Get(ctx, draftKey(sess.DraftID)); err != nil {
		if !errors.Is(err, settings.ErrNotFound) {
			return fmt.Errorf("check draft: %w", err)
		}
		doc, err := m.content.Content(ctx)
		if err != nil {
			return fmt.Errorf("seed draft: %w", err)
		}
		if err := m.saveDraft(ctx, sess.DraftID, doc); err != nil {
			return err
		}
		logger.Debugf("seeded draft %s from published content", sess.DraftID)
	}
	sess.Editing = true
	return nil
}

// EffectiveContent returns the document a request should render: the
// session's normalized draft while editing, the published document
// otherwise. A broken draft never breaks page rendering; it falls back to
// the published copy.
func (m *Manager) EffectiveContent(ctx context.Context, sess *sessions.State) (*content.Document, error) {
	if sess == nil || !sess.Editing || sess.DraftID == "" {
		return m.content.Content(ctx)
	}
	doc, err := m.draft(ctx, sess.DraftID)
	if err != nil {
		logger.Warnf("draft %s unavailable, serving published content: %v", sess.DraftID, err)
		return m.content.Content(ctx)
	}
	return doc, nil
}

// ApplyEdit maps one page's form submission into the draft and writes the
// draft back. An unknown page kind is rejected before anything is written,
// leaving the draft untouched.
func (m *Manager) ApplyEdit(ctx context.Context, sess *sessions.State, page string, form url.Values) error {
	if sess == nil || !sess.Editing || sess.DraftID == "" {
		return ErrNotEditing
	}
	doc, err := m.draft(ctx, sess.DraftID)
	if err != nil {
		return err
	}
	if err := forms.Apply(doc, page, form); err != nil {
		return err
	}
	return m.saveDraft(ctx, sess.DraftID, doc)
}

// Publish promotes the draft to the published document, then deletes the
// draft row and clears the session's edit state.
func (m *Manager) Publish(ctx context.Context, sess *sessions.State) error {
	if sess == nil || !sess.Editing || sess.DraftID == "" {
		return ErrNotEditing
	}
	doc, err := m.draft(ctx, sess.DraftID)
	if err != nil {
		return err
	}
	if err := m.content.SaveContent(ctx, doc); err != nil {
		return fmt.Errorf("publish draft: %w", err)
	}
	if err := m.store.Delete(ctx, draftKey(sess.DraftID)); err != nil {
		return fmt.Errorf("drop draft: %w", err)
	}
	sess.Editing = false
	sess.DraftID = ""
	return nil
}

// Discard deletes the draft row and clears the session's edit state
// without touching the published document.
func (m *Manager) Discard(ctx context.Context, sess *sessions.State) error {
	if sess == nil {
		return nil
	}
	if sess.DraftID != "" {
		if err := m.store.Delete(ctx, draftKey(sess.DraftID)); err != nil {
			return fmt.Errorf("drop draft: %w", err)
		}
	}
	sess.Editing = false
	sess.DraftID = ""
	return nil
}

// draft loads and normalizes the draft document. The normalized form is
// not written back; only explicit edits persist it.
func (m *Manager) draft(ctx context.Context, id string) (*content.Document, error) {
	raw, err := m.store.Get(ctx, draftKey(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDraftUnavailable, err)
	}
	doc, err := content.Decode([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDraftUnavailable, err)
	}
	content.Normalize(doc)
	return doc, nil
}

func (m *Manager) saveDraft(ctx context.Context, id string, doc *content.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := m.store.Put(ctx, draftKey(id), string(data)); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}
