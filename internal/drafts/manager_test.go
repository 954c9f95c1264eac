package drafts

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"printstudio/internal/forms"
	"printstudio/internal/sessions"
	"printstudio/internal/settings"
)

func newTestManager(t *testing.T) (*Manager, *settings.Service, settings.Repository) {
	t.Helper()
	repo := settings.NewMemoryRepository()
	svc := settings.NewService(repo, "printstudio")
	require.NoError(t, svc.EnsureDefaults(context.Background()))
	return NewManager(svc), svc, repo
}

func TestEnterEditModeSeedsDraftFromPublished(t *testing.T) {
	mgr, svc, repo := newTestManager(t)
	ctx := context.Background()

	published, err := svc.Content(ctx)
	require.NoError(t, err)

	sess := &sessions.State{ID: "s1", Authenticated: true}
	require.NoError(t, mgr.EnterEditMode(ctx, sess))
	require.True(t, sess.Editing)
	require.NotEmpty(t, sess.DraftID)

	raw, err := repo.Get(ctx, draftKey(sess.DraftID))
	require.NoError(t, err)
	wanted, err := published.Encode()
	require.NoError(t, err)
	require.JSONEq(t, string(wanted), raw)
}

func TestEnterEditModeIsIdempotent(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	ctx := context.Background()

	sess := &sessions.State{ID: "s1", Authenticated: true}
	require.NoError(t, mgr.EnterEditMode(ctx, sess))
	require.NoError(t, mgr.ApplyEdit(ctx, sess, "home", url.Values{"home_hero_title": {"Edited"}}))

	id := sess.DraftID
	require.NoError(t, mgr.EnterEditMode(ctx, sess))
	require.Equal(t, id, sess.DraftID)

	doc, err := mgr.EffectiveContent(ctx, sess)
	require.NoError(t, err)
	require.Equal(t, "Edited", doc.Pages.Home.Hero.Title)
}

func TestPublishPromotesDraft(t *testing.T) {
	mgr, svc, repo := newTestManager(t)
	ctx := context.Background()

	sess := &sessions.State{ID: "s1", Authenticated: true}
	require.NoError(t, mgr.EnterEditMode(ctx, sess))
	require.NoError(t, mgr.ApplyEdit(ctx, sess, "home", url.Values{"home_hero_title": {"X"}}))

	id := sess.DraftID
	require.NoError(t, mgr.Publish(ctx, sess))
	require.False(t, sess.Editing)
	require.Empty(t, sess.DraftID)

	doc, err := svc.Content(ctx)
	require.NoError(t, err)
	require.Equal(t, "X", doc.Pages.Home.Hero.Title)

	_, err = repo.Get(ctx, draftKey(id))
	require.ErrorIs(t, err, settings.ErrNotFound)
}

func TestDiscardLeavesPublishedUntouched(t *testing.T) {
	mgr, svc, repo := newTestManager(t)
	ctx := context.Background()

	before, err := svc.Content(ctx)
	require.NoError(t, err)

	sess := &sessions.State{ID: "s1", Authenticated: true}
	require.NoError(t, mgr.EnterEditMode(ctx, sess))
	require.NoError(t, mgr.ApplyEdit(ctx, sess, "home", url.Values{"home_hero_title": {"Scrapped"}}))

	id := sess.DraftID
	require.NoError(t, mgr.Discard(ctx, sess))
	require.False(t, sess.Editing)
	require.Empty(t, sess.DraftID)

	after, err := svc.Content(ctx)
	require.NoError(t, err)
	require.Equal(t, before.Pages.Home.Hero.Title, after.Pages.Home.Hero.Title)

	_, err = repo.Get(ctx, draftKey(id))
	require.ErrorIs(t, err, settings.ErrNotFound)
}

func TestApplyEditUnsupportedPageLeavesDraftUnmodified(t *testing.T) {
	mgr, _, repo := newTestManager(t)
	ctx := context.Background()

	sess := &sessions.State{ID: "s1", Authenticated: true}
	require.NoError(t, mgr.EnterEditMode(ctx, sess))

	before, err := repo.Get(ctx, draftKey(sess.DraftID))
	require.NoError(t, err)

	err = mgr.ApplyEdit(ctx, sess, "blog", url.Values{"blog_title": {"nope"}})
	require.ErrorIs(t, err, forms.ErrUnsupportedPage)

	after, err := repo.Get(ctx, draftKey(sess.DraftID))
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestEditOperationsRequireEditMode(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	ctx := context.Background()

	sess := &sessions.State{ID: "s1", Authenticated: true}
	require.ErrorIs(t, mgr.ApplyEdit(ctx, sess, "home", url.Values{}), ErrNotEditing)
	require.ErrorIs(t, mgr.Publish(ctx, sess), ErrNotEditing)
	require.NoError(t, mgr.Discard(ctx, sess))
}

func TestEffectiveContentFallsBackOnCorruptDraft(t *testing.T) {
	mgr, svc, repo := newTestManager(t)
	ctx := context.Background()

	sess := &sessions.State{ID: "s1", Authenticated: true}
	require.NoError(t, mgr.EnterEditMode(ctx, sess))
	require.NoError(t, repo.Put(ctx, draftKey(sess.DraftID), "{not json"))

	doc, err := mgr.EffectiveContent(ctx, sess)
	require.NoError(t, err)

	published, err := svc.Content(ctx)
	require.NoError(t, err)
	require.Equal(t, published.Site.Name, doc.Site.Name)
}

func TestEffectiveContentServesDraftWhileEditing(t *testing.T) {
	mgr, svc, _ := newTestManager(t)
	ctx := context.Background()

	sess := &sessions.State{ID: "s1", Authenticated: true}
	require.NoError(t, mgr.EnterEditMode(ctx, sess))
	require.NoError(t, mgr.ApplyEdit(ctx, sess, "site", url.Values{"site_name": {"Draft Name"}}))

	doc, err := mgr.EffectiveContent(ctx, sess)
	require.NoError(t, err)
	require.Equal(t, "Draft Name", doc.Site.Name)

	published, err := svc.Content(ctx)
	require.NoError(t, err)
	require.NotEqual(t, "Draft Name", published.Site.Name)

	readOnly := &sessions.State{ID: "s2"}
	doc, err = mgr.EffectiveContent(ctx, readOnly)
	require.NoError(t, err)
	require.Equal(t, published.Site.Name, doc.Site.Name)
}
