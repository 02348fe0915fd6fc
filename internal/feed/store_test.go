package feed_test

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"littlex/internal/core"
	"littlex/internal/feed"
)

func newStore(t *testing.T) *feed.Store {
	t.Helper()
	return feed.NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestInsertAndList(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	a := s.Insert(t.Context(), "hello", "alice", nil)
	b := s.Insert(t.Context(), "world", "bob", []string{"pic.png"})

	posts := s.List(t.Context())
	require.Len(t, posts, 2)
	require.Equal(t, b.ID, posts[0].ID)
	require.Equal(t, a.ID, posts[1].ID)
	require.Equal(t, []string{"pic.png"}, posts[0].Media)
	require.Equal(t, []string{}, posts[1].Media)
	require.Empty(t, posts[1].Likes)
	require.Empty(t, posts[1].Comments)
}

func TestInsertDefaultsUsername(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	p := s.Insert(t.Context(), "no author", "", nil)
	require.Equal(t, "anon", p.Username)
}

func TestListOrderAfterManyInserts(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	ids := make([]string, 10)
	for i := range ids {
		ids[i] = s.Insert(t.Context(), fmt.Sprintf("post %d", i), "alice", nil).ID
	}

	got := lo.Map(s.List(t.Context()), func(p *core.Post, _ int) string {
		return p.ID
	})
	require.Equal(t, lo.Reverse(ids), got)
}

func TestListReturnsSnapshot(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	p := s.Insert(t.Context(), "hello", "alice", nil)
	before := s.List(t.Context())

	_, err := s.AddLike(t.Context(), p.ID, "bob")
	require.NoError(t, err)

	require.Empty(t, before[0].Likes)
}

func TestGet(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	p := s.Insert(t.Context(), "hello", "alice", nil)

	got, err := s.Get(t.Context(), p.ID)
	require.NoError(t, err)
	require.Equal(t, "hello", got.Content)

	_, err = s.Get(t.Context(), "bogus")
	require.ErrorIs(t, err, core.ErrPostNotFound)
}

func TestAddLikeIsIdempotent(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	p := s.Insert(t.Context(), "hello", "alice", nil)

	for range 5 {
		got, err := s.AddLike(t.Context(), p.ID, "alice")
		require.NoError(t, err)
		require.Equal(t, []string{"alice"}, got.Likes)
	}
}

func TestRemoveLikeAbsentIsNoop(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	p := s.Insert(t.Context(), "hello", "alice", nil)
	_, err := s.AddLike(t.Context(), p.ID, "bob")
	require.NoError(t, err)

	got, err := s.RemoveLike(t.Context(), p.ID, "carol")
	require.NoError(t, err)
	require.Equal(t, []string{"bob"}, got.Likes)

	got, err = s.RemoveLike(t.Context(), p.ID, "bob")
	require.NoError(t, err)
	require.Empty(t, got.Likes)
}

func TestLikeMissingPost(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	_, err := s.AddLike(t.Context(), "bogus", "alice")
	require.ErrorIs(t, err, core.ErrPostNotFound)
	_, err = s.RemoveLike(t.Context(), "bogus", "alice")
	require.ErrorIs(t, err, core.ErrPostNotFound)
}

func TestAddComment(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	p := s.Insert(t.Context(), "hello", "alice", nil)

	_, err := s.AddComment(t.Context(), p.ID, "bob", "  ")
	require.ErrorIs(t, err, core.ErrEmptyContent)

	got, err := s.AddComment(t.Context(), p.ID, "bob", "hi")
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	require.Equal(t, "hi", got.Comments[0].Content)
	require.Equal(t, "bob", got.Comments[0].Username)
	require.NotEmpty(t, got.Comments[0].ID)
}

func TestCommentIDsAreUnique(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	p := s.Insert(t.Context(), "hello", "alice", nil)
	for i := range 20 {
		_, err := s.AddComment(t.Context(), p.ID, "bob", fmt.Sprintf("c%d", i))
		require.NoError(t, err)
	}

	got, err := s.Get(t.Context(), p.ID)
	require.NoError(t, err)
	ids := lo.Map(got.Comments, func(c core.Comment, _ int) string { return c.ID })
	require.Len(t, lo.Uniq(ids), 20)
}

func TestRemoveComment(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	p := s.Insert(t.Context(), "hello", "alice", nil)
	withComment, err := s.AddComment(t.Context(), p.ID, "bob", "nice!")
	require.NoError(t, err)

	commentID := withComment.Comments[0].ID

	got, removed, err := s.RemoveComment(t.Context(), p.ID, commentID)
	require.NoError(t, err)
	require.Empty(t, got.Comments)
	require.Equal(t, "nice!", removed.Content)
	require.Equal(t, commentID, removed.ID)
}

func TestRemoveCommentPreservesOrder(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	p := s.Insert(t.Context(), "hello", "alice", nil)
	for _, c := range []string{"one", "two", "three"} {
		_, err := s.AddComment(t.Context(), p.ID, "bob", c)
		require.NoError(t, err)
	}

	got, err := s.Get(t.Context(), p.ID)
	require.NoError(t, err)

	post, _, err := s.RemoveComment(t.Context(), p.ID, got.Comments[1].ID)
	require.NoError(t, err)
	contents := lo.Map(post.Comments, func(c core.Comment, _ int) string { return c.Content })
	require.Equal(t, []string{"one", "three"}, contents)
}

func TestRemoveCommentDistinguishesNotFound(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	p := s.Insert(t.Context(), "hello", "alice", nil)

	_, _, err := s.RemoveComment(t.Context(), "bogus", "whatever")
	require.ErrorIs(t, err, core.ErrPostNotFound)

	_, _, err = s.RemoveComment(t.Context(), p.ID, "bogus")
	require.ErrorIs(t, err, core.ErrCommentNotFound)
}

// The full dispatcher-level scenario, at store level: insert two posts,
// double-like, rejected empty comment, comment and uncomment.
func TestFeedScenario(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	a := s.Insert(t.Context(), "hello", "alice", nil)
	b := s.Insert(t.Context(), "world", "bob", nil)

	posts := s.List(t.Context())
	require.Equal(t, []string{b.ID, a.ID}, lo.Map(posts, func(p *core.Post, _ int) string { return p.ID }))

	_, err := s.AddLike(t.Context(), a.ID, "alice")
	require.NoError(t, err)
	liked, err := s.AddLike(t.Context(), a.ID, "alice")
	require.NoError(t, err)
	require.Equal(t, []string{"alice"}, liked.Likes)

	_, err = s.AddComment(t.Context(), a.ID, "bob", "")
	require.ErrorIs(t, err, core.ErrEmptyContent)

	commented, err := s.AddComment(t.Context(), a.ID, "bob", "nice!")
	require.NoError(t, err)
	require.Len(t, commented.Comments, 1)
	require.Equal(t, "nice!", commented.Comments[0].Content)

	after, removed, err := s.RemoveComment(t.Context(), a.ID, commented.Comments[0].ID)
	require.NoError(t, err)
	require.Empty(t, after.Comments)
	require.Equal(t, "nice!", removed.Content)
}

func TestConcurrentMutation(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	a := s.Insert(t.Context(), "a", "alice", nil)
	b := s.Insert(t.Context(), "b", "bob", nil)

	var wg sync.WaitGroup
	errs := make(chan error, 200)
	for i := range 50 {
		wg.Add(3)
		user := fmt.Sprintf("user-%d", i%10)
		go func() {
			defer wg.Done()
			_, err := s.AddLike(t.Context(), a.ID, user)
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := s.AddComment(t.Context(), b.ID, user, "hi")
			errs <- err
		}()
		go func() {
			defer wg.Done()
			s.Insert(t.Context(), "noise", user, nil)
			s.List(t.Context())
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	liked, err := s.Get(t.Context(), a.ID)
	require.NoError(t, err)
	require.Len(t, liked.Likes, 10)
	require.Len(t, lo.Uniq(liked.Likes), 10)

	commented, err := s.Get(t.Context(), b.ID)
	require.NoError(t, err)
	require.Len(t, commented.Comments, 50)

	require.Equal(t, 52, s.Len())
}
