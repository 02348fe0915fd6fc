package dispatch_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"littlex/internal/core"
	"littlex/internal/dispatch"
	"littlex/internal/feed"
)

func newDispatcher(t *testing.T) *dispatch.Dispatcher {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return dispatch.NewDispatcher(logger, feed.NewStore(logger))
}

func contextPost(t *testing.T, report core.Report) *core.Post {
	t.Helper()
	require.Len(t, report.Reports, 1)
	require.Len(t, report.Reports[0], 1)
	post, ok := report.Reports[0][0].Context.(*core.Post)
	require.True(t, ok)
	return post
}

func TestCreateTweet(t *testing.T) {
	t.Parallel()
	d := newDispatcher(t)

	report := d.Dispatch(t.Context(), dispatch.Command{
		Name:     dispatch.CmdCreateTweet,
		Content:  "hello",
		Username: "alice",
		Media:    []string{"cat.png"},
	})

	require.Equal(t, http.StatusOK, report.Status)
	post := contextPost(t, report)
	require.Equal(t, "hello", post.Content)
	require.Equal(t, "alice", post.Username)
	require.Equal(t, []string{"cat.png"}, post.Media)
	require.NotEmpty(t, post.ID)
}

func TestLoadFeedEnvelope(t *testing.T) {
	t.Parallel()
	d := newDispatcher(t)

	report := d.Dispatch(t.Context(), dispatch.Command{Name: dispatch.CmdLoadFeed})
	require.Equal(t, http.StatusOK, report.Status)
	require.Len(t, report.Reports, 1)
	require.Empty(t, report.Reports[0])

	d.Dispatch(t.Context(), dispatch.Command{Name: dispatch.CmdCreateTweet, Content: "one", Username: "alice"})
	d.Dispatch(t.Context(), dispatch.Command{Name: dispatch.CmdCreateTweet, Content: "two", Username: "bob"})

	report = d.Dispatch(t.Context(), dispatch.Command{Name: dispatch.CmdLoadFeed})
	require.Len(t, report.Reports, 1)
	require.Len(t, report.Reports[0], 2)

	newest, ok := report.Reports[0][0].Context.(*core.Post)
	require.True(t, ok)
	require.Equal(t, "two", newest.Content)
}

func TestGetProfile(t *testing.T) {
	t.Parallel()
	d := newDispatcher(t)

	report := d.Dispatch(t.Context(), dispatch.Command{Name: dispatch.CmdGetProfile, Username: "alice"})
	require.Equal(t, http.StatusOK, report.Status)

	profile, ok := report.Reports[0][0].Context.(core.Profile)
	require.True(t, ok)
	require.Equal(t, "alice", profile.User.Username)
	require.Empty(t, profile.Following)
	require.Empty(t, profile.Followers)
	require.NotNil(t, profile.Following)
	require.NotNil(t, profile.Followers)
}

func TestGetProfileDefaultsUsername(t *testing.T) {
	t.Parallel()
	d := newDispatcher(t)

	report := d.Dispatch(t.Context(), dispatch.Command{Name: dispatch.CmdGetProfile})
	profile := report.Reports[0][0].Context.(core.Profile)
	require.Equal(t, "guest", profile.User.Username)
}

func TestLikeCommands(t *testing.T) {
	t.Parallel()
	d := newDispatcher(t)

	created := contextPost(t, d.Dispatch(t.Context(), dispatch.Command{
		Name: dispatch.CmdCreateTweet, Content: "hello", Username: "alice",
	}))

	report := d.Dispatch(t.Context(), dispatch.Command{
		Name: dispatch.CmdLikeTweet, TweetID: created.ID, Username: "bob",
	})
	require.Equal(t, []string{"bob"}, contextPost(t, report).Likes)

	report = d.Dispatch(t.Context(), dispatch.Command{
		Name: dispatch.CmdLikeTweet, TweetID: created.ID, Username: "bob",
	})
	require.Equal(t, []string{"bob"}, contextPost(t, report).Likes)

	report = d.Dispatch(t.Context(), dispatch.Command{
		Name: dispatch.CmdRemoveLike, TweetID: created.ID, Username: "bob",
	})
	require.Empty(t, contextPost(t, report).Likes)

	report = d.Dispatch(t.Context(), dispatch.Command{
		Name: dispatch.CmdLikeTweet, TweetID: "bogus", Username: "bob",
	})
	require.Equal(t, http.StatusNotFound, report.Status)
	require.Equal(t, "Tweet not found", report.Error)
	require.Empty(t, report.Reports)
}

func TestCommentCommands(t *testing.T) {
	t.Parallel()
	d := newDispatcher(t)

	created := contextPost(t, d.Dispatch(t.Context(), dispatch.Command{
		Name: dispatch.CmdCreateTweet, Content: "hello", Username: "alice",
	}))

	report := d.Dispatch(t.Context(), dispatch.Command{
		Name: dispatch.CmdCommentTweet, TweetID: created.ID, Username: "bob", Content: "   ",
	})
	require.Equal(t, http.StatusBadRequest, report.Status)
	require.Equal(t, "Comment content required", report.Error)

	report = d.Dispatch(t.Context(), dispatch.Command{
		Name: dispatch.CmdCommentTweet, TweetID: created.ID, Username: "bob", Content: "nice!",
	})
	post := contextPost(t, report)
	require.Len(t, post.Comments, 1)

	report = d.Dispatch(t.Context(), dispatch.Command{
		Name: dispatch.CmdRemoveComment, TweetID: created.ID, CommentID: post.Comments[0].ID,
	})
	require.Equal(t, http.StatusOK, report.Status)
	item := report.Reports[0][0]
	require.Empty(t, item.Context.(*core.Post).Comments)
	require.NotNil(t, item.Removed)
	require.Equal(t, "nice!", item.Removed.Content)
}

func TestRemoveCommentNotFoundLevels(t *testing.T) {
	t.Parallel()
	d := newDispatcher(t)

	created := contextPost(t, d.Dispatch(t.Context(), dispatch.Command{
		Name: dispatch.CmdCreateTweet, Content: "hello", Username: "alice",
	}))

	report := d.Dispatch(t.Context(), dispatch.Command{
		Name: dispatch.CmdRemoveComment, TweetID: "bogus", CommentID: "whatever",
	})
	require.Equal(t, http.StatusNotFound, report.Status)
	require.Equal(t, "Tweet not found", report.Error)

	report = d.Dispatch(t.Context(), dispatch.Command{
		Name: dispatch.CmdRemoveComment, TweetID: created.ID, CommentID: "whatever",
	})
	require.Equal(t, http.StatusNotFound, report.Status)
	require.Equal(t, "Comment not found", report.Error)
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()
	d := newDispatcher(t)

	report := d.Dispatch(t.Context(), dispatch.Command{Name: "teleport"})
	require.Equal(t, http.StatusBadRequest, report.Status)
	require.Equal(t, "Unknown command: teleport", report.Error)
	require.Empty(t, report.Reports)
}
