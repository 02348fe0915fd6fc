package feed

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"littlex/internal/core"
)

const AnonUsername = "anon"

// entry pairs a post with its own lock. Mutations on different posts never
// contend; only the feed index shares a lock.
type entry struct {
	mu   sync.Mutex
	post core.Post
}

// Store is the in-memory social graph: every post with its nested likes and
// comments, newest first. It is the only shared mutable state in the process
// and lives exactly as long as the process does.
type Store struct {
	Logger *slog.Logger

	mu    sync.RWMutex
	order []*entry
	byID  map[string]*entry
}

func (s *Store) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "feed.Store")
	s.byID = map[string]*entry{}
	return nil
}

// NewStore builds a ready-to-use store without the service lifecycle, for
// callers that wire dependencies by hand.
func NewStore(logger *slog.Logger) *Store {
	s := &Store{Logger: logger}
	_ = s.Init(context.Background())
	return s
}

// Insert creates a post and prepends it to the feed. The post becomes
// visible to List only after it is fully constructed.
func (s *Store) Insert(_ context.Context, content, username string, media []string) *core.Post {
	if username == "" {
		username = AnonUsername
	}
	if media == nil {
		media = []string{}
	}

	e := &entry{post: core.Post{
		ID:        uuid.NewString(),
		Content:   content,
		Media:     media,
		CreatedAt: time.Now().UTC(),
		Username:  username,
		Comments:  []core.Comment{},
		Likes:     []string{},
	}}

	s.mu.Lock()
	s.order = append([]*entry{e}, s.order...)
	s.byID[e.post.ID] = e
	s.mu.Unlock()

	s.Logger.Debug("post created", "id", e.post.ID, "username", username)

	p := snapshot(&e.post)
	return &p
}

// List returns a read-consistent snapshot of the feed, newest first. The
// index lock is held only to copy entry references; each post is then
// snapshotted under its own lock.
func (s *Store) List(_ context.Context) []*core.Post {
	s.mu.RLock()
	entries := make([]*entry, len(s.order))
	copy(entries, s.order)
	s.mu.RUnlock()

	return lo.Map(entries, func(e *entry, _ int) *core.Post {
		e.mu.Lock()
		defer e.mu.Unlock()
		p := snapshot(&e.post)
		return &p
	})
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *Store) Get(_ context.Context, id string) (*core.Post, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	p := snapshot(&e.post)
	return &p, nil
}

// AddLike records username in the post's like set. Liking twice is a no-op,
// the like set never holds duplicates.
func (s *Store) AddLike(_ context.Context, id, username string) (*core.Post, error) {
	if username == "" {
		username = AnonUsername
	}

	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !lo.Contains(e.post.Likes, username) {
		e.post.Likes = append(e.post.Likes, username)
	}
	p := snapshot(&e.post)
	return &p, nil
}

// RemoveLike removes username from the like set. Removing an absent like is
// success, not an error.
func (s *Store) RemoveLike(_ context.Context, id, username string) (*core.Post, error) {
	if username == "" {
		username = AnonUsername
	}

	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.post.Likes = lo.Filter(e.post.Likes, func(u string, _ int) bool {
		return u != username
	})
	p := snapshot(&e.post)
	return &p, nil
}

// AddComment appends a comment to the post. Content that trims to the empty
// string is rejected.
func (s *Store) AddComment(_ context.Context, id, username, content string) (*core.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, core.ErrEmptyContent
	}
	if username == "" {
		username = AnonUsername
	}

	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.post.Comments = append(e.post.Comments, core.Comment{
		ID:        uuid.NewString(),
		Username:  username,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		Likes:     []string{},
	})
	p := snapshot(&e.post)
	return &p, nil
}

// RemoveComment deletes the comment with the given id, preserving the order
// of the remaining ones, and reports what was removed. A missing post and a
// missing comment are distinct failures.
func (s *Store) RemoveComment(_ context.Context, postID, commentID string) (*core.Post, *core.Comment, error) {
	e, err := s.lookup(postID)
	if err != nil {
		return nil, nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	i := lo.IndexOf(lo.Map(e.post.Comments, func(c core.Comment, _ int) string {
		return c.ID
	}), commentID)
	if i < 0 {
		return nil, nil, core.ErrCommentNotFound
	}

	removed := e.post.Comments[i]
	e.post.Comments = append(e.post.Comments[:i], e.post.Comments[i+1:]...)

	p := snapshot(&e.post)
	return &p, &removed, nil
}

func (s *Store) lookup(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byID[id]
	if !ok {
		return nil, core.ErrPostNotFound
	}
	return e, nil
}

// snapshot deep-copies a post so callers never see later mutations.
// Call with the entry lock held.
func snapshot(p *core.Post) core.Post {
	out := *p
	out.Media = append([]string{}, p.Media...)
	out.Likes = append([]string{}, p.Likes...)
	out.Comments = lo.Map(p.Comments, func(c core.Comment, _ int) core.Comment {
		c.Likes = append([]string{}, c.Likes...)
		return c
	})
	return out
}
