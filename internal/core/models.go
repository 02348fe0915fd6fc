package core

import (
	"time"
)

// Post is a single feed entry ("tweet"). Content and media are immutable
// after creation; only likes and comments mutate.
type Post struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Media     []string  `json:"media"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	Comments  []Comment `json:"comments"`
	Likes     []string  `json:"likes"`
}

// Comment is a reply attached to a Post. Likes are kept for symmetry with
// Post, no command touches them yet.
type Comment struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Likes     []string  `json:"likes"`
}

type User struct {
	Username string `json:"username"`
}

// Profile is a stub: there is no follow graph in this system. The relation
// lists are permanently empty and exist for interface compatibility.
type Profile struct {
	User      User     `json:"user"`
	Following []string `json:"following"`
	Followers []string `json:"followers"`
}

func NewProfile(username string) Profile {
	return Profile{
		User:      User{Username: username},
		Following: []string{},
		Followers: []string{},
	}
}

type EntityKind string

const (
	KindArticle EntityKind = "article"
	KindProduct EntityKind = "product"
	KindPlace   EntityKind = "place"
)

// TaggedEntity is a single enrichment result from the assistant, either a
// deterministic keyword match or a provider answer. Which fields are
// populated depends on the kind and on the source.
type TaggedEntity struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Category    string `json:"category,omitempty"`
	Context     string `json:"context,omitempty"`
	URL         string `json:"url,omitempty"`
	Source      string `json:"source,omitempty"`
	Title       string `json:"title,omitempty"`
	Topic       string `json:"topic,omitempty"`
	Description string `json:"description,omitempty"`
}

type Article struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	URL    string `json:"url"`
}

type Detected struct {
	HasArticles bool `json:"has_articles"`
	HasProducts bool `json:"has_products"`
	HasPlaces   bool `json:"has_places"`
}

type Explanation struct {
	Explanation string         `json:"explanation"`
	Articles    []TaggedEntity `json:"articles"`
	Products    []TaggedEntity `json:"products"`
	Places      []TaggedEntity `json:"places"`
	Detected    Detected       `json:"detected"`
}

type ImageAnalysis struct {
	Info             string         `json:"info"`
	DetectedProducts []TaggedEntity `json:"detected_products"`
	DetectedPlaces   []TaggedEntity `json:"detected_places"`
	Suggestions      []string       `json:"suggestions"`
}
