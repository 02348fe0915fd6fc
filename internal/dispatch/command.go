package dispatch

// Command names understood by the dispatcher. They mirror the walker names
// of the wire protocol.
const (
	CmdCreateTweet   = "create_tweet"
	CmdLoadFeed      = "load_feed"
	CmdGetProfile    = "get_profile"
	CmdLikeTweet     = "like_tweet"
	CmdRemoveLike    = "remove_like"
	CmdCommentTweet  = "comment_tweet"
	CmdRemoveComment = "remove_comment"
)

// Command is a decoded request: a name plus the typed fields the transport
// extracted from path and body. Unused fields stay zero; the dispatcher
// knows which ones each command needs.
type Command struct {
	Name string

	Content   string
	Username  string
	Media     []string
	TweetID   string
	CommentID string
}
