package core

import "errors"

var (
	ErrPostNotFound    = errors.New("Tweet not found")
	ErrCommentNotFound = errors.New("Comment not found")
	ErrEmptyContent    = errors.New("Comment content required")
)
