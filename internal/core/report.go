package core

import (
	"errors"
	"net/http"
)

// ReportItem wraps one entity in the envelope. Removed is only set by the
// remove_comment command, next to the post it was removed from.
type ReportItem struct {
	Context any      `json:"context"`
	Removed *Comment `json:"removed,omitempty"`
}

// Report is the normalized command result: either a nested reports envelope
// or an error message. The nested-list shape is wire compatibility with
// existing consumers, do not flatten it. Status carries the HTTP-equivalent
// classification and is not serialized.
type Report struct {
	Reports [][]ReportItem `json:"reports,omitempty"`
	Error   string         `json:"error,omitempty"`

	Status int `json:"-"`
}

func Success(items ...ReportItem) Report {
	return Report{
		Reports: [][]ReportItem{items},
		Status:  http.StatusOK,
	}
}

func Context(entity any) ReportItem {
	return ReportItem{Context: entity}
}

func Failure(status int, message string) Report {
	return Report{Error: message, Status: status}
}

// FailureFromError classifies an error into the wire taxonomy: missing
// post or comment map to 404, validation to 400, everything else is an
// internal fault.
func FailureFromError(err error) Report {
	switch {
	case errors.Is(err, ErrPostNotFound), errors.Is(err, ErrCommentNotFound):
		return Failure(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmptyContent):
		return Failure(http.StatusBadRequest, err.Error())
	default:
		return Failure(http.StatusInternalServerError, err.Error())
	}
}
