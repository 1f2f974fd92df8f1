package main

import "github.com/sevigo/wizpro/internal/client"

// Carries the result of a review request.
type reviewCompleteMsg struct {
	outcome *client.Outcome
	err     error
}

// A file read by /load.
type fileLoadedMsg struct {
	name    string
	content string
}

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeWarn
	noticeError
)

// A line for the notice bar, reported by commands that have nothing else to return.
type noticeMsg struct {
	kind noticeKind
	text string
}

// A generic error message for reporting failures from commands.
type errorMsg struct{ err error }

func (e errorMsg) Error() string {
	return e.err.Error()
}
