package core

import "context"

// Store is the key/value persistence used by the editor. Keys are flat strings
// such as "language" or "code_python". Get reports whether the key exists.
//
//go:generate mockgen -destination=../../mocks/mock_store.go -package=mocks . Store
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Completer produces a completion for a prompt. It is the narrow view of the
// AI model the review relay depends on.
//
//go:generate mockgen -destination=../../mocks/mock_completer.go -package=mocks . Completer
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Reviewer turns a code submission into review markdown.
//
//go:generate mockgen -destination=../../mocks/mock_reviewer.go -package=mocks . Reviewer
type Reviewer interface {
	Review(ctx context.Context, code string, language Language) (string, error)
}
