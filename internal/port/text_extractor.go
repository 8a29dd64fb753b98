package port

import "context"

// TextExtractor turns a document file on disk into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}
