// Package pagination implements keyset cursors over (created_at, id).
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is used when the caller does not ask for a page size.
	DefaultLimit = 25
	// MaxLimit caps the page size of any cursor query.
	MaxLimit = 100

	cursorSep = "|"
)

// Params carries the pagination inputs a listing endpoint accepts.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor is the decoded position of the last row on the previous page.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// NormalizeLimit clamps limit into [1, MaxLimit], defaulting when unset.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// LimitWithBuffer adds one row to the normalized limit so the repository can
// tell whether another page exists.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// EncodeCursor serializes a cursor into an opaque base64 token.
func EncodeCursor(cursor Cursor) string {
	raw := cursor.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorSep + cursor.ID.String()
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// ParseCursor decodes a token produced by EncodeCursor. An empty token means
// "first page" and yields a nil cursor.
func ParseCursor(value string) (*Cursor, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	tsPart, idPart, found := strings.Cut(string(decoded), cursorSep)
	if !found {
		return nil, fmt.Errorf("invalid cursor format")
	}

	createdAt, err := time.Parse(time.RFC3339Nano, tsPart)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor timestamp: %w", err)
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor id: %w", err)
	}
	return &Cursor{CreatedAt: createdAt, ID: id}, nil
}
