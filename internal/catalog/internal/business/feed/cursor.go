package feed

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrBadCursor marks a cursor string the engine did not issue.
var ErrBadCursor = errors.New("bad cursor")

// Cursor is the opaque paging state round-tripped by the caller. It carries
// the pool offsets and the ids already delivered to the session; nothing is
// kept server-side between calls.
type Cursor struct {
	SessionID      string   `json:"sid"`
	Offset         int      `json:"off"`
	PersonalOffset int      `json:"poff"`
	Seen           []string `json:"seen,omitempty"`
}

// NewCursor starts a fresh paging session.
func NewCursor() *Cursor {
	return &Cursor{SessionID: uuid.NewString()}
}

// DecodeCursor parses a cursor string. Empty input starts a new session.
func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return NewCursor(), nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCursor, err)
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCursor, err)
	}
	if c.SessionID == "" {
		c.SessionID = uuid.NewString()
	}
	return &c, nil
}

func (c *Cursor) Encode() (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Extend appends newly delivered ids to the exclude-set, skipping ids already
// present and evicting the oldest entries past the cap.
func (c *Cursor) Extend(ids []string, limit int) {
	present := make(map[string]struct{}, len(c.Seen))
	for _, id := range c.Seen {
		present[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := present[id]; ok {
			continue
		}
		present[id] = struct{}{}
		c.Seen = append(c.Seen, id)
	}
	if limit > 0 && len(c.Seen) > limit {
		c.Seen = c.Seen[len(c.Seen)-limit:]
	}
}
