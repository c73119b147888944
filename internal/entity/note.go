package entity

import (
	"errors"
	"time"
)

var ErrNoteNotFound = errors.New("note not found")

// Note is the stored entity. CreatedAt is a calendar date; the time
// part is always midnight UTC.
type Note struct {
	ID        int64
	Title     string
	Text      string
	Owner     string
	CreatedAt time.Time
}

// NoteFilter narrows the list operation. Nil fields impose no
// constraint. Date bounds are inclusive.
type NoteFilter struct {
	Owner    *string
	Search   *string
	DateFrom *time.Time
	DateTo   *time.Time
}

// NotePatch carries the fields of a partial update. A nil field keeps
// the stored value.
type NotePatch struct {
	Title     *string
	Text      *string
	Owner     *string
	CreatedAt *time.Time
}

func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Text == nil && p.Owner == nil && p.CreatedAt == nil
}

type CreateNoteEvent struct {
	CreatedNote Note
}
