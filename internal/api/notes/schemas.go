package notes

import (
	"fmt"
	"strings"
	"time"

	"github.com/avbelov/notekeeper/internal/entity"
)

const dateLayout = "2006-01-02"

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("parse date %q: expected YYYY-MM-DD", s)
	}

	d.Time = t
	return nil
}

type NoteResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Owner     string `json:"owner"`
	CreatedAt Date   `json:"created_at"`
}

type CreateNoteRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Text      string `json:"text" validate:"required"`
	Owner     string `json:"owner" validate:"required,max=100"`
	CreatedAt *Date  `json:"created_at"`
}

// UpdateNoteRequest applies exclude-unset semantics: a nil field keeps
// the stored value, a present one revalidates and overwrites it.
type UpdateNoteRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=200"`
	Text      *string `json:"text" validate:"omitempty,min=1"`
	Owner     *string `json:"owner" validate:"omitempty,min=1,max=100"`
	CreatedAt *Date   `json:"created_at"`
}

func (req CreateNoteRequest) toEntity() entity.Note {
	note := entity.Note{
		Title: req.Title,
		Text:  req.Text,
		Owner: req.Owner,
	}
	if req.CreatedAt != nil {
		note.CreatedAt = req.CreatedAt.Time
	}

	return note
}

func (req UpdateNoteRequest) toPatch() entity.NotePatch {
	patch := entity.NotePatch{
		Title: req.Title,
		Text:  req.Text,
		Owner: req.Owner,
	}
	if req.CreatedAt != nil {
		t := req.CreatedAt.Time
		patch.CreatedAt = &t
	}

	return patch
}

func noteToResponse(n entity.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Text:      n.Text,
		Owner:     n.Owner,
		CreatedAt: Date{Time: n.CreatedAt},
	}
}

func notesToResponse(notes []entity.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, noteToResponse(n))
	}

	return out
}
