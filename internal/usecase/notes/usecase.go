package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imkira/go-observer"

	"github.com/avbelov/notekeeper/internal/entity"
	"github.com/avbelov/notekeeper/pkg/logger/slogx"
)

type notesRepository interface {
	CreateNote(ctx context.Context, note entity.Note) (entity.Note, error)
	GetNote(ctx context.Context, id int64) (entity.Note, error)
	ListNotes(ctx context.Context, filter entity.NoteFilter) ([]entity.Note, error)
	UpdateNote(ctx context.Context, id int64, patch entity.NotePatch) (entity.Note, error)
	DeleteNote(ctx context.Context, id int64) error
}

type Usecase struct {
	repo     notesRepository
	observer observer.Property
	now      func() time.Time
}

func New(repo notesRepository) (*Usecase, error) {
	if repo == nil {
		return nil, errors.New("nil notes repository")
	}

	return &Usecase{
		repo:     repo,
		observer: observer.NewProperty(entity.Note{}),
		now:      time.Now,
	}, nil
}

// CreateNote persists the note, defaulting CreatedAt to the current
// date when the caller left it unset.
func (u *Usecase) CreateNote(ctx context.Context, note entity.Note) (entity.Note, error) {
	if note.CreatedAt.IsZero() {
		note.CreatedAt = dateOnly(u.now())
	}

	created, err := u.repo.CreateNote(ctx, note)
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase create note: %w", err)
	}

	u.observer.Update(created)

	slogx.Info(ctx, "success to create note", slogx.NoteID(created.ID), slogx.Owner(created.Owner))
	return created, nil
}

func (u *Usecase) GetNote(ctx context.Context, id int64) (entity.Note, error) {
	note, err := u.repo.GetNote(ctx, id)
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase get note: %w", err)
	}

	return note, nil
}

func (u *Usecase) ListNotes(ctx context.Context, filter entity.NoteFilter) ([]entity.Note, error) {
	notes, err := u.repo.ListNotes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("usecase list notes: %w", err)
	}

	return notes, nil
}

func (u *Usecase) UpdateNote(ctx context.Context, id int64, patch entity.NotePatch) (entity.Note, error) {
	note, err := u.repo.UpdateNote(ctx, id, patch)
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase update note: %w", err)
	}

	return note, nil
}

func (u *Usecase) DeleteNote(ctx context.Context, id int64) error {
	if err := u.repo.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("usecase delete note: %w", err)
	}

	slogx.Info(ctx, "success to delete note", slogx.NoteID(id))
	return nil
}

// SubscribeToCreated streams every note created after the call. The
// returned channel closes when ctx is cancelled.
func (u *Usecase) SubscribeToCreated(ctx context.Context) <-chan entity.CreateNoteEvent {
	stream := u.observer.Observe()

	result := make(chan entity.CreateNoteEvent)
	go func() {
		defer close(result)
		for {
			select {
			case <-ctx.Done():
				return

			case <-stream.Changes():
				note := stream.Next().(entity.Note)

				select {
				case <-ctx.Done():
					return
				case result <- entity.CreateNoteEvent{CreatedNote: note}:
				}
			}
		}
	}()

	return result
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
