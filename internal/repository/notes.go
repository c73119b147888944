package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/avbelov/notekeeper/internal/entity"
	"github.com/avbelov/notekeeper/pkg/logger/slogx"
)

func (r *Repo) CreateNote(ctx context.Context, note entity.Note) (entity.Note, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO notes (title, text, owner, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+noteColumns,
		note.Title, note.Text, note.Owner, note.CreatedAt,
	)

	created, err := scanNote(row)
	if err != nil {
		return entity.Note{}, fmt.Errorf("create note: %w", err)
	}

	slogx.Debug(ctx, "success to create note", slogx.NoteID(created.ID), slogx.Owner(created.Owner))

	return created, nil
}

func (r *Repo) GetNote(ctx context.Context, id int64) (entity.Note, error) {
	row := r.db.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id)

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Note{}, entity.ErrNoteNotFound
		}
		return entity.Note{}, fmt.Errorf("get note: %w", err)
	}

	return note, nil
}

// ListNotes returns every note matching the filter, ordered by id
// ascending. An empty result is a valid empty slice, not an error.
func (r *Repo) ListNotes(ctx context.Context, filter entity.NoteFilter) ([]entity.Note, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]entity.Note, 0)
	for rows.Next() {
		var n entity.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Text, &n.Owner, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes rows: %w", err)
	}

	return notes, nil
}

func (r *Repo) UpdateNote(ctx context.Context, id int64, patch entity.NotePatch) (entity.Note, error) {
	// An empty patch must leave the row untouched, so skip the UPDATE
	// entirely and return the stored note.
	if patch.IsEmpty() {
		return r.GetNote(ctx, id)
	}

	query, args := buildUpdateQuery(id, patch)

	note, err := scanNote(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Note{}, entity.ErrNoteNotFound
		}
		return entity.Note{}, fmt.Errorf("update note: %w", err)
	}

	return note, nil
}

func (r *Repo) DeleteNote(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrNoteNotFound
	}

	return nil
}

func scanNote(row pgx.Row) (entity.Note, error) {
	var n entity.Note
	if err := row.Scan(&n.ID, &n.Title, &n.Text, &n.Owner, &n.CreatedAt); err != nil {
		return entity.Note{}, err
	}

	return n, nil
}
