package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avbelov/notekeeper/internal/entity"
)

// fakeTx records every statement and serves rows from rowFn.
type fakeTx struct {
	queries []string
	rowFn   func(sql string, args []any) pgx.Row
	execFn  func(sql string, args []any) (pgconn.CommandTag, error)
}

func (f *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.queries = append(f.queries, sql)
	return f.execFn(sql, args)
}

func (f *fakeTx) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, sql)
	return nil, errors.New("unexpected Query")
}

func (f *fakeTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.queries = append(f.queries, sql)
	return f.rowFn(sql, args)
}

type noteRow struct {
	note entity.Note
	err  error
}

func (r noteRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}

	*(dest[0].(*int64)) = r.note.ID
	*(dest[1].(*string)) = r.note.Title
	*(dest[2].(*string)) = r.note.Text
	*(dest[3].(*string)) = r.note.Owner
	*(dest[4].(*time.Time)) = r.note.CreatedAt
	return nil
}

func storedNote() entity.Note {
	return entity.Note{
		ID:        7,
		Title:     "Standup",
		Text:      "daily sync",
		Owner:     "Ann",
		CreatedAt: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestUpdateNoteEmptyPatchIssuesNoUpdate(t *testing.T) {
	tx := &fakeTx{
		rowFn: func(string, []any) pgx.Row {
			return noteRow{note: storedNote()}
		},
	}
	repo := New(tx)

	note, err := repo.UpdateNote(context.Background(), 7, entity.NotePatch{})
	require.NoError(t, err)

	assert.Equal(t, storedNote(), note)
	require.Len(t, tx.queries, 1)
	assert.True(t, strings.HasPrefix(tx.queries[0], "SELECT"))
	assert.NotContains(t, tx.queries[0], "UPDATE")
}

func TestUpdateNoteEmptyPatchMissingID(t *testing.T) {
	tx := &fakeTx{
		rowFn: func(string, []any) pgx.Row {
			return noteRow{err: pgx.ErrNoRows}
		},
	}
	repo := New(tx)

	_, err := repo.UpdateNote(context.Background(), 999999, entity.NotePatch{})
	assert.True(t, errors.Is(err, entity.ErrNoteNotFound))
}

func TestUpdateNoteNonEmptyPatchIssuesUpdate(t *testing.T) {
	tx := &fakeTx{
		rowFn: func(string, []any) pgx.Row {
			n := storedNote()
			n.Title = "Lunch"
			return noteRow{note: n}
		},
	}
	repo := New(tx)

	title := "Lunch"
	note, err := repo.UpdateNote(context.Background(), 7, entity.NotePatch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "Lunch", note.Title)
	require.Len(t, tx.queries, 1)
	assert.True(t, strings.HasPrefix(tx.queries[0], "UPDATE"))
}

func TestDeleteNoteMissingID(t *testing.T) {
	tx := &fakeTx{
		execFn: func(string, []any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("DELETE 0"), nil
		},
	}
	repo := New(tx)

	err := repo.DeleteNote(context.Background(), 999999)
	assert.True(t, errors.Is(err, entity.ErrNoteNotFound))
}
