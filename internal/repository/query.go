package repository

import (
	"strconv"
	"strings"

	"github.com/avbelov/notekeeper/internal/entity"
)

const noteColumns = "id, title, text, owner, created_at"

// buildListQuery assembles the filtered SELECT. Filters combine with
// AND; the search term matches title OR text case-insensitively; date
// bounds are inclusive.
func buildListQuery(filter entity.NoteFilter) (string, []any) {
	var (
		where []string
		args  []any
	)

	placeholder := func() string { return "$" + strconv.Itoa(len(args)) }

	if filter.Owner != nil {
		args = append(args, *filter.Owner)
		where = append(where, "owner = "+placeholder())
	}
	if filter.Search != nil {
		args = append(args, "%"+escapeLike(*filter.Search)+"%")
		p := placeholder()
		where = append(where, "(title ILIKE "+p+" OR text ILIKE "+p+")")
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		where = append(where, "created_at >= "+placeholder())
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		where = append(where, "created_at <= "+placeholder())
	}

	query := "SELECT " + noteColumns + " FROM notes"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	return query, args
}

// buildUpdateQuery assembles the partial UPDATE from the non-nil patch
// fields. Callers must not pass an empty patch.
func buildUpdateQuery(id int64, patch entity.NotePatch) (string, []any) {
	args := []any{id}

	var set []string
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, column+" = $"+strconv.Itoa(len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Text != nil {
		add("text", *patch.Text)
	}
	if patch.Owner != nil {
		add("owner", *patch.Owner)
	}
	if patch.CreatedAt != nil {
		add("created_at", *patch.CreatedAt)
	}

	query := "UPDATE notes SET " + strings.Join(set, ", ") +
		" WHERE id = $1 RETURNING " + noteColumns

	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so the search term is a
// literal substring match.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
