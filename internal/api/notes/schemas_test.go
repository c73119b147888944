package notes

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := Date{Time: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)}

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-10"`, string(b))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-01-12"`), &parsed))
	assert.Equal(t, time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC), parsed.Time)

	err = json.Unmarshal([]byte(`"12.01.2025"`), &parsed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestCreateNoteRequestValidation(t *testing.T) {
	validate := validator.New()

	valid := CreateNoteRequest{Title: "Standup", Text: "daily sync", Owner: "Ann"}

	cases := []struct {
		name    string
		mutate  func(*CreateNoteRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*CreateNoteRequest) {}},
		{name: "empty title", mutate: func(r *CreateNoteRequest) { r.Title = "" }, wantErr: true},
		{name: "empty text", mutate: func(r *CreateNoteRequest) { r.Text = "" }, wantErr: true},
		{name: "empty owner", mutate: func(r *CreateNoteRequest) { r.Owner = "" }, wantErr: true},
		{name: "title too long", mutate: func(r *CreateNoteRequest) { r.Title = strings.Repeat("a", 201) }, wantErr: true},
		{name: "title at bound", mutate: func(r *CreateNoteRequest) { r.Title = strings.Repeat("a", 200) }},
		{name: "owner too long", mutate: func(r *CreateNoteRequest) { r.Owner = strings.Repeat("o", 101) }, wantErr: true},
		{name: "owner at bound", mutate: func(r *CreateNoteRequest) { r.Owner = strings.Repeat("o", 100) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)

			err := validate.Struct(req)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateNoteRequestValidation(t *testing.T) {
	validate := validator.New()

	title := "Lunch"
	empty := ""
	long := strings.Repeat("a", 201)

	assert.NoError(t, validate.Struct(UpdateNoteRequest{}))
	assert.NoError(t, validate.Struct(UpdateNoteRequest{Title: &title}))
	assert.Error(t, validate.Struct(UpdateNoteRequest{Title: &empty}))
	assert.Error(t, validate.Struct(UpdateNoteRequest{Title: &long}))
	assert.Error(t, validate.Struct(UpdateNoteRequest{Owner: &empty}))
	assert.Error(t, validate.Struct(UpdateNoteRequest{Text: &empty}))
}

func TestCreateNoteRequestToEntity(t *testing.T) {
	req := CreateNoteRequest{Title: "Standup", Text: "daily sync", Owner: "Ann"}
	note := req.toEntity()

	assert.Equal(t, "Standup", note.Title)
	assert.Equal(t, "daily sync", note.Text)
	assert.Equal(t, "Ann", note.Owner)
	assert.True(t, note.CreatedAt.IsZero())

	req.CreatedAt = &Date{Time: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC), req.toEntity().CreatedAt)
}

func TestUpdateNoteRequestToPatch(t *testing.T) {
	assert.True(t, UpdateNoteRequest{}.toPatch().IsEmpty())

	title := "Lunch"
	patch := UpdateNoteRequest{
		Title:     &title,
		CreatedAt: &Date{Time: time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC)},
	}.toPatch()

	require.NotNil(t, patch.Title)
	assert.Equal(t, "Lunch", *patch.Title)
	assert.Nil(t, patch.Text)
	assert.Nil(t, patch.Owner)
	require.NotNil(t, patch.CreatedAt)
	assert.Equal(t, time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC), *patch.CreatedAt)
}

func TestNotesToResponseEmpty(t *testing.T) {
	b, err := json.Marshal(notesToResponse(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}
