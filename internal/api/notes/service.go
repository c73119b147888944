package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/avbelov/notekeeper/internal/entity"
	"github.com/avbelov/notekeeper/pkg/logger/slogx"
)

type notesUsecase interface {
	CreateNote(ctx context.Context, note entity.Note) (entity.Note, error)
	GetNote(ctx context.Context, id int64) (entity.Note, error)
	ListNotes(ctx context.Context, filter entity.NoteFilter) ([]entity.Note, error)
	UpdateNote(ctx context.Context, id int64, patch entity.NotePatch) (entity.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	SubscribeToCreated(ctx context.Context) <-chan entity.CreateNoteEvent
}

type Service struct {
	usecase  notesUsecase
	validate *validator.Validate
}

func New(usecase notesUsecase) (*Service, error) {
	if usecase == nil {
		return nil, errors.New("nil notes usecase")
	}

	return &Service{
		usecase:  usecase,
		validate: validator.New(),
	}, nil
}

// Register mounts the notes routes. The id segment is constrained to
// digits, so a non-numeric id never reaches a handler.
func (s *Service) Register(r *mux.Router) {
	sub := r.PathPrefix("/notes").Subrouter()

	sub.HandleFunc("/new", s.handleCreate).Methods(http.MethodPost)
	sub.HandleFunc("/update/{id:[0-9]+}", s.handleUpdate).Methods(http.MethodPost)
	sub.HandleFunc("/delete/{id:[0-9]+}", s.handleDelete).Methods(http.MethodPost)
	sub.HandleFunc("/watch", s.handleWatch).Methods(http.MethodGet)
	sub.HandleFunc("/{id:[0-9]+}", s.handleGet).Methods(http.MethodGet)
	sub.HandleFunc("", s.handleList).Methods(http.MethodGet)
	sub.HandleFunc("/", s.handleList).Methods(http.MethodGet)
}

func (s *Service) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	note, err := s.usecase.CreateNote(r.Context(), req.toEntity())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, noteToResponse(note))
}

func (s *Service) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		writeError(w, r, entity.ErrNoteNotFound)
		return
	}

	note, err := s.usecase.GetNote(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, noteToResponse(note))
}

func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r.URL.Query())
	if err != nil {
		writeValidationError(w, err)
		return
	}

	notes, err := s.usecase.ListNotes(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, notesToResponse(notes))
}

func (s *Service) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		writeError(w, r, entity.ErrNoteNotFound)
		return
	}

	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	note, err := s.usecase.UpdateNote(r.Context(), id, req.toPatch())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, noteToResponse(note))
}

func (s *Service) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		writeError(w, r, entity.ErrNoteNotFound)
		return
	}

	if err := s.usecase.DeleteNote(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleWatch streams created notes as server-sent events until the
// client disconnects.
func (s *Service) handleWatch(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for ev := range s.usecase.SubscribeToCreated(r.Context()) {
		payload, err := json.Marshal(noteToResponse(ev.CreatedNote))
		if err != nil {
			slogx.Error(r.Context(), "marshal note event", slogx.Err(err))
			return
		}

		fmt.Fprintf(w, "event: note_created\ndata: %s\n\n", payload)
		flusher.Flush()
	}
}

func noteID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func filterFromQuery(q url.Values) (entity.NoteFilter, error) {
	var filter entity.NoteFilter

	if owner := q.Get("owner"); owner != "" {
		filter.Owner = &owner
	}
	if search := q.Get("search"); search != "" {
		filter.Search = &search
	}
	if from := q.Get("date_from"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return entity.NoteFilter{}, fmt.Errorf("parse date_from %q: expected YYYY-MM-DD", from)
		}
		filter.DateFrom = &t
	}
	if to := q.Get("date_to"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return entity.NoteFilter{}, fmt.Errorf("parse date_to %q: expected YYYY-MM-DD", to)
		}
		filter.DateTo = &t
	}

	return filter, nil
}
