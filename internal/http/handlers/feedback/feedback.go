// Package feedback contains the HTTP handlers for the Feedback resource.
//
// Handlers are built with the closure / factory pattern: a factory takes
// the dependencies (storage) once at startup and returns the
// func(http.ResponseWriter, *http.Request) the router calls on every
// request:
//
//	router.HandleFunc("POST /api/feedbacks", feedback.New(storage))
package feedback

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/aanand-mishra/feedback/internal/storage"
	"github.com/aanand-mishra/feedback/internal/types"
	"github.com/aanand-mishra/feedback/internal/utils/mask"
	"github.com/aanand-mishra/feedback/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// personName is the business rule on names: letters and spaces only.
var personName = regexp.MustCompile(`^[A-Za-z ]+$`)

// validate is shared by every request. A *validator.Validate caches struct
// metadata and is safe for concurrent use, so building it once is enough.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names ("email") in FieldError.Field() instead of Go
	// field names ("Email"); the client only knows the json names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personName.MatchString(fl.Field().String())
	})

	return v
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/feedbacks
// Stores a new feedback entry from the JSON request body.
//
// Request body (JSON):
//
//	{ "name": "Vishal", "email": "vishal@example.com", "message": "Great app!" }
//
// Success response (201 Created):
//
//	{ "id": 1, "name": "Vishal", "message": "Great app!", "createdAt": "2025-03-14T09:26:53.589Z" }
//
// Error responses:
//
//	400 Bad Request  empty body, malformed JSON, or failed validation
//	500 Internal     database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// ── Step 1: Decode JSON body ──────────────────────────────────
		var req types.FeedbackRequest

		err := json.NewDecoder(r.Body).Decode(&req)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		maskedEmail := mask.Email(req.Email)
		slog.Info("received feedback", slog.String("email", maskedEmail))

		// ── Step 2: Validate ──────────────────────────────────────────
		if err := validate.Struct(req); err != nil {
			var validateErrs validator.ValidationErrors
			if !errors.As(err, &validateErrs) {
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
				return
			}
			slog.Warn("feedback validation failed",
				slog.String("email", maskedEmail),
				slog.Int("fields", len(validateErrs)))
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		// ── Step 3: Persist ───────────────────────────────────────────
		saved, err := store.CreateFeedback(req.Name, req.Email, req.Message)
		if err != nil {
			slog.Error("error saving feedback",
				slog.String("email", maskedEmail),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("feedback saved",
			slog.Int64("id", saved.ID),
			slog.String("name", saved.Name))

		response.WriteJSON(w, http.StatusCreated, saved)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/feedbacks
// Returns a JSON array of every feedback entry, oldest first.
// Returns an empty array [] (not null) when there are none.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all feedbacks")

		feedbacks, err := store.GetFeedbacks()
		if err != nil {
			slog.Error("error getting feedbacks", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		if feedbacks == nil {
			feedbacks = []types.Feedback{}
		}

		response.WriteJSON(w, http.StatusOK, feedbacks)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/feedbacks/{id}
//
// Error responses:
//
//	400 Bad Request  id is not a valid integer
//	404 Not Found    no such feedback
//	500 Internal     database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a feedback", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		feedback, err := store.GetFeedbackByID(intID)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
			return
		}
		if err != nil {
			slog.Error("error getting feedback",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, feedback)
	}
}
