// Package student contains all HTTP handlers related to the Student resource.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Each exported function receives its dependencies (the records service)
// once, at route registration, and returns the
//
//	func(http.ResponseWriter, *http.Request)
//
// the router calls on every request:
//
//	router.HandleFunc("POST /add", student.New(svc))
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-records/internal/records"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
	"github.com/aanand-mishra/student-records/internal/validation"
)

// Response messages. Clients match on these, keep them stable.
const (
	msgAdded        = "student added"
	msgUpdated      = "student updated successfully"
	msgDeleted      = "student data deleted"
	msgExists       = "Already exists"
	msgNotInData    = "not in data"
	msgIDNotFound   = "Student ID not found in DB"
	msgNotFound     = "Student not found"
	msgEmptyBody    = "request body is empty"
	msgInternalFail = "internal server error"
)

// decodeBody reads the JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return errors.New(msgEmptyBody)
	}
	return err
}

// writeValidationError writes a 400 for a rejected record.
func writeValidationError(w http.ResponseWriter, r *http.Request, verr *validation.Error) {
	slog.InfoContext(r.Context(), "student rejected",
		slog.String("rule", string(verr.Rule)),
		slog.String("field", verr.Field),
		slog.String("error", verr.Message))
	response.WriteJSON(w, http.StatusBadRequest, response.Error(verr.Message))
}

// writeInternal logs err and writes a 500 without leaking store details.
func writeInternal(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.ErrorContext(r.Context(), "store failure",
		slog.String("op", op),
		slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.Error(msgInternalFail))
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /add
// Creates a new student from the JSON request body.
//
// Request body (JSON):
//
//	{ "roll_no": "S001", "name": "Alex", "gender": "Male",
//	  "guardian": { "name": "Sam", "relation": "Parent", "contact": "1234567890" } }
//
// Success response (200 OK):
//
//	{ "message": "student added" }
//
// Error responses:
//
//	400 Bad Request: empty body, malformed JSON, failed validation,
//	                 or roll_no already stored
//	500 Internal: store error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(svc *records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.InfoContext(r.Context(), "creating a student")

		var st types.Student
		if err := decodeBody(r, &st); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := svc.Create(st); err != nil {
			var verr *validation.Error
			switch {
			case errors.As(err, &verr):
				writeValidationError(w, r, verr)
			case errors.Is(err, records.ErrAlreadyExists):
				response.WriteJSON(w, http.StatusBadRequest, response.Error(msgExists))
			default:
				writeInternal(w, r, "create", err)
			}
			return
		}

		slog.InfoContext(r.Context(), "student created", slog.String("id", st.RollNo))
		response.WriteMessage(w, http.StatusOK, msgAdded)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /student/{id}
// Returns the stored record (without roll_no, which is the path id).
//
// Error responses:
//
//	404 Not Found: no record under id
//	500 Internal: store error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(svc *records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.InfoContext(r.Context(), "getting a student", slog.String("id", id))

		rec, err := svc.Get(id)
		if errors.Is(err, records.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.Error(msgIDNotFound))
			return
		}
		if err != nil {
			writeInternal(w, r, "get", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, rec)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /view
// Returns the full mapping of roll_no to record:
//
//	{ "S001": { "name": "Alex", ... }, "S002": { ... } }
//
// Returns {} (not null) when there are no students.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(svc *records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.InfoContext(r.Context(), "getting all students")

		all, err := svc.List()
		if err != nil {
			writeInternal(w, r, "list", err)
			return
		}
		if all == nil {
			all = types.Records{}
		}

		response.WriteJSON(w, http.StatusOK, all)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Sort handles GET /sort?sort_by=name&order=desc
// Returns an array of students, roll_no included, in the requested order.
//
// Query parameters:
//
//	sort_by: "roll_no" or "name" (required)
//	order: "asc" (default) or "desc"
//
// Error responses:
//
//	400 Bad Request: unknown sort_by or order
//	500 Internal: store error
//
// ─────────────────────────────────────────────────────────────────────────────
func Sort(svc *records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		slog.InfoContext(r.Context(), "sorting students",
			slog.String("sort_by", q.Get("sort_by")),
			slog.String("order", q.Get("order")))

		field, err := records.ParseSortField(q.Get("sort_by"))
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		order, err := records.ParseOrder(q.Get("order"))
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		sorted, err := svc.Sort(field, order)
		if err != nil {
			writeInternal(w, r, "sort", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, sorted)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /edit/{id}
// Applies a partial update: only the fields sent are changed, and nested
// objects are merged key by key.
//
// Request body (JSON), any subset of:
//
//	{ "marks": { "math": 20 }, "weak_areas": { "math": ["fractions"] } }
//
// Success response (200 OK):
//
//	{ "message": "student updated successfully" }
//
// Error responses:
//
//	400 Bad Request: unknown id, empty body, malformed JSON, or the
//	                 merged record fails validation
//	500 Internal: store error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(svc *records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.InfoContext(r.Context(), "updating a student", slog.String("id", id))

		var upd types.StudentUpdate
		if err := decodeBody(r, &upd); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if _, err := svc.Update(id, upd); err != nil {
			var verr *validation.Error
			switch {
			case errors.As(err, &verr):
				writeValidationError(w, r, verr)
			case errors.Is(err, records.ErrNotFound):
				// 400 rather than 404: existing clients expect it.
				response.WriteJSON(w, http.StatusBadRequest, response.Error(msgNotInData))
			default:
				writeInternal(w, r, "update", err)
			}
			return
		}

		slog.InfoContext(r.Context(), "student updated", slog.String("id", id))
		response.WriteMessage(w, http.StatusOK, msgUpdated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /delete/{id}
// Permanently removes a student record.
//
// Error responses:
//
//	404 Not Found: no record under id
//	500 Internal: store error
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(svc *records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.InfoContext(r.Context(), "deleting a student", slog.String("id", id))

		err := svc.Delete(id)
		if errors.Is(err, records.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.Error(msgNotFound))
			return
		}
		if err != nil {
			writeInternal(w, r, "delete", err)
			return
		}

		slog.InfoContext(r.Context(), "student deleted", slog.String("id", id))
		response.WriteMessage(w, http.StatusOK, msgDeleted)
	}
}
