package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/logging"
	"github.com/jonathan/jobboard/internal/metrics"
	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/sqlutil"
	"github.com/jonathan/jobboard/internal/types"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// handleCreateJob handles POST /jobs
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	body, err := s.readJSONBody(w, r, schemas.JobNew)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req types.NewJobRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	job, err := s.store.CreateJob(r.Context(), db.NewJobInput{
		Title:         req.Title,
		Salary:        req.Salary,
		Equity:        req.Equity,
		CompanyHandle: req.CompanyHandle,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	metrics.RecordJobMutation("create")
	logging.Ctx(r.Context()).Info().Int("job_id", job.ID).Msg("job created")
	s.jsonResponse(w, http.StatusCreated, map[string]any{"job": job})
}

// handleListJobs handles GET /jobs
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	filter, err := parseJobFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	jobs, err := s.store.ListJobs(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// handleGetJob handles GET /jobs/{id}
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := jobIDFromPath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	job, err := s.store.GetJob(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"job": job})
}

// handleUpdateJob handles PATCH /jobs/{id}
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := jobIDFromPath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body, err := s.readJSONBody(w, r, schemas.JobUpdate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := jobUpdateFields(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	job, err := s.store.UpdateJob(r.Context(), id, data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	metrics.RecordJobMutation("update")
	logging.Ctx(r.Context()).Info().Int("job_id", job.ID).Strs("fields", data.Names()).Msg("job updated")
	s.jsonResponse(w, http.StatusOK, map[string]any{"job": job})
}

// handleDeleteJob handles DELETE /jobs/{id}
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := jobIDFromPath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.store.DeleteJob(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	metrics.RecordJobMutation("delete")
	logging.Ctx(r.Context()).Info().Int("job_id", id).Msg("job deleted")
	s.jsonResponse(w, http.StatusOK, map[string]any{"deleted": id})
}

// readJSONBody reads a size-limited body and checks it against the named schema.
func (s *Server) readJSONBody(w http.ResponseWriter, r *http.Request, schema string) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if !json.Valid(body) {
		return nil, &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	if err := schemas.Validate(schema, body); err != nil {
		return nil, err
	}
	return body, nil
}

// jobIDFromPath parses the {id} path value. Ids are INTEGER columns, so
// anything outside the 32-bit range is rejected.
func jobIDFromPath(r *http.Request) (int, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, &ErrValidation{Field: "id", Message: fmt.Sprintf("invalid job ID %q", raw)}
	}
	return int(id), nil
}

// parseJobFilter turns the GET /jobs query string into a JobFilter. Unknown
// parameters are rejected by the job_search schema.
func parseJobFilter(r *http.Request) (db.JobFilter, error) {
	query := r.URL.Query()
	doc := make(map[string]any, len(query))
	var req types.JobSearchRequest

	for key := range query {
		value := query.Get(key)
		switch key {
		case "minSalary":
			n, err := strconv.Atoi(value)
			if err != nil {
				return db.JobFilter{}, &ErrValidation{Field: key, Message: "must be an integer"}
			}
			doc[key] = n
			req.MinSalary = &n
		case "hasEquity":
			req.HasEquity = value == "true"
			doc[key] = req.HasEquity
		case "title":
			doc[key] = value
			req.Title = &value
		default:
			doc[key] = value
		}
	}

	if err := schemas.ValidateValue(schemas.JobSearch, doc); err != nil {
		return db.JobFilter{}, err
	}
	if err := req.Validate(); err != nil {
		return db.JobFilter{}, err
	}

	filter := db.JobFilter{MinSalary: req.MinSalary, Title: req.Title}
	if _, ok := doc["hasEquity"]; ok {
		filter.HasEquity = &req.HasEquity
	}
	return filter, nil
}

// jobUpdateFields converts a PATCH body into ordered fields, keeping the
// order in which keys appear in the document.
func jobUpdateFields(body []byte) (sqlutil.Fields, error) {
	keys, err := objectKeys(body)
	if err != nil {
		return nil, err
	}

	var values types.JobUpdateValues
	if err := json.Unmarshal(body, &values); err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	if err := values.Validate(); err != nil {
		return nil, err
	}

	var data sqlutil.Fields
	for _, key := range keys {
		switch key {
		case "title":
			data.Set(key, *values.Title)
		case "salary":
			if values.Salary == nil {
				data.Set(key, nil)
			} else {
				data.Set(key, *values.Salary)
			}
		case "equity":
			if values.Equity == nil {
				data.Set(key, nil)
			} else {
				data.Set(key, *values.Equity)
			}
		default:
			return nil, &sqlutil.UnknownFieldError{Field: key}
		}
	}
	return data, nil
}

// objectKeys returns the top-level keys of a JSON object in document order.
func objectKeys(body []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &ErrValidation{Field: "body", Message: "must be a JSON object"}
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ErrValidation{Field: "body", Message: "invalid JSON"}
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("unexpected non-string object key")
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, &ErrValidation{Field: key, Message: "invalid JSON"}
		}
		keys = append(keys, key)
	}
	return keys, nil
}
