package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/abhisek/cyberhygiene/internal/challenge"
	"github.com/abhisek/cyberhygiene/internal/export"
	"github.com/abhisek/cyberhygiene/internal/scenario"
)

type createRequest struct {
	Category string `json:"category"`
}

// answerRequest carries exactly one of its fields, matching the round's
// question type.
type answerRequest struct {
	Option    *string  `json:"option"`
	Segment   *int     `json:"segment"`
	Selection []string `json:"selection"`
}

type toggleRequest struct {
	Option string `json:"option"`
}

// transition is a state change that may ask for an outbound call.
type transition func(c *challenge.Challenge) (*challenge.Request, error)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, categoryViews())
}

func (s *Server) createChallenge(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	cat, err := scenario.ParseCategory(body.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c := challenge.New(cat)
	req, err := c.Start()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.engine.Resolve(r.Context(), c, req)
	s.registry.add(c)

	writeJSON(w, http.StatusCreated, newChallengeView(c))
}

func (s *Server) getChallenge(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, func(*challenge.Challenge) (*challenge.Request, error) {
		return nil, nil
	})
}

func (s *Server) deleteChallenge(w http.ResponseWriter, r *http.Request) {
	if !s.registry.Remove(mux.Vars(r)["id"]) {
		writeError(w, http.StatusNotFound, "Challenge not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) answer(w http.ResponseWriter, r *http.Request) {
	var body answerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	set := 0
	if body.Option != nil {
		set++
	}
	if body.Segment != nil {
		set++
	}
	if body.Selection != nil {
		set++
	}
	if set != 1 {
		writeError(w, http.StatusBadRequest, "Exactly one of option, segment or selection is required")
		return
	}

	s.apply(w, r, func(c *challenge.Challenge) (*challenge.Request, error) {
		switch {
		case body.Option != nil:
			return c.Choose(*body.Option)
		case body.Segment != nil:
			return c.Pick(*body.Segment)
		default:
			if err := c.SetSelection(body.Selection); err != nil {
				return nil, err
			}
			return c.Submit()
		}
	})
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request) {
	var body toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Option == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.apply(w, r, func(c *challenge.Challenge) (*challenge.Request, error) {
		return nil, c.Toggle(body.Option)
	})
}

func (s *Server) retry(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, (*challenge.Challenge).Retry)
}

func (s *Server) skip(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, (*challenge.Challenge).Skip)
}

func (s *Server) dismiss(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, (*challenge.Challenge).Dismiss)
}

func (s *Server) restart(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, (*challenge.Challenge).Restart)
}

func (s *Server) exportPDF(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.registry.get(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Challenge not found")
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.c.Phase != challenge.PhaseSummary {
		writeError(w, http.StatusConflict, "Challenge is not finished")
		return
	}

	var buf bytes.Buffer
	if err := export.WritePDF(&buf, export.NewReport(sess.c, s.now())); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render PDF")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.DefaultFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// apply runs t against the addressed challenge under its session lock,
// resolves any request it returns and replies with the new state.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, t transition) {
	sess, ok := s.registry.get(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Challenge not found")
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.c.Abandoned() {
		writeError(w, http.StatusNotFound, "Challenge not found")
		return
	}

	req, err := t(sess.c)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.engine.Resolve(r.Context(), sess.c, req)

	writeJSON(w, http.StatusOK, newChallengeView(sess.c))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, challenge.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, challenge.ErrInvalidAnswer), errors.Is(err, challenge.ErrEmptySelection):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
