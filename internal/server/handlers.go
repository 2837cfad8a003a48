package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/quizbuddy/internal/achievements"
	"github.com/abhisek/quizbuddy/internal/profile"
	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/session"
)

const (
	msgInvalidProfile  = "Invalid profile"
	msgInvalidSession  = "Invalid session"
	msgQuizCompleted   = "Quiz completed"
	msgSessionNotFound = "Session not found"
	msgProfileNotFound = "Profile not found"
)

type createProfileRequest struct {
	Name      string   `json:"name"`
	Age       *int     `json:"age"`
	Interests []string `json:"interests"`
}

type profileResponse struct {
	Success bool            `json:"success"`
	Profile profile.Profile `json:"profile"`
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		s.internalError(w, r, "decode profile request", err)
		return
	}

	p := s.profiles.Create(profile.NewProfile{
		Name:      req.Name,
		Age:       req.Age,
		Interests: req.Interests,
	})
	s.log.Info("profile created", "profile_id", p.ID, "age", p.Age)

	respondJSON(w, http.StatusOK, profileResponse{Success: true, Profile: p})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := s.profiles.Get(chi.URLParam(r, "profileID"))
	if !ok {
		respondError(w, http.StatusNotFound, msgProfileNotFound)
		return
	}
	respondJSON(w, http.StatusOK, profileResponse{Success: true, Profile: p})
}

type achievementsResponse struct {
	Success      bool                       `json:"success"`
	Achievements []achievements.Achievement `json:"achievements"`
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "profileID")
	if !s.profiles.Exists(id) {
		respondError(w, http.StatusNotFound, msgProfileNotFound)
		return
	}
	respondJSON(w, http.StatusOK, achievementsResponse{
		Success:      true,
		Achievements: achievements.Evaluate(s.sessions.ListByProfile(id)),
	})
}

type generateQuizRequest struct {
	Topic     string `json:"topic"`
	ProfileID string `json:"profile_id"`
}

type quizPayload struct {
	Questions quizgen.QuestionSet `json:"questions"`
}

type generateQuizResponse struct {
	Success   bool           `json:"success"`
	SessionID string         `json:"session_id"`
	Source    quizgen.Source `json:"source"`
	Quiz      quizPayload    `json:"quiz"`
}

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req generateQuizRequest
	if err := decodeJSON(r, &req); err != nil {
		s.internalError(w, r, "decode generate request", err)
		return
	}

	p, ok := s.profiles.Get(req.ProfileID)
	if !ok {
		respondError(w, http.StatusBadRequest, msgInvalidProfile)
		return
	}

	res := s.quizzes.Generate(r.Context(), req.Topic, p.Age)
	sess := s.sessions.Start(p.ID, req.Topic, res.Questions, res.Source)
	s.log.Info("quiz session started",
		"session_id", sess.ID,
		"profile_id", p.ID,
		"source", string(res.Source),
		"generation_id", res.GenerationID,
	)

	respondJSON(w, http.StatusOK, generateQuizResponse{
		Success:   true,
		SessionID: sess.ID,
		Source:    sess.Source,
		Quiz:      quizPayload{Questions: sess.Questions},
	})
}

type submitAnswerRequest struct {
	SessionID   string          `json:"session_id"`
	AnswerIndex json.RawMessage `json:"answer_index"`
}

// answerIndex maps the raw answer_index to an option index. Integral
// numbers that fit in an int are kept as is (1.0 is 1); anything else,
// including a missing value, becomes NoAnswer and grades as incorrect.
func answerIndex(raw json.RawMessage) int {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if len(raw) == 0 || dec.Decode(&v) != nil {
		return session.NoAnswer
	}
	n, ok := v.(json.Number)
	if !ok {
		return session.NoAnswer
	}
	if i, err := n.Int64(); err == nil {
		if i < math.MinInt || i > math.MaxInt {
			return session.NoAnswer
		}
		return int(i)
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return session.NoAnswer
	}
	return int(f)
}

type submitAnswerResponse struct {
	Success bool `json:"success"`
	session.AnswerResult
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.internalError(w, r, "decode answer request", err)
		return
	}

	res, err := s.sessions.SubmitAnswer(req.SessionID, answerIndex(req.AnswerIndex))
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		respondError(w, http.StatusBadRequest, msgInvalidSession)
		return
	case errors.Is(err, session.ErrQuizAlreadyComplete):
		respondError(w, http.StatusBadRequest, msgQuizCompleted)
		return
	case err != nil:
		s.internalError(w, r, "submit answer", err)
		return
	}

	respondJSON(w, http.StatusOK, submitAnswerResponse{Success: true, AnswerResult: res})
}

type sessionResponse struct {
	Success bool            `json:"success"`
	Session session.Session `json:"session"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, http.StatusNotFound, msgSessionNotFound)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{Success: true, Session: sess})
}

type topicsResponse struct {
	Success bool            `json:"success"`
	Topics  []quizgen.Topic `json:"topics"`
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, topicsResponse{Success: true, Topics: quizgen.SuggestedTopics()})
}

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Generator string `json:"generator"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Version:   s.opts.Version,
		Generator: s.quizzes.Generator(),
	})
}

// internalError logs err and answers 500 with its message.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, what string, err error) {
	s.log.Error(what, "error", err, "path", r.URL.Path)
	respondError(w, http.StatusInternalServerError, err.Error())
}
