package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/wordiz/internal/cache"
	"github.com/abhisek/wordiz/internal/exercise"
	"github.com/abhisek/wordiz/internal/exercisegen"
	"github.com/abhisek/wordiz/internal/lessons"
	"github.com/abhisek/wordiz/internal/practice"
	"github.com/abhisek/wordiz/internal/store"
)

func (s *Server) health(c *gin.Context) {
	db := "up"
	if s.deps.Ping != nil {
		if err := s.deps.Ping(c.Request.Context()); err != nil {
			s.log.Warn("database ping failed", zap.Error(err))
			fail(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	} else {
		db = "none"
	}
	success(c, gin.H{
		"status":   "ok",
		"version":  s.deps.Version,
		"database": db,
		"llm":      s.deps.Generator != nil,
	})
}

type validateResponse struct {
	ID       string                     `json:"id"`
	Kind     exercise.Kind              `json:"kind"`
	Valid    bool                       `json:"valid"`
	Findings []exercise.ValidationError `json:"findings"`
}

// validateQuestion reports findings for a question exactly as posted.
func (s *Server) validateQuestion(c *gin.Context) {
	var p exercise.Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid question: "+err.Error())
		return
	}
	q, err := p.Decode()
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	findings := exercise.Validate(q)
	if findings == nil {
		findings = []exercise.ValidationError{}
	}
	success(c, validateResponse{
		ID:       q.QuestionID(),
		Kind:     q.Kind(),
		Valid:    exercise.IsQuestionValid(findings),
		Findings: findings,
	})
}

// decodePlayable decodes a posted question, filling in derived arrange-words
// tokens, and rejects it when it has blocking findings.
func decodePlayable(c *gin.Context, p exercise.Payload) (exercise.Question, bool) {
	q, err := p.Decode()
	if err != nil {
		badRequest(c, err.Error())
		return nil, false
	}
	if aw, ok := q.(*exercise.ArrangeWords); ok {
		exercise.DeriveTokens(aw)
	}
	if errs := exercise.Errors(exercise.Validate(q)); len(errs) > 0 {
		fail(c, http.StatusUnprocessableEntity, "question is not valid: "+errs[0].String())
		return nil, false
	}
	return q, true
}

type wordBankRequest struct {
	Question  exercise.Payload `json:"question"`
	SessionID string           `json:"session_id" binding:"required"`
}

type wordBankResponse struct {
	QuestionID string   `json:"question_id"`
	SessionID  string   `json:"session_id"`
	Seed       int64    `json:"seed"`
	WordBank   []string `json:"word_bank"`
}

func (s *Server) wordBank(c *gin.Context) {
	var req wordBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	q, ok := decodePlayable(c, req.Question)
	if !ok {
		return
	}
	if !exercise.UsesWordBank(q) {
		badRequest(c, "question kind "+string(q.Kind())+" has no word bank")
		return
	}
	success(c, wordBankResponse{
		QuestionID: q.QuestionID(),
		SessionID:  req.SessionID,
		Seed:       exercise.DeriveSeed(q.QuestionID(), req.SessionID),
		WordBank:   exercise.WordBankFor(q, req.SessionID),
	})
}

type checkRequest struct {
	Question exercise.Payload `json:"question"`
	Answer   struct {
		Tokens []string `json:"tokens"`
		Text   string   `json:"text"`
	} `json:"answer"`
}

type checkResponse struct {
	QuestionID  string        `json:"question_id"`
	Kind        exercise.Kind `json:"kind"`
	Correct     bool          `json:"correct"`
	Differences []int         `json:"differences"`
	Canonical   string        `json:"canonical"`
	Explanation string        `json:"explanation,omitempty"`
}

func (s *Server) check(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	q, ok := decodePlayable(c, req.Question)
	if !ok {
		return
	}
	res := practice.Check(q, practice.Answer{Tokens: req.Answer.Tokens, Text: req.Answer.Text})
	s.deps.Metrics.ObserveAnswer(string(res.Kind), res.Correct)
	success(c, checkResponse{
		QuestionID:  res.QuestionID,
		Kind:        res.Kind,
		Correct:     res.Correct,
		Differences: res.Comparison.Differences,
		Canonical:   res.Canonical,
		Explanation: exercise.ExplanationOf(q),
	})
}

type generateRequest struct {
	Topic string   `json:"topic"`
	Level int      `json:"level"`
	Count int      `json:"count"`
	Kinds []string `json:"kinds"`
}

func (s *Server) generateExercises(c *gin.Context) {
	if s.deps.Generator == nil {
		unavailable(c, "exercise generation")
		return
	}
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Count == 0 {
		req.Count = 5
	}
	kinds := make([]exercise.Kind, len(req.Kinds))
	for i, k := range req.Kinds {
		kinds[i] = exercise.Kind(k)
	}

	qs, err := exercisegen.GenerateSet(c.Request.Context(), s.deps.Generator, exercisegen.SetInput{
		Topic: req.Topic,
		Level: req.Level,
		Count: req.Count,
		Kinds: kinds,
	}, s.deps.GenConfig)
	if err != nil {
		if errors.Is(err, exercisegen.ErrInvalidInput) {
			badRequest(c, err.Error())
			return
		}
		s.log.Error("exercise generation failed", zap.String("topic", req.Topic), zap.Error(err))
		fail(c, http.StatusBadGateway, "exercise generation failed")
		return
	}

	out := make([]exercise.Payload, len(qs))
	for i, q := range qs {
		out[i] = exercise.Encode(q)
	}
	success(c, gin.H{"questions": out})
}

func (s *Server) generateLesson(c *gin.Context) {
	kind, err := lessons.ParseKind(c.Param("kind"))
	if err != nil {
		fail(c, http.StatusNotFound, err.Error())
		return
	}
	if s.deps.Lessons == nil {
		unavailable(c, "lesson generation")
		return
	}
	var in lessons.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	key, err := cache.Key("lesson:"+string(kind), in)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	var cached json.RawMessage
	if ok, err := cache.GetJSON(ctx, s.deps.Cache, key, &cached); err != nil {
		s.log.Warn("lesson cache read failed", zap.Error(err))
	} else if ok {
		c.Header("X-Cache", "hit")
		success(c, cached)
		return
	}

	out, err := s.deps.Lessons.Generate(ctx, kind, in)
	if err != nil {
		if errors.Is(err, lessons.ErrInvalidInput) {
			badRequest(c, err.Error())
			return
		}
		s.log.Error("lesson generation failed", zap.String("kind", string(kind)), zap.Error(err))
		fail(c, http.StatusBadGateway, "lesson generation failed")
		return
	}
	if err := cache.SetJSON(ctx, s.deps.Cache, key, out, s.deps.CacheTTL); err != nil {
		s.log.Warn("lesson cache write failed", zap.Error(err))
	}
	c.Header("X-Cache", "miss")
	success(c, out)
}

type sessionView struct {
	ID         string     `json:"id"`
	Learner    string     `json:"learner"`
	Source     string     `json:"source"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Total      int        `json:"total"`
	Answered   int        `json:"answered"`
	Correct    int        `json:"correct"`
	Percent    int        `json:"percent"`
	Stars      int        `json:"stars"`
}

func toSessionView(r store.SessionRecord) sessionView {
	return sessionView{
		ID:         r.ID,
		Learner:    r.Learner,
		Source:     r.Source,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Total:      r.Total,
		Answered:   r.Answered,
		Correct:    r.Correct,
		Percent:    r.Percent(),
		Stars:      r.Stars,
	}
}

type accuracyView struct {
	Kind     string  `json:"kind"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

func (s *Server) history(c *gin.Context) {
	if s.deps.History == nil {
		unavailable(c, "history")
		return
	}
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			badRequest(c, "limit must be between 1 and 200")
			return
		}
		limit = n
	}

	ctx := c.Request.Context()
	sessions, err := s.deps.History.RecentSessions(ctx, limit)
	if err != nil {
		s.log.Error("load sessions", zap.Error(err))
		fail(c, http.StatusInternalServerError, "internal server error")
		return
	}
	acc, err := s.deps.History.AccuracyByKind(ctx)
	if err != nil {
		s.log.Error("load accuracy", zap.Error(err))
		fail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	views := make([]sessionView, len(sessions))
	for i, r := range sessions {
		views[i] = toSessionView(r)
	}
	accViews := make([]accuracyView, len(acc))
	for i, a := range acc {
		accViews[i] = accuracyView{Kind: a.Kind, Attempts: a.Attempts, Correct: a.Correct, Accuracy: a.Accuracy()}
	}
	success(c, gin.H{"sessions": views, "accuracy": accViews})
}

type attemptView struct {
	QuestionID string    `json:"question_id"`
	Kind       string    `json:"kind"`
	Prompt     string    `json:"prompt"`
	Expected   string    `json:"expected"`
	Answer     string    `json:"answer"`
	Correct    bool      `json:"correct"`
	FirstTry   bool      `json:"first_try"`
	TimeMs     int64     `json:"time_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *Server) sessionDetail(c *gin.Context) {
	if s.deps.History == nil {
		unavailable(c, "history")
		return
	}
	ctx := c.Request.Context()
	rec, err := s.deps.History.GetSession(ctx, c.Param("id"))
	if errors.Is(err, store.ErrAmbiguousSession) {
		badRequest(c, err.Error())
		return
	}
	if err != nil {
		s.log.Error("load session", zap.Error(err))
		fail(c, http.StatusInternalServerError, "internal server error")
		return
	}
	if rec == nil {
		fail(c, http.StatusNotFound, "session not found")
		return
	}
	attempts, err := s.deps.History.SessionAttempts(ctx, rec.ID)
	if err != nil {
		s.log.Error("load attempts", zap.Error(err))
		fail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	views := make([]attemptView, len(attempts))
	for i, a := range attempts {
		views[i] = attemptView{
			QuestionID: a.QuestionID,
			Kind:       a.Kind,
			Prompt:     a.Prompt,
			Expected:   a.Expected,
			Answer:     a.Answer,
			Correct:    a.Correct,
			FirstTry:   a.FirstTry,
			TimeMs:     a.TimeMs,
			CreatedAt:  a.CreatedAt,
		}
	}
	success(c, gin.H{"session": toSessionView(*rec), "attempts": views})
}
