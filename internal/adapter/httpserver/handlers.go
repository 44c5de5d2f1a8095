package httpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/prepforge/ai-interview-coach/internal/config"
	"github.com/prepforge/ai-interview-coach/internal/domain"
	"github.com/prepforge/ai-interview-coach/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg        config.Config
	Answers    *usecase.AnswerService
	Interviews *usecase.InterviewService
	Questions  *usecase.QuestionService
	Extractor  domain.TextExtractor
	DBCheck    func(ctx context.Context) error
	TikaCheck  func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, answers *usecase.AnswerService, interviews *usecase.InterviewService, questions *usecase.QuestionService, extractor domain.TextExtractor, dbCheck, tikaCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Answers: answers, Interviews: interviews, Questions: questions, Extractor: extractor, DBCheck: dbCheck, TikaCheck: tikaCheck}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

func validateStruct(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := getValidator().Struct(req); err != nil {
		verrs := map[string]string{}
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ve {
				verrs[strings.ToLower(fe.Field())] = fe.Tag()
			}
		}
		writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), verrs)
		return false
	}
	return true
}

// SubmitAnswerHandler accepts one recorded answer, runs the assessment
// pipeline, and returns the stored record id with both feedback objects.
func (s *Server) SubmitAnswerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// base64 video inflates roughly 4/3, plus JSON envelope slack
		maxBytes := s.Cfg.MaxVideoMB * 1024 * 1024 * 2
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		var req struct {
			MockID          string `json:"mock_id" validate:"required"`
			QuestionIndex   int    `json:"question_index" validate:"gte=0"`
			Question        string `json:"question" validate:"required"`
			CorrectAnswer   string `json:"correct_answer"`
			UserEmail       string `json:"user_email" validate:"omitempty,email"`
			DurationSeconds int    `json:"duration_seconds" validate:"required,gt=0"`
			Transcript      string `json:"transcript"`
			VideoBase64     string `json:"video_base64"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "too large") {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_ = json.NewEncoder(w).Encode(errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "payload too large", Details: map[string]any{"max_mb": s.Cfg.MaxVideoMB}}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
			return
		}
		if !validateStruct(w, r, req) {
			return
		}
		if req.DurationSeconds < domain.MinSubmitSeconds {
			writeError(w, r, fmt.Errorf("%w: recording must be at least %d seconds", domain.ErrInvalidArgument, domain.MinSubmitSeconds),
				map[string]any{"duration_seconds": req.DurationSeconds, "min_seconds": domain.MinSubmitSeconds})
			return
		}

		var video []byte
		if req.VideoBase64 != "" {
			decoded, err := base64.StdEncoding.DecodeString(req.VideoBase64)
			if err != nil {
				writeError(w, r, fmt.Errorf("%w: video_base64 is not valid base64", domain.ErrInvalidArgument), nil)
				return
			}
			if int64(len(decoded)) > s.Cfg.MaxVideoMB*1024*1024 {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_ = json.NewEncoder(w).Encode(errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "video too large", Details: map[string]any{"max_mb": s.Cfg.MaxVideoMB}}})
				return
			}
			m := mimetype.Detect(decoded)
			if !allowedVideoMIME(m.String()) {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_ = json.NewEncoder(w).Encode(errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "unsupported media type for video", Details: map[string]any{"mime": m.String()}}})
				return
			}
			video = decoded
		}

		out, err := s.Answers.Submit(r.Context(), usecase.SubmitAnswerInput{
			MockID:          req.MockID,
			QuestionIndex:   req.QuestionIndex,
			Question:        req.Question,
			CorrectAnswer:   req.CorrectAnswer,
			UserEmail:       req.UserEmail,
			Video:           video,
			DurationSeconds: req.DurationSeconds,
			Transcript:      req.Transcript,
		})
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":         out.ID,
			"feedback":   contentFeedbackPayload(out.Feedback),
			"behavioral": behavioralPayload(out.Behavioral),
		})
	}
}

// ListAnswersHandler returns the answers for one interview plus aggregates.
func (s *Server) ListAnswersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mockID := chi.URLParam(r, "mockId")
		summary, err := s.Answers.ListWithSummary(r.Context(), mockID)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		records := make([]map[string]any, 0, len(summary.Records))
		for _, rec := range summary.Records {
			records = append(records, answerRecordPayload(rec))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"records":                  records,
			"overall_rating":           summary.OverallRating,
			"overall_behavioral_score": summary.OverallBehavioralScore,
		})
	}
}

// CreateInterviewHandler generates a question set and stores the session.
func (s *Server) CreateInterviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		var req struct {
			JobPosition   string `json:"job_position" validate:"required,max=200"`
			JobDesc       string `json:"job_desc" validate:"required,max=5000"`
			JobExperience string `json:"job_experience" validate:"max=100"`
			InterviewType string `json:"interview_type" validate:"omitempty,oneof=technical behavioral"`
			ResumeText    string `json:"resume_text" validate:"max=50000"`
			CreatedBy     string `json:"created_by" validate:"required,max=200"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
			return
		}
		if !validateStruct(w, r, req) {
			return
		}
		iv, err := s.Interviews.Create(r.Context(), usecase.CreateInterviewInput{
			JobPosition:   req.JobPosition,
			JobDesc:       req.JobDesc,
			JobExperience: req.JobExperience,
			InterviewType: req.InterviewType,
			ResumeText:    req.ResumeText,
			CreatedBy:     req.CreatedBy,
		})
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, interviewPayload(iv))
	}
}

// GetInterviewHandler returns one session by its public id.
func (s *Server) GetInterviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		iv, err := s.Interviews.Get(r.Context(), chi.URLParam(r, "mockId"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, interviewPayload(iv))
	}
}

// ListInterviewsHandler returns the sessions one user created.
func (s *Server) ListInterviewsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ivs, err := s.Interviews.ListByCreator(r.Context(), r.URL.Query().Get("created_by"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		out := make([]map[string]any, 0, len(ivs))
		for _, iv := range ivs {
			out = append(out, interviewPayload(iv))
		}
		writeJSON(w, http.StatusOK, map[string]any{"interviews": out})
	}
}

// CreateQuestionSetHandler generates and stores a question-bank entry.
func (s *Server) CreateQuestionSetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		var req struct {
			JobPosition   string `json:"job_position" validate:"required,max=200"`
			JobDesc       string `json:"job_desc" validate:"max=5000"`
			JobExperience string `json:"job_experience" validate:"max=100"`
			QuestionType  string `json:"question_type" validate:"omitempty,oneof=technical behavioral"`
			Company       string `json:"company" validate:"max=200"`
			CreatedBy     string `json:"created_by" validate:"required,max=200"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
			return
		}
		if !validateStruct(w, r, req) {
			return
		}
		q, err := s.Questions.Create(r.Context(), usecase.CreateQuestionSetInput{
			JobPosition:   req.JobPosition,
			JobDesc:       req.JobDesc,
			JobExperience: req.JobExperience,
			QuestionType:  req.QuestionType,
			Company:       req.Company,
			CreatedBy:     req.CreatedBy,
		})
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, questionPayload(q))
	}
}

// ListQuestionSetsHandler returns question-bank entries by mock_id or creator.
func (s *Server) ListQuestionSetsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mockID := r.URL.Query().Get("mock_id"); mockID != "" {
			q, err := s.Questions.Get(r.Context(), mockID)
			if err != nil {
				writeError(w, r, err, nil)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"question_sets": []map[string]any{questionPayload(q)}})
			return
		}
		qs, err := s.Questions.ListByCreator(r.Context(), r.URL.Query().Get("created_by"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		out := make([]map[string]any, 0, len(qs))
		for _, q := range qs {
			out = append(out, questionPayload(q))
		}
		writeJSON(w, http.StatusOK, map[string]any{"question_sets": out})
	}
}

// UploadResumeHandler extracts text from an uploaded resume PDF for use in
// question generation. The text is returned, not stored.
func (s *Server) UploadResumeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument), nil)
			return
		}
		maxBytes := s.Cfg.MaxResumeMB * 1024 * 1024
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes*2)
		if err := r.ParseMultipartForm(maxBytes * 2); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "too large") {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_ = json.NewEncoder(w).Encode(errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "payload too large", Details: map[string]any{"max_mb": s.Cfg.MaxResumeMB}}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		file, header, err := r.FormFile("resume")
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: resume file required", domain.ErrInvalidArgument), map[string]string{"field": "resume"})
			return
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: resume read: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		if !allowedResumeExt(header.Filename) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnsupportedMediaType)
			_ = json.NewEncoder(w).Encode(errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "unsupported media type for resume (extension)", Details: map[string]any{"filename": header.Filename}}})
			return
		}
		m := mimetype.Detect(data)
		if m.String() != "application/pdf" {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnsupportedMediaType)
			_ = json.NewEncoder(w).Encode(errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "unsupported media type for resume (content)", Details: map[string]any{"mime": m.String(), "filename": header.Filename}}})
			return
		}

		text, err := extractResumeText(r.Context(), s.Extractor, header.Filename, data)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: resume extract: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"resume_text": text})
	}
}

// ReadyzHandler returns a readiness handler that probes DB and Tika.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 2)
		if s.DBCheck != nil {
			if err := s.DBCheck(ctx); err != nil {
				checks = append(checks, check{Name: "db", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "db", OK: true})
			}
		}
		if s.TikaCheck != nil {
			if err := s.TikaCheck(ctx); err != nil {
				checks = append(checks, check{Name: "tika", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "tika", OK: true})
			}
		}
		st := http.StatusOK
		for _, c := range checks {
			if !c.OK {
				st = http.StatusServiceUnavailable
				break
			}
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}

func allowedVideoMIME(m string) bool {
	m = strings.ToLower(m)
	return strings.HasPrefix(m, "video/") || strings.HasPrefix(m, "audio/")
}

func allowedResumeExt(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == ".pdf"
}

// extractResumeText streams the upload through a temp file so the extractor
// can re-read it.
func extractResumeText(ctx context.Context, extractor domain.TextExtractor, fileName string, data []byte) (string, error) {
	if extractor == nil {
		return "", fmt.Errorf("%w: pdf extraction unavailable", domain.ErrInvalidArgument)
	}
	tmp, err := os.CreateTemp("", "resume-*")
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(tmp.Name()); _ = tmp.Close() }()
	if _, err := tmp.Write(data); err != nil {
		return "", err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return extractor.ExtractPath(ctx, fileName, tmp.Name())
}

func contentFeedbackPayload(fb domain.ContentFeedback) map[string]any {
	return map[string]any{
		"rating":          fb.Rating,
		"feedback":        fb.Feedback,
		"strengths":       fb.Strengths,
		"recommendations": fb.Recommendations,
	}
}

func behavioralPayload(b domain.BehavioralScore) map[string]any {
	return map[string]any{
		"body_language_score":   b.BodyLanguageScore,
		"eye_contact_score":     b.EyeContactScore,
		"confidence_score":      b.ConfidenceScore,
		"pacing_score":          b.PacingScore,
		"engagement_score":      b.EngagementScore,
		"overall_score":         b.OverallScore,
		"behavioral_feedback":   b.BehavioralFeedback,
		"strengths":             b.Strengths,
		"areas_for_improvement": b.AreasForImprovement,
		"recommended_actions":   b.RecommendedActions,
	}
}

func answerRecordPayload(rec domain.AnswerRecord) map[string]any {
	return map[string]any{
		"id":                  rec.ID,
		"mock_id":             rec.MockID,
		"question_index":      rec.QuestionIndex,
		"question":            rec.Question,
		"correct_answer":      rec.CorrectAnswer,
		"user_answer":         rec.UserAnswer,
		"feedback":            rec.Feedback,
		"rating":              rec.Rating,
		"user_email":          rec.UserEmail,
		"created_at":          rec.CreatedAt,
		"video_duration":      rec.VideoDuration,
		"body_language_score": rec.BodyLanguageScore,
		"eye_contact_score":   rec.EyeContactScore,
		"confidence_score":    rec.ConfidenceScore,
		"pacing_score":        rec.PacingScore,
		"engagement_score":    rec.EngagementScore,
		"overall_score":       rec.OverallScore,
		"behavioral_feedback": rec.BehavioralFeedback,
	}
}

func interviewPayload(iv domain.Interview) map[string]any {
	var questions any
	if err := json.Unmarshal([]byte(iv.QuestionsJSON), &questions); err != nil {
		questions = iv.QuestionsJSON
	}
	return map[string]any{
		"mock_id":        iv.MockID,
		"questions":      questions,
		"job_position":   iv.JobPosition,
		"job_desc":       iv.JobDesc,
		"job_experience": iv.JobExperience,
		"interview_type": iv.InterviewType,
		"created_by":     iv.CreatedBy,
		"created_at":     iv.CreatedAt,
	}
}

func questionPayload(q domain.Question) map[string]any {
	var questions any
	if err := json.Unmarshal([]byte(q.QuestionsJSON), &questions); err != nil {
		questions = q.QuestionsJSON
	}
	return map[string]any{
		"mock_id":        q.MockID,
		"questions":      questions,
		"job_position":   q.JobPosition,
		"job_desc":       q.JobDesc,
		"job_experience": q.JobExperience,
		"question_type":  q.QuestionType,
		"company":        q.Company,
		"created_by":     q.CreatedBy,
		"created_at":     q.CreatedAt,
	}
}
