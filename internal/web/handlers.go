package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/session"
)

// pageData is the model for every page template.
type pageData struct {
	Status        string
	Input         session.InputState
	Levels        []quiz.Proficiency
	HasCredential bool
	Quiz          session.QuizState
	Letters       []string
	Results       session.ResultsState
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, s.sess.State())
}

func (s *Server) render(w http.ResponseWriter, status int, st session.State) {
	data := pageData{
		Status:        s.opts.Status,
		Levels:        quiz.Proficiencies(),
		HasCredential: s.opts.Credential != "",
		Letters:       quiz.Letters(),
	}

	var name string
	switch st := st.(type) {
	case session.InputState:
		name, data.Input = "input.html", st
	case session.QuizState:
		name, data.Quiz = "quiz.html", st
	case session.ResultsState:
		name, data.Results = "results.html", st
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("render page", "template", name, "error", err)
	}
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	in := session.GenerateInput{
		Subject:     strings.TrimSpace(r.PostFormValue("subject")),
		Proficiency: parseLevel(r.PostFormValue("proficiency")),
		Credential:  strings.TrimSpace(r.PostFormValue("credential")),
	}
	if in.Credential == "" {
		in.Credential = s.opts.Credential
	}

	err := s.sess.Generate(r.Context(), s.opts.Generator, in)

	var inputErr *session.InputError
	switch {
	case errors.Is(err, session.ErrBusy), errors.Is(err, session.ErrWrongStep):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.As(err, &inputErr):
		s.render(w, http.StatusBadRequest, session.InputState{
			Subject:     in.Subject,
			Proficiency: in.Proficiency,
			Err:         inputErr.Error(),
		})
		return
	}

	// Generation failures are recorded on the input step.
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func parseLevel(v string) quiz.Proficiency {
	p, err := quiz.ParseProficiency(v)
	if err != nil {
		return quiz.Proficiency(v)
	}
	return p
}

func (s *Server) answers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st, ok := s.sess.State().(session.QuizState)
	if !ok {
		http.Error(w, session.ErrWrongStep.Error(), http.StatusConflict)
		return
	}

	for i := range st.Questions {
		letter := strings.ToUpper(strings.TrimSpace(r.PostFormValue(fmt.Sprintf("q%d", i))))
		if err := s.sess.Answer(i, letter); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if _, err := s.sess.Submit(); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) restart(w http.ResponseWriter, r *http.Request) {
	s.sess.Restart()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type questionView struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Advice        string   `json:"advice,omitempty"`
	UserAnswer    *string  `json:"userAnswer,omitempty"`
}

type stateView struct {
	Step        string         `json:"step"`
	Subject     string         `json:"subject,omitempty"`
	Proficiency string         `json:"proficiency,omitempty"`
	Loading     bool           `json:"loading,omitempty"`
	Error       string         `json:"error,omitempty"`
	Questions   []questionView `json:"questions,omitempty"`
	Answers     []string       `json:"answers,omitempty"`
	Score       *int           `json:"score,omitempty"`
	Total       int            `json:"total,omitempty"`
	Verdict     string         `json:"verdict,omitempty"`
}

// state reports the session as JSON. Correct answers and advice are only
// included once the quiz is submitted.
func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	st := s.sess.State()
	out := stateView{Step: st.Step().String()}

	switch st := st.(type) {
	case session.InputState:
		out.Subject = st.Subject
		out.Proficiency = st.Proficiency.String()
		out.Loading = st.Loading
		out.Error = st.Err
	case session.QuizState:
		for _, q := range st.Questions {
			out.Questions = append(out.Questions, questionView{Text: q.Text, Options: q.Options})
		}
		out.Answers = st.Answers
	case session.ResultsState:
		for _, q := range st.Questions {
			out.Questions = append(out.Questions, questionView(q))
		}
		score := st.Score
		out.Score = &score
		out.Total = len(st.Questions)
		out.Verdict = quiz.Verdict(st.Score, len(st.Questions))
	}

	respondJSON(w, http.StatusOK, out)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
