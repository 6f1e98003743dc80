package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Sinduaditya/fisikaap-sub000/internal/server/services"
)

type submitRequest struct {
	Answer    string `json:"answer"`
	TimeTaken int    `json:"time_taken"`
}

// respond writes data or maps err.
func respond[T any](w http.ResponseWriter, r *http.Request, data T, err error) {
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", data)
}

// nonNil makes empty collections encode as [] instead of being dropped.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (a *API) topics(w http.ResponseWriter, r *http.Request) {
	list, err := a.catalog.Topics(r.Context())
	respond(w, r, nonNil(list), err)
}

func (a *API) topic(w http.ResponseWriter, r *http.Request) {
	t, err := a.catalog.Topic(r.Context(), mux.Vars(r)["slug"])
	respond(w, r, t, err)
}

func (a *API) topicQuestions(w http.ResponseWriter, r *http.Request) {
	list, err := a.catalog.TopicQuestions(r.Context(), mux.Vars(r)["slug"])
	respond(w, r, nonNil(list), err)
}

func (a *API) simulationTopics(w http.ResponseWriter, r *http.Request) {
	list, err := a.catalog.SimulationTopics(r.Context())
	respond(w, r, nonNil(list), err)
}

func (a *API) simulationQuestion(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	q, err := a.catalog.SimulationQuestion(r.Context(), mux.Vars(r)["slug"], claims.UserID)
	respond(w, r, q, err)
}

func (a *API) submit(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, msgNotFound, nil)
		return
	}

	var req submitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := a.attempts.Submit(r.Context(), services.SubmitInput{
		UserID:     claims.UserID,
		QuestionID: id,
		Answer:     req.Answer,
		TimeTaken:  req.TimeTaken,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	submissionsTotal.WithLabelValues(strconv.FormatBool(res.IsCorrect)).Inc()
	writeData(w, http.StatusOK, res.Feedback, res)
}

func (a *API) achievements(w http.ResponseWriter, r *http.Request) {
	list, err := a.catalog.Achievements(r.Context())
	respond(w, r, nonNil(list), err)
}

func (a *API) challenges(w http.ResponseWriter, r *http.Request) {
	list, err := a.catalog.Challenges(r.Context())
	respond(w, r, nonNil(list), err)
}

func (a *API) dailyChallenge(w http.ResponseWriter, r *http.Request) {
	c, err := a.catalog.DailyChallenge(r.Context())
	respond(w, r, c, err)
}
