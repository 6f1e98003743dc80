package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the full HTTP surface: the API under /api and Prometheus
// metrics on /metrics.
func (a *API) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(instrument)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound, nil)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.", nil)
	})

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", a.health).Methods(http.MethodGet)

	throttled := api.NewRoute().Subrouter()
	throttled.Use(a.limiter.middleware)
	throttled.HandleFunc("/auth/register", a.register).Methods(http.MethodPost)
	throttled.HandleFunc("/auth/login", a.login).Methods(http.MethodPost)

	private := api.NewRoute().Subrouter()
	private.Use(mux.MiddlewareFunc(authn(a.users)))

	private.HandleFunc("/auth/profile", a.profile).Methods(http.MethodGet)
	private.HandleFunc("/auth/logout", a.logout).Methods(http.MethodPost)

	private.HandleFunc("/user/achievements", a.userAchievements).Methods(http.MethodGet)
	private.HandleFunc("/user/progress", a.userProgress).Methods(http.MethodGet)
	private.HandleFunc("/user/attempts", a.userAttempts).Methods(http.MethodGet)

	private.HandleFunc("/topics", a.topics).Methods(http.MethodGet)
	private.HandleFunc("/topics/{slug}", a.topic).Methods(http.MethodGet)
	private.HandleFunc("/topics/{slug}/questions", a.topicQuestions).Methods(http.MethodGet)

	private.HandleFunc("/simulation/topics", a.simulationTopics).Methods(http.MethodGet)
	private.HandleFunc("/simulation/topics/{slug}/question", a.simulationQuestion).Methods(http.MethodGet)
	private.HandleFunc("/simulation/questions/{id:[0-9]+}/submit", a.submit).Methods(http.MethodPost)

	private.HandleFunc("/achievements", a.achievements).Methods(http.MethodGet)
	private.HandleFunc("/challenges", a.challenges).Methods(http.MethodGet)
	private.HandleFunc("/challenges/daily", a.dailyChallenge).Methods(http.MethodGet)

	return Chain(router, requestLogger(a.logger), recoverer)
}
