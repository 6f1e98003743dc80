package httpapi

import "net/http"

func (a *API) userAchievements(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	list, err := a.attempts.UserAchievements(r.Context(), claims.UserID)
	respond(w, r, nonNil(list), err)
}

func (a *API) userProgress(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	list, err := a.attempts.UserProgress(r.Context(), claims.UserID)
	respond(w, r, nonNil(list), err)
}

func (a *API) userAttempts(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	list, err := a.attempts.UserAttempts(r.Context(), claims.UserID)
	respond(w, r, nonNil(list), err)
}
