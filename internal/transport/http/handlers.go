package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"portal-learning/internal/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed login payload", domain.ErrValidation))
		return
	}
	token, user, err := a.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		if err := a.auth.Logout(r.Context(), token); err != nil {
			writeError(w, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) currentAccount(w http.ResponseWriter, r *http.Request, user domain.User) {
	account, err := a.learning.Account(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (a *API) listScenarios(w http.ResponseWriter, r *http.Request, _ domain.User) {
	scenarios, err := a.learning.ListScenarios(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scenarios)
}

type answerRequest struct {
	Answer *int `json:"answer"`
}

func (a *API) submitAnswer(w http.ResponseWriter, r *http.Request, user domain.User) {
	scenarioID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	choice, err := decodeAnswer(r)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := a.learning.SubmitAnswer(r.Context(), user.ID, scenarioID, choice)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) userProgress(w http.ResponseWriter, r *http.Request, user domain.User) {
	record, err := a.learning.GetProgress(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

type gameSessionResponse struct {
	Token     string          `json:"token"`
	Scenario  domain.Scenario `json:"scenario"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

func (a *API) startGameSession(w http.ResponseWriter, r *http.Request, user domain.User) {
	session, scenario, err := a.learning.StartSession(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, gameSessionResponse{
		Token:     session.Token,
		Scenario:  scenario,
		ExpiresAt: session.ExpiresAt,
	})
}

func (a *API) submitGameSession(w http.ResponseWriter, r *http.Request, user domain.User) {
	token := r.PathValue("token")
	choice, err := decodeAnswer(r)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := a.learning.SubmitSession(r.Context(), user.ID, token, choice)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func decodeAnswer(r *http.Request) (int, error) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Answer == nil {
		return 0, fmt.Errorf("%w: answer must be an integer", domain.ErrValidation)
	}
	return *req.Answer, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be numeric", domain.ErrValidation)
	}
	return id, nil
}
