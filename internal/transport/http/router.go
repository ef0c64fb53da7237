package http

import (
	"net/http"

	"portal-learning/internal/app"
)

// API wires the portal use cases into HTTP handlers.
type API struct {
	auth     *app.AuthService
	learning *app.LearningService
	content  *app.ContentService
}

func NewAPI(auth *app.AuthService, learning *app.LearningService, content *app.ContentService) *API {
	return &API{auth: auth, learning: learning, content: content}
}

// Router builds the portal's route table. All /api routes require a session
// except login; content mutations additionally require the admin role.
func (a *API) Router() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /api/login", a.login)
	mux.HandleFunc("POST /api/logout", a.logout)
	mux.HandleFunc("GET /api/user", a.requireUser(a.currentAccount))

	mux.HandleFunc("GET /api/scenarios", a.requireUser(a.listScenarios))
	mux.HandleFunc("POST /api/scenarios/{id}/answer", a.requireUser(a.submitAnswer))
	mux.HandleFunc("GET /api/user-progress", a.requireUser(a.userProgress))
	mux.HandleFunc("POST /api/game/session", a.requireUser(a.startGameSession))
	mux.HandleFunc("POST /api/game/session/{token}/answer", a.requireUser(a.submitGameSession))
	mux.HandleFunc("GET /ws/scoreboard", a.serveScoreboard)

	mux.HandleFunc("GET /api/contacts", a.requireUser(a.listContacts))
	mux.HandleFunc("POST /api/contacts", a.requireAdmin(a.createContact))
	mux.HandleFunc("PUT /api/contacts/{id}", a.requireAdmin(a.updateContact))
	mux.HandleFunc("DELETE /api/contacts/{id}", a.requireAdmin(a.deleteContact))

	mux.HandleFunc("GET /api/faq", a.requireUser(a.listFaq))
	mux.HandleFunc("POST /api/faq", a.requireAdmin(a.createFaq))
	mux.HandleFunc("PUT /api/faq/{id}", a.requireAdmin(a.updateFaq))
	mux.HandleFunc("DELETE /api/faq/{id}", a.requireAdmin(a.deleteFaq))

	mux.HandleFunc("GET /api/links", a.requireUser(a.listLinks))
	mux.HandleFunc("POST /api/links", a.requireAdmin(a.createLink))
	mux.HandleFunc("PUT /api/links/{id}", a.requireAdmin(a.updateLink))
	mux.HandleFunc("DELETE /api/links/{id}", a.requireAdmin(a.deleteLink))

	mux.HandleFunc("GET /api/pages", a.requireUser(a.listPages))
	mux.HandleFunc("POST /api/pages", a.requireAdmin(a.createPage))
	mux.HandleFunc("PUT /api/pages/{id}", a.requireAdmin(a.updatePage))
	mux.HandleFunc("DELETE /api/pages/{id}", a.requireAdmin(a.deletePage))

	mux.HandleFunc("GET /api/call-logs", a.requireUser(a.listCallLogs))
	mux.HandleFunc("POST /api/call-logs", a.requireUser(a.createCallLog))

	return mux
}
