package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"portal-learning/internal/domain"
)

func decodeBody[T any](r *http.Request) (T, error) {
	var payload T
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return payload, fmt.Errorf("%w: malformed payload", domain.ErrValidation)
	}
	return payload, nil
}

func (a *API) listContacts(w http.ResponseWriter, r *http.Request, _ domain.User) {
	contacts, err := a.content.ListContacts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (a *API) createContact(w http.ResponseWriter, r *http.Request, _ domain.User) {
	contact, err := decodeBody[domain.Contact](r)
	if err != nil {
		writeError(w, err)
		return
	}
	created, err := a.content.CreateContact(r.Context(), contact)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) updateContact(w http.ResponseWriter, r *http.Request, _ domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	contact, err := decodeBody[domain.Contact](r)
	if err != nil {
		writeError(w, err)
		return
	}
	contact.ID = id
	updated, err := a.content.UpdateContact(r.Context(), contact)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (a *API) deleteContact(w http.ResponseWriter, r *http.Request, _ domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := a.content.DeleteContact(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listFaq(w http.ResponseWriter, r *http.Request, _ domain.User) {
	entries, err := a.content.ListFaqEntries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (a *API) createFaq(w http.ResponseWriter, r *http.Request, _ domain.User) {
	entry, err := decodeBody[domain.FaqEntry](r)
	if err != nil {
		writeError(w, err)
		return
	}
	created, err := a.content.CreateFaqEntry(r.Context(), entry)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) updateFaq(w http.ResponseWriter, r *http.Request, _ domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	entry, err := decodeBody[domain.FaqEntry](r)
	if err != nil {
		writeError(w, err)
		return
	}
	entry.ID = id
	updated, err := a.content.UpdateFaqEntry(r.Context(), entry)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (a *API) deleteFaq(w http.ResponseWriter, r *http.Request, _ domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := a.content.DeleteFaqEntry(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listLinks(w http.ResponseWriter, r *http.Request, _ domain.User) {
	links, err := a.content.ListLinks(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

func (a *API) createLink(w http.ResponseWriter, r *http.Request, _ domain.User) {
	link, err := decodeBody[domain.Link](r)
	if err != nil {
		writeError(w, err)
		return
	}
	created, err := a.content.CreateLink(r.Context(), link)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) updateLink(w http.ResponseWriter, r *http.Request, _ domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	link, err := decodeBody[domain.Link](r)
	if err != nil {
		writeError(w, err)
		return
	}
	link.ID = id
	updated, err := a.content.UpdateLink(r.Context(), link)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (a *API) deleteLink(w http.ResponseWriter, r *http.Request, _ domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := a.content.DeleteLink(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listPages(w http.ResponseWriter, r *http.Request, _ domain.User) {
	pages, err := a.content.ListPages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

func (a *API) createPage(w http.ResponseWriter, r *http.Request, _ domain.User) {
	page, err := decodeBody[domain.Page](r)
	if err != nil {
		writeError(w, err)
		return
	}
	created, err := a.content.CreatePage(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) updatePage(w http.ResponseWriter, r *http.Request, _ domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := decodeBody[domain.Page](r)
	if err != nil {
		writeError(w, err)
		return
	}
	page.ID = id
	updated, err := a.content.UpdatePage(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (a *API) deletePage(w http.ResponseWriter, r *http.Request, _ domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := a.content.DeletePage(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listCallLogs(w http.ResponseWriter, r *http.Request, user domain.User) {
	logs, err := a.content.CallLogs(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (a *API) createCallLog(w http.ResponseWriter, r *http.Request, user domain.User) {
	entry, err := decodeBody[domain.CallLog](r)
	if err != nil {
		writeError(w, err)
		return
	}
	created, err := a.content.LogCall(r.Context(), user.ID, entry)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
