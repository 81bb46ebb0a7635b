package web

import (
	"net/http"
	"strings"

	"github.com/JonMunkholm/lists/internal/core"
	"github.com/JonMunkholm/lists/internal/web/views"
	"github.com/google/uuid"
)

// ----------------------------------------------------------------------------
// Pages
// ----------------------------------------------------------------------------

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	cards := []views.ListCard{}
	for _, l := range s.service.Lists() {
		s.service.View(l.ID, func(l *core.List) error {
			cards = append(cards, views.NewListCard(l))
			return nil
		})
	}

	templates := s.service.Templates()
	tpls := make([]views.TemplateCard, len(templates))
	for i, t := range templates {
		tpls[i] = views.NewTemplateCard(t)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Dashboard(cards, tpls).Render(r.Context(), w); err != nil {
		s.respondError(w, r, err)
	}
}

// handleListPage renders a list. A page query parameter moves the list's
// current page first.
func (s *Server) handleListPage(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if page := parseIntParam(r, "page", 0); page > 0 {
		err = s.service.Update(r.Context(), id, func(l *core.List) error {
			l.SetCurrentPage(page)
			return nil
		})
		if err != nil {
			s.respondError(w, r, err)
			return
		}
	}

	var data views.ListPageData
	err = s.service.View(id, func(l *core.List) error {
		data = views.NewListPageData(l)
		return nil
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.ListPage(data).Render(r.Context(), w); err != nil {
		s.respondError(w, r, err)
	}
}

// ----------------------------------------------------------------------------
// Lists
// ----------------------------------------------------------------------------

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates := s.service.Templates()
	out := make([]listSummary, len(templates))
	for i, t := range templates {
		out[i] = summarize(t)
	}
	writeJSON(w, out)
}

func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	favoritesOnly := r.URL.Query().Get("favorites") == "true"

	out := []listSummary{}
	for _, l := range s.service.Lists() {
		s.service.View(l.ID, func(l *core.List) error {
			if !favoritesOnly || l.IsFavorited {
				out = append(out, summarize(l))
			}
			return nil
		})
	}
	writeJSON(w, out)
}

type createListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

func (req createListRequest) options() []core.ListOption {
	var opts []core.ListOption
	if req.Color != "" {
		opts = append(opts, core.WithColor(req.Color))
	}
	if req.Icon != "" {
		opts = append(opts, core.WithIcon(req.Icon))
	}
	return opts
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	l, err := s.service.CreateBlank(r.Context(), strings.TrimSpace(req.Name), req.Description, req.options()...)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.viewCreated(w, r, l.ID)
}

func (s *Server) handleCreateFromTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID uuid.UUID `json:"templateId"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	l, err := s.service.CreateFromTemplate(r.Context(), req.TemplateID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.viewCreated(w, r, l.ID)
}

func (s *Server) handleCopyList(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req createListRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	opts := req.options()
	if req.Description != "" {
		opts = append(opts, core.WithListDescription(req.Description))
	}
	l, err := s.service.CreateFromExisting(r.Context(), id, strings.TrimSpace(req.Name), opts...)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.viewCreated(w, r, l.ID)
}

// viewCreated writes the full document of a newly created list with 201.
func (s *Server) viewCreated(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	s.viewJSON(w, r, id, http.StatusCreated, func(l *core.List) (any, error) { return l, nil })
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.viewJSON(w, r, id, http.StatusOK, func(l *core.List) (any, error) { return l, nil })
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.service.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFavoriteList(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.service.Favorite(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.viewJSON(w, r, id, http.StatusOK, func(l *core.List) (any, error) { return summarize(l), nil })
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.viewJSON(w, r, id, http.StatusOK, func(l *core.List) (any, error) { return core.ToForm(l), nil })
}

// ----------------------------------------------------------------------------
// Access
// ----------------------------------------------------------------------------

func (s *Server) handleListAccess(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.viewJSON(w, r, id, http.StatusOK, func(l *core.List) (any, error) { return usersOf(l), nil })
}

func (s *Server) handleAddAccess(w http.ResponseWriter, r *http.Request) {
	s.changeAccess(w, r, func(l *core.List, u core.User) error {
		l.AddAccess(u)
		return nil
	})
}

func (s *Server) handleRemoveAccess(w http.ResponseWriter, r *http.Request) {
	s.changeAccess(w, r, func(l *core.List, u core.User) error {
		if !l.RemoveAccess(u) {
			return core.ErrNotFound
		}
		return nil
	})
}

func (s *Server) changeAccess(w http.ResponseWriter, r *http.Request, fn func(*core.List, core.User) error) {
	id, err := uuidParam(r, "listID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var u core.User
	if err := decodeJSON(w, r, &u); err != nil {
		s.respondError(w, r, err)
		return
	}
	if u.ID == uuid.Nil && strings.TrimSpace(u.Name) == "" {
		s.respondError(w, r, errBadRequest)
		return
	}

	s.updateJSON(w, r, id, http.StatusOK, func(l *core.List) (any, error) {
		if err := fn(l, u); err != nil {
			return nil, err
		}
		return usersOf(l), nil
	})
}

func usersOf(l *core.List) []core.User {
	users := l.Users()
	if users == nil {
		users = []core.User{}
	}
	return users
}
