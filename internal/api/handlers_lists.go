package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"bingeboard/internal/fileutil"
	"bingeboard/internal/lists"
	"bingeboard/internal/logging"
	"bingeboard/internal/media"
)

func (s *Server) listsFailed(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, lists.ErrReservedList) {
		writeError(s.logger, w, http.StatusConflict, err.Error())
		return
	}
	logging.ErrorWithContext(logging.WithContext(r.Context(), s.logger), "list operation failed", "list_store_failed",
		logging.String("operation", op),
		logging.Error(err),
		logging.String(logging.FieldImpact, "request not completed"),
	)
	writeError(s.logger, w, http.StatusInternalServerError, "list storage unavailable")
}

// findList returns the list with id from all, writing 404 when it is absent.
func (s *Server) findList(w http.ResponseWriter, all []lists.UserList, id string) (lists.UserList, bool) {
	for _, l := range all {
		if l.ID == id {
			return l, true
		}
	}
	writeError(s.logger, w, http.StatusNotFound, lists.ErrListNotFound.Error())
	return lists.UserList{}, false
}

func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	all, err := s.svc.Lists.GetLists(r.Context())
	if err != nil {
		s.listsFailed(w, r, "get_lists", err)
		return
	}
	if r.URL.Query().Get("editable") == "true" {
		all = lists.EditableLists(all)
	}
	writeJSON(s.logger, w, http.StatusOK, ListsResponse{Lists: all})
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if !decodeBody(s.logger, w, r, maxBodyBytes, &req) {
		return
	}
	all, err := s.svc.Lists.CreateList(r.Context(), req.Name)
	if err != nil {
		s.listsFailed(w, r, "create_list", err)
		return
	}
	writeJSON(s.logger, w, http.StatusCreated, ListsResponse{Lists: all})
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Lists.GetListByID(r.Context(), chi.URLParam(r, "listID"))
	if err != nil {
		s.listsFailed(w, r, "get_list", err)
		return
	}
	if list == nil {
		writeError(s.logger, w, http.StatusNotFound, lists.ErrListNotFound.Error())
		return
	}
	filter, ok := s.itemFilter(w, r)
	if !ok {
		return
	}
	writeJSON(s.logger, w, http.StatusOK, ListResponse{
		List:    *list,
		Items:   lists.Filter(list.Items, filter),
		Ratings: lists.AvailableRatings(list.Items),
	})
}

// itemFilter parses ?search=&genre=&rating=&from=&to= (dates as YYYY-MM-DD).
func (s *Server) itemFilter(w http.ResponseWriter, r *http.Request) (lists.ItemFilter, bool) {
	q := r.URL.Query()
	filter := lists.ItemFilter{
		Search: q.Get("search"),
		Genre:  q.Get("genre"),
	}
	if raw := strings.TrimSpace(q.Get("rating")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(s.logger, w, http.StatusBadRequest, "rating must be a number")
			return filter, false
		}
		filter.Rating = &v
	}
	for key, dst := range map[string]*time.Time{"from": &filter.From, "to": &filter.To} {
		raw := strings.TrimSpace(q.Get(key))
		if raw == "" {
			continue
		}
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			writeError(s.logger, w, http.StatusBadRequest, key+" must be YYYY-MM-DD")
			return filter, false
		}
		*dst = t
	}
	return filter, true
}

func (s *Server) handleRenameList(w http.ResponseWriter, r *http.Request) {
	var req renameListRequest
	if !decodeBody(s.logger, w, r, maxBodyBytes, &req) {
		return
	}
	id := chi.URLParam(r, "listID")
	all, err := s.svc.Lists.RenameList(r.Context(), id, req.Name)
	if err != nil {
		s.listsFailed(w, r, "rename_list", err)
		return
	}
	if list, ok := s.findList(w, all, id); ok {
		writeJSON(s.logger, w, http.StatusOK, ListResponse{List: list})
	}
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	all, err := s.svc.Lists.DeleteList(r.Context(), chi.URLParam(r, "listID"))
	if err != nil {
		s.listsFailed(w, r, "delete_list", err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, ListsResponse{Lists: all})
}

func (s *Server) handleTogglePin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "listID")
	all, err := s.svc.Lists.TogglePinList(r.Context(), id)
	if err != nil {
		s.listsFailed(w, r, "toggle_pin", err)
		return
	}
	if _, ok := s.findList(w, all, id); ok {
		writeJSON(s.logger, w, http.StatusOK, ListsResponse{Lists: all})
	}
}

func (s *Server) handleExportList(w http.ResponseWriter, r *http.Request) {
	payload, ok, err := s.svc.Lists.ExportListToJSON(r.Context(), chi.URLParam(r, "listID"))
	if err != nil {
		s.listsFailed(w, r, "export_list", err)
		return
	}
	if !ok {
		writeError(s.logger, w, http.StatusNotFound, lists.ErrListNotFound.Error())
		return
	}
	name := "list"
	if list, _ := s.svc.Lists.GetListByID(r.Context(), chi.URLParam(r, "listID")); list != nil {
		name = list.Name
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileutil.ExportFileName(name)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(payload))
}

func (s *Server) handleImportList(w http.ResponseWriter, r *http.Request) {
	var req importListRequest
	if !decodeBody(s.logger, w, r, maxImportBodyBytes, &req) {
		return
	}
	result := s.svc.Lists.ImportListFromJSON(r.Context(), req.Payload, req.Name)
	if !result.OK() {
		writeJSON(s.logger, w, http.StatusUnprocessableEntity, ErrorResponse{Error: result.Err})
		return
	}
	writeJSON(s.logger, w, http.StatusCreated, ListResponse{List: *result.List})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Lists.GetListByID(r.Context(), chi.URLParam(r, "listID"))
	if err != nil {
		s.listsFailed(w, r, "list_categories", err)
		return
	}
	if list == nil {
		writeError(s.logger, w, http.StatusNotFound, lists.ErrListNotFound.Error())
		return
	}
	buckets := lists.Categorize(list.Items)
	groups := make([]CategoryGroup, 0, len(lists.Categories))
	for _, c := range lists.Categories {
		items := buckets[c]
		if len(items) == 0 {
			continue
		}
		groups = append(groups, CategoryGroup{Key: c, Title: c.Title(), Items: items})
	}
	writeJSON(s.logger, w, http.StatusOK, groups)
}

func parseItemPath(r *http.Request) (media.MediaType, media.ID, error) {
	mt, err := media.ParseMediaType(chi.URLParam(r, "mediaType"))
	if err != nil {
		return "", "", err
	}
	return mt, media.ID(strings.TrimSpace(chi.URLParam(r, "itemID"))), nil
}

func (s *Server) handlePutItem(w http.ResponseWriter, r *http.Request) {
	mt, id, err := parseItemPath(r)
	if err != nil {
		writeError(s.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	var req putItemRequest
	if !decodeBody(s.logger, w, r, maxBodyBytes, &req) {
		return
	}
	rec := *req.Item
	rec.ID = id
	rec.MediaType = mt

	opts := lists.AddOptions{Watched: req.WatchedEpisodes}
	switch {
	case req.Rating != nil:
		opts.Rating = lists.Rate(*req.Rating)
	case req.ClearRating:
		opts.Rating = lists.ClearRating()
	}

	listID := chi.URLParam(r, "listID")
	all, err := s.svc.Lists.AddItemToList(r.Context(), listID, rec, opts)
	if err != nil {
		s.listsFailed(w, r, "add_item", err)
		return
	}
	list, ok := s.findList(w, all, listID)
	if !ok {
		return
	}
	item, _ := list.Find(id, mt)
	writeJSON(s.logger, w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	mt, id, err := parseItemPath(r)
	if err != nil {
		writeError(s.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	listID := chi.URLParam(r, "listID")
	all, err := s.svc.Lists.RemoveItemFromList(r.Context(), listID, id, mt)
	if err != nil {
		s.listsFailed(w, r, "remove_item", err)
		return
	}
	if list, ok := s.findList(w, all, listID); ok {
		writeJSON(s.logger, w, http.StatusOK, ListResponse{List: list})
	}
}

func (s *Server) handleRecentItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Lists.GetListedItems(r.Context())
	if err != nil {
		s.listsFailed(w, r, "recent_items", err)
		return
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	writeJSON(s.logger, w, http.StatusOK, items)
}

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.svc.Lists.GetAllGenresFromList(r.Context())
	if err != nil {
		s.listsFailed(w, r, "list_genres", err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, genres)
}

func (s *Server) handlePresence(w http.ResponseWriter, r *http.Request) {
	mt, id, err := parseItemPath(r)
	if err != nil {
		writeError(s.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	presence, err := s.svc.Lists.IsItemInAnyList(r.Context(), id, mt)
	if err != nil {
		s.listsFailed(w, r, "presence", err)
		return
	}
	interested, err := s.svc.Lists.IsItemInInterestedList(r.Context(), id, mt)
	if err != nil {
		s.listsFailed(w, r, "presence", err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, struct {
		lists.Presence
		Interested bool `json:"interested"`
	}{Presence: presence, Interested: interested})
}

func (s *Server) handleToggleInterested(w http.ResponseWriter, r *http.Request) {
	var req interestedRequest
	if !decodeBody(s.logger, w, r, maxBodyBytes, &req) {
		return
	}
	if !req.Item.MediaType.Valid() || strings.TrimSpace(req.Item.ID.String()) == "" {
		writeError(s.logger, w, http.StatusBadRequest, "item requires id and media_type movie or tv")
		return
	}
	added, all, err := s.svc.Lists.ToggleInterested(r.Context(), *req.Item)
	if err != nil {
		s.listsFailed(w, r, "toggle_interested", err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, InterestedResponse{Added: added, Lists: all})
}
