package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"bingeboard/internal/catalog"
	"bingeboard/internal/media"
)

func (s *Server) pathMediaType(w http.ResponseWriter, r *http.Request) (media.MediaType, bool) {
	mt, err := media.ParseMediaType(chi.URLParam(r, "mediaType"))
	if err != nil {
		writeError(s.logger, w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return mt, true
}

func (s *Server) writeResults(w http.ResponseWriter, results []media.Recommendation) {
	if results == nil {
		results = []media.Recommendation{}
	}
	writeJSON(s.logger, w, http.StatusOK, RecommendationsResponse{Results: results})
}

func (s *Server) handleCatalogStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(s.logger, w, http.StatusOK, s.svc.Catalog.KeyStatus())
}

func (s *Server) handleHomeFeeds(w http.ResponseWriter, r *http.Request) {
	writeJSON(s.logger, w, http.StatusOK, s.svc.Catalog.HomeFeeds(r.Context()))
}

func (s *Server) handleCatalogGenres(w http.ResponseWriter, r *http.Request) {
	mt, ok := s.pathMediaType(w, r)
	if !ok {
		return
	}
	genres := s.svc.Catalog.MovieGenres(r.Context())
	if mt == media.TV {
		genres = s.svc.Catalog.TVGenres(r.Context())
	}
	if genres == nil {
		genres = []media.Genre{}
	}
	writeJSON(s.logger, w, http.StatusOK, genres)
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	mt, ok := s.pathMediaType(w, r)
	if !ok {
		return
	}
	s.writeResults(w, s.svc.Catalog.Trending(r.Context(), mt))
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	results, err := s.svc.Catalog.Category(r.Context(), chi.URLParam(r, "name"))
	if errors.Is(err, catalog.ErrUnknownFeed) {
		writeError(s.logger, w, http.StatusNotFound, err.Error())
		return
	}
	s.writeResults(w, results)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.writeResults(w, s.svc.Catalog.Search(r.Context(), r.URL.Query().Get("q")))
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	months, _ := strconv.Atoi(r.URL.Query().Get("months"))
	s.writeResults(w, s.svc.Catalog.Upcoming(r.Context(), months))
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	mt, ok := s.pathMediaType(w, r)
	if !ok {
		return
	}
	details := s.svc.Catalog.Details(r.Context(), mt, chi.URLParam(r, "id"))
	if details == nil {
		writeError(s.logger, w, http.StatusNotFound, "title not found")
		return
	}
	writeJSON(s.logger, w, http.StatusOK, details)
}

func (s *Server) handleCredits(w http.ResponseWriter, r *http.Request) {
	mt, ok := s.pathMediaType(w, r)
	if !ok {
		return
	}
	writeJSON(s.logger, w, http.StatusOK, s.svc.Catalog.Credits(r.Context(), mt, chi.URLParam(r, "id")))
}

func (s *Server) handleImages(w http.ResponseWriter, r *http.Request) {
	mt, ok := s.pathMediaType(w, r)
	if !ok {
		return
	}
	gallery := s.svc.Catalog.Images(r.Context(), mt, chi.URLParam(r, "id"))
	if gallery == nil {
		writeError(s.logger, w, http.StatusNotFound, "images not found")
		return
	}
	writeJSON(s.logger, w, http.StatusOK, gallery)
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	mt, ok := s.pathMediaType(w, r)
	if !ok {
		return
	}
	region := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("region")))
	availability := s.svc.Catalog.WatchProviders(r.Context(), mt, chi.URLParam(r, "id"), region)
	if availability == nil {
		writeError(s.logger, w, http.StatusNotFound, "no providers for region")
		return
	}
	writeJSON(s.logger, w, http.StatusOK, availability)
}

func (s *Server) tvOnly(w http.ResponseWriter, r *http.Request) bool {
	mt, ok := s.pathMediaType(w, r)
	if !ok {
		return false
	}
	if mt != media.TV {
		writeError(s.logger, w, http.StatusBadRequest, "seasons are only available for tv")
		return false
	}
	return true
}

func (s *Server) handleSeasons(w http.ResponseWriter, r *http.Request) {
	if !s.tvOnly(w, r) {
		return
	}
	writeJSON(s.logger, w, http.StatusOK, s.svc.Catalog.Seasons(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) handleSeasonEpisodes(w http.ResponseWriter, r *http.Request) {
	if !s.tvOnly(w, r) {
		return
	}
	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil || season < 0 {
		writeError(s.logger, w, http.StatusBadRequest, "season must be a non-negative integer")
		return
	}
	writeJSON(s.logger, w, http.StatusOK, s.svc.Catalog.SeasonEpisodes(r.Context(), chi.URLParam(r, "id"), season))
}
