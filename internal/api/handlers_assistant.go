package api

import (
	"errors"
	"net/http"
	"strings"

	"bingeboard/internal/feedback"
	"bingeboard/internal/logging"
	"bingeboard/internal/profile"
	"bingeboard/internal/validation"
	"bingeboard/internal/youtube"
)

func (s *Server) handleAssistantCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if !decodeBody(s.logger, w, r, maxBodyBytes, &req) {
		return
	}
	outcome, err := s.svc.Commander.Execute(r.Context(), req.Command)
	if err != nil {
		s.listsFailed(w, r, "assistant_command", err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, outcome)
}

func (s *Server) handleCurate(w http.ResponseWriter, r *http.Request) {
	var req curateRequest
	if !decodeBody(s.logger, w, r, maxBodyBytes, &req) {
		return
	}
	writeJSON(s.logger, w, http.StatusOK, map[string]any{
		"recommendations": s.svc.Curator.CurateTrending(r.Context(), req.Category),
	})
}

func (s *Server) handleTrailer(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(s.logger, w, http.StatusBadRequest, "q is required")
		return
	}
	id, ok := s.svc.Trailers.FindTrailer(r.Context(), query)
	if !ok {
		writeJSON(s.logger, w, http.StatusOK, TrailerResponse{Found: false})
		return
	}
	writeJSON(s.logger, w, http.StatusOK, TrailerResponse{
		Found:   true,
		VideoID: id,
		URL:     youtube.WatchURL(id),
	})
}

func (s *Server) profileFailed(w http.ResponseWriter, r *http.Request, err error) {
	logging.ErrorWithContext(logging.WithContext(r.Context(), s.logger), "profile operation failed", "profile_store_failed",
		logging.Error(err),
		logging.String(logging.FieldImpact, "profile not updated"),
	)
	writeError(s.logger, w, http.StatusInternalServerError, "profile storage unavailable")
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Profile.Get(r.Context())
	if err != nil {
		s.profileFailed(w, r, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, p)
}

// handlePutProfile applies the supplied fields. Cover changes are applied in
// order clear, preset, custom URL so the last one wins.
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeBody(s.logger, w, r, maxBodyBytes, &req) {
		return
	}
	ctx := r.Context()
	if req.Bio != nil {
		if err := s.svc.Profile.SetBio(ctx, *req.Bio); err != nil {
			s.profileFailed(w, r, err)
			return
		}
	}
	if req.ClearCover {
		if err := s.svc.Profile.ClearCoverArt(ctx); err != nil {
			s.profileFailed(w, r, err)
			return
		}
	}
	if req.PresetCoverKey != nil {
		if err := s.svc.Profile.SetPresetCoverKey(ctx, *req.PresetCoverKey); err != nil {
			if errors.Is(err, profile.ErrUnknownPreset) {
				writeError(s.logger, w, http.StatusBadRequest, err.Error())
				return
			}
			s.profileFailed(w, r, err)
			return
		}
	}
	if req.CoverPhotoURL != nil {
		if err := s.svc.Profile.SetCoverPhotoURL(ctx, *req.CoverPhotoURL); err != nil {
			s.profileFailed(w, r, err)
			return
		}
	}
	s.handleGetProfile(w, r)
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(s.logger, w, http.StatusOK, profile.Presets())
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedback.Submission
	if !decodeBody(s.logger, w, r, maxBodyBytes, &req) {
		return
	}
	fb, err := s.svc.Feedback.Submit(r.Context(), req)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.Is(err, feedback.ErrEmpty):
			writeError(s.logger, w, http.StatusBadRequest, err.Error())
		case errors.As(err, &verrs):
			writeError(s.logger, w, http.StatusBadRequest, err.Error())
		default:
			writeError(s.logger, w, http.StatusInternalServerError, "feedback could not be saved")
		}
		return
	}
	writeJSON(s.logger, w, http.StatusCreated, fb)
}
