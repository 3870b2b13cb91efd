package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"bingeboard/internal/fileutil"
	"bingeboard/internal/logging"
	"bingeboard/internal/validation"
)

const maxBodyBytes = 1 << 20

// maxImportBodyBytes allows full list exports to be posted back.
const maxImportBodyBytes = fileutil.MaxImportSize

func writeJSON(logger *slog.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", logging.Error(err))
	}
}

func writeError(logger *slog.Logger, w http.ResponseWriter, status int, message string) {
	writeJSON(logger, w, status, ErrorResponse{Error: message})
}

// decodeBody reads a size-limited JSON body into dst and validates it.
// Failures are written to w and reported as false.
func decodeBody(logger *slog.Logger, w http.ResponseWriter, r *http.Request, limit int64, dst any) bool {
	data, err := fileutil.ReadAllLimited(r.Body, limit)
	if err != nil {
		if errors.Is(err, fileutil.ErrTooLarge) {
			writeError(logger, w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(logger, w, http.StatusBadRequest, "could not read request body")
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		writeError(logger, w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return false
	}
	if err := validation.Struct(dst); err != nil {
		resp := ErrorResponse{Error: "validation failed"}
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				resp.Fields = append(resp.Fields, fe.Error())
			}
		} else {
			resp.Fields = []string{err.Error()}
		}
		writeJSON(logger, w, http.StatusBadRequest, resp)
		return false
	}
	return true
}
