package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/avashisht/paperbase/internal/adapter"
	"github.com/avashisht/paperbase/internal/adapter/utils"
	"github.com/avashisht/paperbase/internal/config"
	"github.com/avashisht/paperbase/internal/domain/jobModel"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Too late for a clean status code, just log it
		logRH.Error("Error encoding response", "error", err)
	}
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		logRH.Error("Couldn't close the request body", "error", err)
	}
}

func validateId(id string, traceId string) (result jobModel.Job, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Job ID")
		return jobModel.Job{}, false
	}
	return GetJobStatus(id, traceId)
}

func validateContext(ctx context.Context) bool {
	if traceId, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		logRH.With("traceId:", traceId)
	}
	if ctx.Err() != nil {
		logRH.Warn("context error", "error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

func getTargetDirectory() (string, string) {
	root, err := os.Getwd()
	if err != nil {
		return "", "Storage Error"
	}

	targetDir := filepath.Join(root, "temporary_data")
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", "Storage Error"
	}
	return targetDir, ""
}

// acceptJob queues the job and answers 202 with its status URL.
func acceptJob(w http.ResponseWriter, r *http.Request, data newJobData) {
	data.id = utils.GetNewUUID()
	data.traceId = r.Context().Value(config.TRACE_ID_KEY).(string)
	CreateNewJob(data)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(data.id))
}
