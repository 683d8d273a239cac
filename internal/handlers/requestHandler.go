package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/avashisht/paperbase/internal/adapter"
	"github.com/avashisht/paperbase/internal/adapter/utils"
	"github.com/avashisht/paperbase/internal/api"
	"github.com/avashisht/paperbase/internal/config"
	"github.com/avashisht/paperbase/internal/domain/jobModel"
	"github.com/avashisht/paperbase/pkg/logger_i"
)

var logRH *logger_i.Logger

// newJobData decouples the HTTP layer from the job model; handlers fill it
// and pushToJobChannel maps it onto a queued Job.
type newJobData struct {
	id             string
	traceId        string
	jobType        jobModel.JobType
	question       string
	documentName   string
	documentSource string
	webURLs        []string
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// QueryHandler accepts a question, queues an answering job, and returns the
// job id to poll.
func QueryHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		logRH.Warn("Invalid Context by request ", request.RemoteAddr)
		return
	}

	var requestData api.QueryRequest
	defer closeBody(request.Body)
	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || requestData.Question == "" {
		logRH.Warn("Bad Query Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "question is required")
		return
	}

	acceptJob(w, request, newJobData{
		jobType:  jobModel.JobTypeQuery,
		question: requestData.Question,
	})
}

// GetStatusHandler retrieves the current state of a job by id. Batch
// ingestion jobs also carry their per-source reports.
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	traceId := r.Context().Value(config.TRACE_ID_KEY).(string)
	result, isFound := validateId(idString, traceId)

	logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}

	var reports []jobModel.SourceReport
	if result.JobType == jobModel.JobTypeIngestWeb {
		reports = GetJobReports(idString, traceId)
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result, reports))
}

// PostIngestDocumentHandler receives a PDF or office document via
// multipart/form-data, spools it to a temp directory, and queues ingestion.
func PostIngestDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
		return
	}

	const maxUploadSize = 32 << 20 //32mb
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	docName := r.FormValue("document_name")
	if docName == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "document_name is required")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, docName, "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
	tempFilePath := filepath.Join(targetDir, filename)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, docName, "Storage error")
		return
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, docName, "Write error")
		return
	}

	acceptJob(w, r, newJobData{
		jobType:        jobModel.JobTypeIngestDoc,
		documentName:   docName,
		documentSource: tempFilePath,
	})
}

// PostIngestWebHandler queues a batch web ingestion job for a list of URLs.
func PostIngestWebHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.IngestWebRequest
	defer closeBody(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || len(requestData.URLs) == 0 {
		logRH.Warn("Bad Web Ingest Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "urls is required")
		return
	}

	for _, raw := range requestData.URLs {
		parsed, err := url.Parse(raw)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			WriteErrorResponse(w, http.StatusBadRequest, "", "invalid url: "+raw)
			return
		}
	}

	acceptJob(w, r, newJobData{
		jobType: jobModel.JobTypeIngestWeb,
		webURLs: requestData.URLs,
	})
}
