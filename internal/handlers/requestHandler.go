package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/adapter"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/adapter/utils"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/api"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/config"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/checklist"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/jobModel"
	"github.com/2CentsCapitalHR/adgm-review-api/pkg/logger_i"
)

var logRH *logger_i.Logger

type newJobData struct {
	id             string
	traceId        string
	process        string
	referenceFiles []jobModel.StoredFile
	candidateFiles []jobModel.StoredFile
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// PostReviewHandler godoc
// @Summary      Start a compliance review run
// @Description  Accepts reference material and candidate .docx files via multipart/form-data, queues the review and returns a job ID to track status.
// @Tags         Review
// @Accept       multipart/form-data
// @Produce      json
// @Param        process    formData  string  false  "Checklist process name (defaults to Company Incorporation)"
// @Param        reference  formData  file    true   "Reference material (pdf, txt, rtf, odt); repeatable"
// @Param        document   formData  file    true   "Candidate .docx to review; repeatable"
// @Success      202  {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400  {object}  api.JobResponse      "Missing reference or candidate uploads"
// @Router       /review [post]
func PostReviewHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	references := r.MultipartForm.File["reference"]
	candidates := r.MultipartForm.File["document"]
	if len(references) == 0 || len(candidates) == 0 {
		//precondition: nothing runs with half an upload
		WriteErrorResponse(w, http.StatusBadRequest, "", "Both reference and document uploads are required")
		return
	}

	process := r.FormValue("process")
	if process == "" {
		process = checklist.DefaultProcess
	}
	if _, known := checklist.Required(process); !known {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Unknown process: "+process)
		return
	}

	jobId := utils.GetNewUUID()
	targetDir, errString := getTargetDirectory(jobId)
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
		return
	}

	referenceFiles, err := persistUploads(references, targetDir)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, jobId, "Storage error")
		return
	}
	candidateFiles, err := persistUploads(candidates, targetDir)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, jobId, "Storage error")
		return
	}

	newJob := newJobData{
		id:             jobId,
		traceId:        r.Context().Value(config.TRACE_ID_KEY).(string),
		process:        process,
		referenceFiles: referenceFiles,
		candidateFiles: candidateFiles,
	}
	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}

// GetStatusHandler godoc
// @Summary      Get review job status
// @Description  Retrieves the current status of a review run; completed runs embed the aggregate report and the annotated file list.
// @Tags         Job Status
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse  "Current job status"
// @Failure      404  {object}  api.JobResponse  "Job not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

	logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

// DownloadReviewedHandler godoc
// @Summary      Download an annotated document
// @Description  Serves the annotated copy of one reviewed .docx from a completed run.
// @Tags         Review
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param        id        path  string  true  "Job ID"
// @Param        filename  path  string  true  "Annotated filename as listed in the report"
// @Success      200  {file}    file
// @Failure      404  {object}  api.JobResponse  "Job or file not found"
// @Router       /review/{id}/files/{filename} [get]
func DownloadReviewedHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	filename := utils.GetChiURLParam(r, "filename")
	result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}

	for _, f := range result.JobPayload.ReviewedFiles {
		if f.Filename == filename {
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Filename))
			http.ServeFile(w, r, f.Path)
			return
		}
	}
	WriteErrorResponse(w, http.StatusNotFound, idString, "Reviewed file not found")
}

// RecentRunsHandler godoc
// @Summary      List recent review runs
// @Tags         Review
// @Produce      json
// @Success      200  {object}  api.RecentRunsResponse
// @Router       /runs [get]
func RecentRunsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	runs, err := GetRecentRuns(r.Context().Value(config.TRACE_ID_KEY).(string), 20)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Could not list runs")
		return
	}
	writeJsonResponse(w, http.StatusOK, api.RecentRunsResponse{Runs: runs})
}

func persistUploads(uploads []*multipart.FileHeader, targetDir string) ([]jobModel.StoredFile, error) {
	var stored []jobModel.StoredFile
	for _, header := range uploads {
		fileReader, err := header.Open()
		if err != nil {
			return nil, err
		}

		filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(header.Filename))
		tempFilePath := filepath.Join(targetDir, filename)
		destinationFileWriter, err := os.Create(tempFilePath)
		if err != nil {
			fileReader.Close()
			return nil, err
		}

		_, err = io.Copy(destinationFileWriter, fileReader)
		fileReader.Close()
		destinationFileWriter.Close()
		if err != nil {
			return nil, err
		}

		stored = append(stored, jobModel.StoredFile{
			Name: filepath.Base(header.Filename),
			Path: tempFilePath,
		})
	}
	return stored, nil
}
