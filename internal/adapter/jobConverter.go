package adapter

import (
	"fmt"
	"time"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/api"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:        string(job.Status),
		Report:        job.JobPayload.Report,
		ReviewedFiles: toReviewedFiles(job),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func toReviewedFiles(job jobModel.Job) []api.ReviewedFile {
	if len(job.JobPayload.ReviewedFiles) == 0 {
		return nil
	}
	files := make([]api.ReviewedFile, 0, len(job.JobPayload.ReviewedFiles))
	for _, f := range job.JobPayload.ReviewedFiles {
		files = append(files, api.ReviewedFile{
			Filename: f.Filename,
			URL:      fmt.Sprintf("review/%s/files/%s", job.Id, f.Filename),
		})
	}
	return files
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
