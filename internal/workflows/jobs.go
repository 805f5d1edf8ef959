package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/samirrijal/placescout/internal/core/domain"
)

// JobRunner implements ports.SearchJobRunner on Temporal.
type JobRunner struct {
	client             client.Client
	taskQueue          string
	sinks              []string
	failOnPersistError bool
}

// NewJobRunner creates a JobRunner that starts workflows on taskQueue,
// appending to the named sinks.
func NewJobRunner(c client.Client, taskQueue string, sinks []string, failOnPersistError bool) *JobRunner {
	return &JobRunner{client: c, taskQueue: taskQueue, sinks: sinks, failOnPersistError: failOnPersistError}
}

// StartSearch starts a SearchWorkflow and returns its workflow ID.
func (r *JobRunner) StartSearch(ctx context.Context, req domain.SearchRequest) (string, error) {
	opts := client.StartWorkflowOptions{
		ID:        "search-" + uuid.NewString(),
		TaskQueue: r.taskQueue,
	}
	run, err := r.client.ExecuteWorkflow(ctx, opts, SearchWorkflow, SearchInput{
		Request:            req,
		Sinks:              r.sinks,
		FailOnPersistError: r.failOnPersistError,
	})
	if err != nil {
		return "", fmt.Errorf("start search workflow: %w", err)
	}
	return run.GetID(), nil
}

// SearchJob reports the workflow state and, once it finished, its result.
func (r *JobRunner) SearchJob(ctx context.Context, jobID string) (*domain.SearchJob, error) {
	desc, err := r.client.DescribeWorkflowExecution(ctx, jobID, "")
	if err != nil {
		var notFound *serviceerror.NotFound
		if errors.As(err, &notFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("describe search workflow: %w", err)
	}

	job := &domain.SearchJob{ID: jobID}
	switch desc.GetWorkflowExecutionInfo().GetStatus() {
	case enumspb.WORKFLOW_EXECUTION_STATUS_RUNNING:
		job.Status = domain.JobRunning
		return job, nil
	case enumspb.WORKFLOW_EXECUTION_STATUS_COMPLETED:
		var result domain.SearchResult
		if err := r.client.GetWorkflow(ctx, jobID, "").Get(ctx, &result); err != nil {
			return nil, fmt.Errorf("get search workflow result: %w", err)
		}
		job.Status = domain.JobCompleted
		job.Result = &result
		return job, nil
	default:
		job.Status = domain.JobFailed
		if err := r.client.GetWorkflow(ctx, jobID, "").Get(ctx, nil); err != nil {
			job.Error = jobErrorMessage(err)
		}
		return job, nil
	}
}

// jobErrorMessage keeps validation messages and hides everything else.
func jobErrorMessage(err error) string {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() == "validation" {
		return appErr.Message()
	}
	return "Server error"
}
