// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/coordination-detector/internal/coordination"
	"github.com/tomtom215/coordination-detector/internal/coordination/ingest"
	"github.com/tomtom215/coordination-detector/internal/coordination/render"
	"github.com/tomtom215/coordination-detector/internal/coordination/store"
	"github.com/tomtom215/coordination-detector/internal/logging"
	"github.com/tomtom215/coordination-detector/internal/metrics"
)

// ErrSearchIndexJobUnsupported is returned for a dequeued job whose
// descriptor was submitted as a search-index job: running one requires a
// caller-supplied ingest.Scanner (an Elasticsearch cursor or equivalent),
// which has no concrete implementation in this deployment.
var ErrSearchIndexJobUnsupported = errors.New("orchestrator: search-index jobs require a registered scanner")

// Worker drains the job queue and runs the coordination pipeline for
// each tabular job, persisting results back to the store and pushing
// status updates to the hub.
type Worker struct {
	Store   store.Store
	Queue   *Queue
	Hub     *Hub
	Options coordination.Options
}

// Run consumes jobs until ctx is canceled.
func (w *Worker) Run(ctx context.Context) error {
	return w.Queue.Consume(ctx, w.processJob)
}

func (w *Worker) processJob(ctx context.Context, jobID string) error {
	started := time.Now()
	defer metrics.JobQueueDepth.Dec()

	job, err := w.loadJob(ctx, jobID)
	if err != nil {
		metrics.RecordJobOutcome(time.Since(started), "load_job")
		return err
	}

	w.updateStatus(ctx, job, StatusRunning, "")

	edges, err := w.runPipeline(ctx, job)
	if err != nil {
		w.updateStatus(ctx, job, StatusFailed, err.Error())
		metrics.RecordJobOutcome(time.Since(started), "pipeline")
		return err
	}

	if err := w.persistResults(ctx, job, edges); err != nil {
		w.updateStatus(ctx, job, StatusFailed, err.Error())
		metrics.RecordJobOutcome(time.Since(started), "persist")
		return err
	}

	w.updateStatus(ctx, job, StatusFinished, "")
	metrics.RecordJobOutcome(time.Since(started), "")
	return nil
}

func (w *Worker) loadJob(ctx context.Context, jobID string) (Job, error) {
	raw, err := w.Store.Get(ctx, keyJob+jobID)
	if err != nil {
		return Job{}, fmt.Errorf("load job %s: %w", jobID, err)
	}
	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return Job{}, fmt.Errorf("decode job %s: %w", jobID, err)
	}
	return job, nil
}

func (w *Worker) runPipeline(ctx context.Context, job Job) ([]coordination.FinalEdge, error) {
	postsRaw, err := w.Store.Get(ctx, keyInput+job.ID)
	if err != nil {
		return nil, ErrSearchIndexJobUnsupported
	}

	tmp, err := os.CreateTemp("", "coordination-input-*.csv")
	if err != nil {
		return nil, fmt.Errorf("stage input file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(postsRaw); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write input file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close input file: %w", err)
	}

	exclusion := coordination.ExclusionSet{}
	if excludeRaw, err := w.Store.Get(ctx, keyExclud+job.ID); err == nil {
		exclusion = ingest.ParseExclusionList(string(excludeRaw))
	}

	source := ingest.TabularSource{Path: tmp.Name()}
	posts, err := drainPosts(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("ingest posts: %w", err)
	}

	opts := w.Options
	opts.Speed = coordination.Speed(job.Speed)

	edges, _, err := coordination.Run(posts, exclusion, opts)
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}
	return edges, nil
}

func drainPosts(ctx context.Context, source ingest.Source) ([]coordination.Post, error) {
	var posts []coordination.Post
	for result := range source.Posts(ctx) {
		if result.Err != nil {
			return nil, result.Err
		}
		posts = append(posts, result.Post)
	}
	return posts, nil
}

func (w *Worker) persistResults(ctx context.Context, job Job, edges []coordination.FinalEdge) error {
	csvBytes, err := encodeEdgeTable(edges)
	if err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	if err := w.Store.Put(ctx, keyResult+job.ID, csvBytes, jobTTL); err != nil {
		return fmt.Errorf("persist result: %w", err)
	}

	communities := render.GreedyModularity(edges, render.DefaultCommunityOptions())
	graph := render.BuildGraph(edges, communities)
	graphBytes, err := graph.ToJSON()
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	if err := w.Store.Put(ctx, keyGraph+job.ID, graphBytes, jobTTL); err != nil {
		return fmt.Errorf("persist graph: %w", err)
	}
	return nil
}

func (w *Worker) updateStatus(ctx context.Context, job Job, status Status, errMsg string) {
	job.Status = status
	job.Error = errMsg
	job.UpdatedAt = time.Now()

	raw, err := json.Marshal(job)
	if err != nil {
		logging.Error().Err(err).Str("job_id", job.ID).Msg("marshal job status")
		return
	}
	if err := w.Store.Put(ctx, keyJob+job.ID, raw, jobTTL); err != nil {
		logging.Error().Err(err).Str("job_id", job.ID).Msg("persist job status")
	}

	w.Hub.Broadcast(StatusEvent{JobID: job.ID, Status: status, Error: errMsg})
}
