package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tunetag/internal/metadata"
	"tunetag/internal/pipeline"
	"tunetag/pkg/utils"
)

type TagRequest struct {
	URL    string `json:"url"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	Song   string `json:"song,omitempty"`
}

type TrackResponse struct {
	Name        string `json:"name"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	ReleaseDate string `json:"release_date,omitempty"`
	Provider    string `json:"provider"`
}

type JobResponse struct {
	ID          string          `json:"id"`
	URL         string          `json:"url"`
	Status      JobStatus       `json:"status"`
	Candidates  []TrackResponse `json:"candidates,omitempty"`
	Match       *TrackResponse  `json:"match,omitempty"`
	File        string          `json:"file,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   string          `json:"created_at"`
	StartedAt   *string         `json:"started_at,omitempty"`
	CompletedAt *string         `json:"completed_at,omitempty"`
}

func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.URL == "" {
		http.Error(w, "URL is required", http.StatusBadRequest)
		return
	}

	job := s.jobMgr.CreateJob(req)
	s.logger.Info("Created job %s for URL: %s", job.ID, req.URL)

	go s.processJob(job)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.jobToResponse(job))
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobs := s.jobMgr.ListJobs()
	responses := make([]*JobResponse, len(jobs))
	for i, job := range jobs {
		responses[i] = s.jobToResponse(job)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

func (s *Server) handleJobAction(w http.ResponseWriter, r *http.Request) {
	// Extract job ID from path: /api/jobs/{id} or /api/jobs/{id}/cancel
	path := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "Job ID required", http.StatusBadRequest)
		return
	}

	jobID := parts[0]

	// Handle GET /api/jobs/{id}
	if r.Method == http.MethodGet && len(parts) == 1 {
		job, err := s.jobMgr.GetJob(jobID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.jobToResponse(job))
		return
	}

	// Handle POST /api/jobs/{id}/cancel
	if r.Method == http.MethodPost && len(parts) == 2 && parts[1] == "cancel" {
		job, err := s.jobMgr.GetJob(jobID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		if job.Cancel != nil {
			job.Cancel()
		}

		s.jobMgr.UpdateJob(jobID, func(j *Job) {
			j.Status = StatusCancelled
		})

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "cancelled"})
		return
	}

	http.Error(w, "Invalid request", http.StatusBadRequest)
}

func (s *Server) processJob(job *Job) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.jobMgr.UpdateJob(job.ID, func(j *Job) {
		j.Cancel = cancel
		j.Status = StatusSearching
	})

	s.logger.Info("Starting job %s", job.ID)

	tempDir, err := utils.CreateTempDir()
	if err != nil {
		s.failJob(job.ID, err)
		return
	}
	defer utils.Cleanup(tempDir)

	opts := pipeline.Options{
		URL:    job.URL,
		Artist: job.Artist,
		Album:  job.Album,
		Song:   job.Song,
		OnRanked: func(res *pipeline.Result) {
			best := res.Best
			s.jobMgr.UpdateJob(job.ID, func(j *Job) {
				j.Status = StatusTagging
				j.Candidates = res.Ranked
				j.Match = &best
			})
		},
	}

	result, err := pipeline.Run(ctx, s.config, s.logger, tempDir, opts)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			s.logger.Info("Job %s cancelled", job.ID)
			return
		}
		s.failJob(job.ID, err)
		return
	}

	s.jobMgr.UpdateJob(job.ID, func(j *Job) {
		j.Status = StatusCompleted
		j.Match = &result.Best
		j.File = result.File
	})

	s.logger.Info("Job %s completed successfully", job.ID)
}

func (s *Server) failJob(id string, err error) {
	s.logger.Error("Job %s failed: %v", id, err)
	s.jobMgr.UpdateJob(id, func(j *Job) {
		j.Status = StatusFailed
		j.Error = err.Error()
	})
}

func (s *Server) jobToResponse(job *Job) *JobResponse {
	resp := &JobResponse{
		ID:        job.ID,
		URL:       job.URL,
		Status:    job.Status,
		File:      job.File,
		Error:     job.Error,
		CreatedAt: job.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	for _, t := range job.Candidates {
		resp.Candidates = append(resp.Candidates, trackToResponse(t))
	}
	if job.Match != nil {
		m := trackToResponse(*job.Match)
		resp.Match = &m
	}

	if job.StartedAt != nil {
		started := job.StartedAt.Format("2006-01-02 15:04:05")
		resp.StartedAt = &started
	}

	if job.CompletedAt != nil {
		completed := job.CompletedAt.Format("2006-01-02 15:04:05")
		resp.CompletedAt = &completed
	}

	return resp
}

func trackToResponse(t metadata.Track) TrackResponse {
	return TrackResponse{
		Name:        t.Name,
		Artist:      t.Artist,
		Album:       t.Album,
		ReleaseDate: t.ReleaseDate,
		Provider:    t.Provider,
	}
}
