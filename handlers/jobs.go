package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/semantic"
	"github.com/talentmatch/backend/storage"
)

// JobHandler handles job description requests
type JobHandler struct {
	store           *storage.FirestoreClient
	semanticService semantic.Service
}

// NewJobHandler creates a new job handler
func NewJobHandler(store *storage.FirestoreClient, semanticService semantic.Service) *JobHandler {
	return &JobHandler{
		store:           store,
		semanticService: semanticService,
	}
}

// CreateJob creates a job description
// @Summary Create job
// @Description Create a job description. An embedding is generated from the combined text when the semantic service is reachable.
// @Tags Jobs
// @Accept json
// @Produce json
// @Param request body models.CreateJobRequest true "Job data"
// @Success 201 {object} models.JobDescription "Created job"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 500 {object} models.ErrorResponse "Creation failed"
// @Security BearerAuth
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req models.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	job := &models.JobDescription{
		Title:           req.Title,
		Company:         req.Company,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Skills:          req.Skills,
		ExperienceLevel: models.NormalizeExperienceLevel(req.ExperienceLevel),
	}

	h.embedJob(c, job)

	if err := h.store.CreateJob(c.Request.Context(), job); err != nil {
		log.Printf("[JobHandler] CreateJob error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to create job",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, job)
}

// GetJob returns one job description
// @Summary Get job
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} models.JobDescription "Job description"
// @Failure 404 {object} models.ErrorResponse "Job not found"
// @Failure 500 {object} models.ErrorResponse "Lookup failed"
// @Router /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	id := c.Param("id")

	job, err := h.store.GetJob(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Job not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		log.Printf("[JobHandler] GetJob error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to load job",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// UpdateJob updates job content and refreshes the job embedding
// @Summary Update job
// @Description Update job content fields. Title and company are immutable. The embedding is regenerated from the updated text.
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body models.UpdateJobRequest true "Job content updates"
// @Success 200 {object} models.JobDescription "Updated job"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 404 {object} models.ErrorResponse "Job not found"
// @Failure 500 {object} models.ErrorResponse "Update failed"
// @Security BearerAuth
// @Router /jobs/{id} [put]
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	job, err := h.store.GetJob(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Job not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		log.Printf("[JobHandler] UpdateJob load error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to load job",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	updates := map[string]interface{}{}
	if req.Description != "" {
		job.Description = req.Description
		updates["description"] = req.Description
	}
	if req.Requirements != "" {
		job.Requirements = req.Requirements
		updates["requirements"] = req.Requirements
	}
	if req.Skills != nil {
		job.Skills = req.Skills
		updates["skills"] = req.Skills
	}
	if req.ExperienceLevel != "" {
		job.ExperienceLevel = models.NormalizeExperienceLevel(req.ExperienceLevel)
		updates["experienceLevel"] = job.ExperienceLevel
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, job)
		return
	}

	// Content changed, so the stored embedding is stale
	h.embedJob(c, job)
	updates["embedding"] = job.Embedding

	if err := h.store.UpdateJob(c.Request.Context(), id, updates); err != nil {
		log.Printf("[JobHandler] UpdateJob error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to update job",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) embedJob(c *gin.Context, job *models.JobDescription) {
	embedding, err := h.semanticService.GenerateEmbedding(c.Request.Context(), semantic.KindJob, job.CombinedText())
	if err != nil {
		log.Printf("[JobHandler] Embedding generation failed for %q: %v", job.Title, err)
		return
	}
	job.Embedding = embedding
}
