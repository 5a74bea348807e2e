package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talentmatch/backend/consolidate"
	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/semantic"
	"github.com/talentmatch/backend/storage"
)

// CandidateHandler handles candidate profile requests
type CandidateHandler struct {
	store           *storage.FirestoreClient
	resolver        *consolidate.Resolver
	semanticService semantic.Service
}

// NewCandidateHandler creates a new candidate handler
func NewCandidateHandler(store *storage.FirestoreClient, resolver *consolidate.Resolver, semanticService semantic.Service) *CandidateHandler {
	return &CandidateHandler{
		store:           store,
		resolver:        resolver,
		semanticService: semanticService,
	}
}

// CreateCandidate creates a candidate profile from manual or API input
// @Summary Create candidate
// @Description Create a candidate profile. Email must be unique among active profiles.
// @Tags Candidates
// @Accept json
// @Produce json
// @Param request body models.CreateCandidateRequest true "Candidate data"
// @Success 201 {object} models.CandidateProfile "Created profile"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 409 {object} models.ErrorResponse "Email already in use"
// @Failure 500 {object} models.ErrorResponse "Creation failed"
// @Security BearerAuth
// @Router /candidates [post]
func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	var req models.CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	profile := &models.CandidateProfile{
		Email:      req.Email,
		Phone:      req.Phone,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Skills:     req.Skills,
		Experience: req.Experience,
		Education:  req.Education,
		ResumeText: req.ResumeText,
		Source:     models.SourceManual,
	}

	if req.ResumeText != "" {
		embedding, err := h.semanticService.GenerateEmbedding(c.Request.Context(), semantic.KindProfile, req.ResumeText)
		if err != nil {
			// Embeddings are recoverable; the profile just loses its semantic dimension
			log.Printf("[CandidateHandler] Embedding generation failed for %s: %v", req.Email, err)
		} else {
			profile.Embedding = embedding
		}
	}

	if err := h.store.CreateCandidate(c.Request.Context(), profile); err != nil {
		if errors.Is(err, storage.ErrEmailConflict) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Error: "A profile with this email already exists",
				Code:  http.StatusConflict,
			})
			return
		}
		log.Printf("[CandidateHandler] CreateCandidate error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to create candidate",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// GetCandidate returns the consolidated view of one candidate
// @Summary Get candidate
// @Description Get a candidate profile consolidated with its latest import data
// @Tags Candidates
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} models.ConsolidatedProfile "Consolidated profile"
// @Failure 404 {object} models.ErrorResponse "Candidate not found"
// @Failure 500 {object} models.ErrorResponse "Lookup failed"
// @Router /candidates/{id} [get]
func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	id := c.Param("id")

	profile, err := h.store.GetCandidate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Candidate not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		log.Printf("[CandidateHandler] GetCandidate error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to load candidate",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	consolidated, err := h.resolver.Resolve(c.Request.Context(), profile)
	if err != nil {
		log.Printf("[CandidateHandler] Consolidation error for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to consolidate candidate",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, consolidated)
}

// ListCandidates lists consolidated profiles, including import-only candidates
// @Summary List candidates
// @Description List active candidates as consolidated profiles. Each entry is tagged with its variant: profile_only, merged_with_excel or excel_only.
// @Tags Candidates
// @Produce json
// @Param limit query int false "Maximum number of canonical profiles" default(100)
// @Success 200 {array} models.ConsolidatedProfile "Consolidated profiles"
// @Failure 500 {object} models.ErrorResponse "Listing failed"
// @Router /candidates [get]
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	profiles, err := h.store.ListActiveCandidates(c.Request.Context(), limit)
	if err != nil {
		log.Printf("[CandidateHandler] ListCandidates error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to list candidates",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	consolidated := make([]*models.ConsolidatedProfile, 0, len(profiles))
	for _, profile := range profiles {
		cp, err := h.resolver.Resolve(c.Request.Context(), profile)
		if err != nil {
			log.Printf("[CandidateHandler] Skipping %s, consolidation failed: %v", profile.ID, err)
			continue
		}
		consolidated = append(consolidated, cp)
	}

	standalone, err := h.resolver.ListStandalone(c.Request.Context())
	if err != nil {
		log.Printf("[CandidateHandler] Standalone listing failed: %v", err)
	} else {
		consolidated = append(consolidated, standalone...)
	}

	c.JSON(http.StatusOK, consolidated)
}

// UpdateCandidate updates profile fields and refreshes the embedding
// @Summary Update candidate
// @Description Update candidate profile fields. Email is immutable. New resume text regenerates the profile embedding.
// @Tags Candidates
// @Accept json
// @Produce json
// @Param id path string true "Candidate ID"
// @Param request body models.UpdateCandidateRequest true "Profile updates"
// @Success 200 {object} models.CandidateProfile "Updated profile"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 404 {object} models.ErrorResponse "Candidate not found"
// @Failure 500 {object} models.ErrorResponse "Update failed"
// @Security BearerAuth
// @Router /candidates/{id} [put]
func (h *CandidateHandler) UpdateCandidate(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	profile, err := h.store.GetCandidate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Candidate not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		log.Printf("[CandidateHandler] UpdateCandidate load error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to load candidate",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	updates := map[string]interface{}{}
	if req.Phone != "" {
		profile.Phone = req.Phone
		updates["phone"] = req.Phone
	}
	if req.FirstName != "" {
		profile.FirstName = req.FirstName
		updates["firstName"] = req.FirstName
	}
	if req.LastName != "" {
		profile.LastName = req.LastName
		updates["lastName"] = req.LastName
	}
	if req.Skills != nil {
		profile.Skills = req.Skills
		updates["skills"] = req.Skills
	}
	if req.Experience != nil {
		profile.Experience = req.Experience
		updates["experience"] = req.Experience
	}
	if req.Education != nil {
		profile.Education = req.Education
		updates["education"] = req.Education
	}
	if req.ResumeText != "" {
		profile.ResumeText = req.ResumeText
		updates["resumeText"] = req.ResumeText

		embedding, err := h.semanticService.GenerateEmbedding(c.Request.Context(), semantic.KindProfile, req.ResumeText)
		if err != nil {
			log.Printf("[CandidateHandler] Embedding refresh failed for %s: %v", id, err)
		} else {
			profile.Embedding = embedding
			updates["embedding"] = embedding
		}
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, profile)
		return
	}

	if err := h.store.UpdateCandidate(c.Request.Context(), id, updates); err != nil {
		log.Printf("[CandidateHandler] UpdateCandidate error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to update candidate",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeactivateCandidate soft-deletes a candidate profile
// @Summary Deactivate candidate
// @Description Mark a candidate profile inactive. Import records referencing it are kept.
// @Tags Candidates
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} models.ErrorResponse "Candidate not found"
// @Failure 500 {object} models.ErrorResponse "Deactivation failed"
// @Security BearerAuth
// @Router /candidates/{id} [delete]
func (h *CandidateHandler) DeactivateCandidate(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.DeactivateCandidate(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Candidate not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		log.Printf("[CandidateHandler] DeactivateCandidate error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to deactivate candidate",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
