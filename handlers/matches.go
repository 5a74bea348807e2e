package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talentmatch/backend/auth"
	"github.com/talentmatch/backend/config"
	"github.com/talentmatch/backend/matching"
	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/storage"
)

// MatchHandler handles match ranking and review requests
type MatchHandler struct {
	ranker *matching.Ranker
	store  *storage.FirestoreClient
	cfg    *config.Config
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(ranker *matching.Ranker, store *storage.FirestoreClient, cfg *config.Config) *MatchHandler {
	return &MatchHandler{
		ranker: ranker,
		store:  store,
		cfg:    cfg,
	}
}

// RankJob ranks active candidates against a job
// @Summary Rank candidates for a job
// @Description Score the active candidate pool against a job and return matches at or above the minimum score, best first. Candidates that fail to score are skipped and counted.
// @Tags Matches
// @Produce json
// @Param id path string true "Job ID"
// @Param limit query int false "Maximum matches to return" default(20)
// @Param min_score query int false "Minimum overall score" default(40)
// @Success 200 {object} models.RankResponse "Ranked matches"
// @Failure 404 {object} models.ErrorResponse "Job not found"
// @Failure 500 {object} models.ErrorResponse "Ranking failed"
// @Router /jobs/{id}/matches [get]
func (h *MatchHandler) RankJob(c *gin.Context) {
	jobID := c.Param("id")

	limit := h.queryInt(c, "limit", h.cfg.DefaultMatchLimit)
	minScore := h.queryInt(c, "min_score", h.cfg.DefaultMinScore)

	response, err := h.ranker.Rank(c.Request.Context(), jobID, limit, minScore)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Job not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		log.Printf("[MatchHandler] Rank error for job %s: %v", jobID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Ranking failed",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ScoreCandidate scores one candidate against one job
// @Summary Score one candidate
// @Description Score a single candidate profile against a job without ranking the whole pool.
// @Tags Matches
// @Produce json
// @Param id path string true "Job ID"
// @Param profileId path string true "Candidate profile ID"
// @Success 200 {object} models.MatchResult "Match result"
// @Failure 404 {object} models.ErrorResponse "Job or candidate not found"
// @Failure 500 {object} models.ErrorResponse "Scoring failed"
// @Router /jobs/{id}/matches/{profileId} [get]
func (h *MatchHandler) ScoreCandidate(c *gin.Context) {
	jobID := c.Param("id")
	profileID := c.Param("profileId")

	result, err := h.ranker.ScoreOne(c.Request.Context(), jobID, profileID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Job or candidate not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		log.Printf("[MatchHandler] ScoreCandidate error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Scoring failed",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateMatchStatus records a manual review decision on a match
// @Summary Update match status
// @Description Move a match through the review workflow: Active, Reviewed, Shortlisted or Rejected. The reviewer is taken from the bearer token.
// @Tags Matches
// @Accept json
// @Produce json
// @Param id path string true "Match result ID"
// @Param request body models.UpdateMatchStatusRequest true "New status"
// @Success 200 {object} models.MatchResult "Updated match"
// @Failure 400 {object} models.ErrorResponse "Invalid status"
// @Failure 404 {object} models.ErrorResponse "Match not found"
// @Failure 500 {object} models.ErrorResponse "Update failed"
// @Security BearerAuth
// @Router /matches/{id}/status [put]
func (h *MatchHandler) UpdateMatchStatus(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateMatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	if !models.ValidMatchStatus(req.Status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid match status",
			Code:    http.StatusBadRequest,
			Details: string(req.Status),
		})
		return
	}

	reviewerID := ""
	if claims := auth.GetAuthClaims(c); claims != nil {
		reviewerID = claims.RecruiterID
	}

	if err := h.store.UpdateMatchStatus(c.Request.Context(), id, req.Status, reviewerID, req.Notes); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Match not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		log.Printf("[MatchHandler] UpdateMatchStatus error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to update match",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	result, err := h.store.GetMatchResult(c.Request.Context(), id)
	if err != nil {
		log.Printf("[MatchHandler] Reload after status update failed: %v", err)
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *MatchHandler) queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
