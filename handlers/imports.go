package handlers

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/reconcile"
	"github.com/talentmatch/backend/storage"
)

// maxSpreadsheetBytes caps uploaded spreadsheet size at 20 MB
const maxSpreadsheetBytes = 20 << 20

// ImportHandler handles spreadsheet import requests
type ImportHandler struct {
	pipeline *reconcile.Pipeline
	archive  *storage.CloudStorageClient
}

// NewImportHandler creates a new import handler. archive may be nil when
// no bucket is configured; uploads are then processed without archival.
func NewImportHandler(pipeline *reconcile.Pipeline, archive *storage.CloudStorageClient) *ImportHandler {
	return &ImportHandler{
		pipeline: pipeline,
		archive:  archive,
	}
}

// UploadSpreadsheet imports a candidate spreadsheet
// @Summary Import spreadsheet
// @Description Upload a .xlsx or .csv candidate sheet. Rows are validated, deduplicated against existing profiles and recorded as import records. The batch never aborts on a bad row.
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet file (.xlsx or .csv)"
// @Success 200 {object} models.ImportSummary "Import summary"
// @Failure 400 {object} models.ErrorResponse "Invalid upload"
// @Failure 422 {object} models.ValidateStructureResponse "Sheet is missing identity columns"
// @Failure 500 {object} models.ErrorResponse "Import failed"
// @Security BearerAuth
// @Router /imports [post]
func (h *ImportHandler) UploadSpreadsheet(c *gin.Context) {
	table, filename, content, ok := h.readSpreadsheet(c)
	if !ok {
		return
	}

	if valid, missing := reconcile.ValidateStructure(table.Headers); !valid {
		c.JSON(http.StatusUnprocessableEntity, models.ValidateStructureResponse{
			Valid:               false,
			MissingIdentityKind: missing,
		})
		return
	}

	batchID := uuid.NewString()

	if h.archive != nil {
		url, err := h.archive.ArchiveSpreadsheet(c.Request.Context(), batchID, content, filename)
		if err != nil {
			// The archive copy is best effort; the import itself proceeds
			log.Printf("[ImportHandler] Failed to archive %s for batch %s: %v", filename, batchID, err)
		} else {
			log.Printf("[ImportHandler] Archived %s as %s", filename, url)
		}
	}

	summary, err := h.pipeline.ProcessRows(c.Request.Context(), batchID, filename, table.Rows)
	if err != nil {
		if errors.Is(err, reconcile.ErrNoDataRows) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Spreadsheet contains no data rows",
				Code:  http.StatusBadRequest,
			})
			return
		}
		log.Printf("[ImportHandler] Import failed for batch %s: %v", batchID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Import failed",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ValidateStructure checks an uploaded sheet without importing it
// @Summary Validate spreadsheet structure
// @Description Parse the header row of an uploaded sheet and report whether it carries the required identity columns (email or phone).
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet file (.xlsx or .csv)"
// @Success 200 {object} models.ValidateStructureResponse "Validation result"
// @Failure 400 {object} models.ErrorResponse "Invalid upload"
// @Router /imports/validate [post]
func (h *ImportHandler) ValidateStructure(c *gin.Context) {
	table, _, _, ok := h.readSpreadsheet(c)
	if !ok {
		return
	}

	valid, missing := reconcile.ValidateStructure(table.Headers)
	resp := models.ValidateStructureResponse{Valid: valid}
	if !valid {
		resp.MissingIdentityKind = missing
	}

	c.JSON(http.StatusOK, resp)
}

// readSpreadsheet reads and parses the uploaded file, writing the error
// response itself when the upload is unusable.
func (h *ImportHandler) readSpreadsheet(c *gin.Context) (*reconcile.Table, string, []byte, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "A spreadsheet file is required",
			Code:  http.StatusBadRequest,
		})
		return nil, "", nil, false
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, io.LimitReader(file, maxSpreadsheetBytes)); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Failed to read uploaded file",
			Code:  http.StatusBadRequest,
		})
		return nil, "", nil, false
	}

	table, err := reconcile.ParseSpreadsheet(header.Filename, buf.Bytes())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Failed to parse spreadsheet",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return nil, "", nil, false
	}

	return table, header.Filename, buf.Bytes(), true
}
