package resumes

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumind-backend/internal/shared/server/respond"
	"resumind-backend/internal/shared/storage/blob"
	"resumind-backend/internal/shared/util"
)

const maxUploadSize = 20 << 20 // 20MB

// Handler wires HTTP handlers to the pipeline runner and record store.
type Handler struct {
	Runner  *Runner
	Records *RecordStore
	Blob    blob.Store
}

// NewHandler constructs a Handler.
func NewHandler(runner *Runner, records *RecordStore, store blob.Store) *Handler {
	return &Handler{Runner: runner, Records: records, Blob: store}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.analyze)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.GET("/resumes/:id/file", h.file)
	rg.GET("/resumes/:id/image", h.image)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		respond.Error(c, http.StatusBadRequest, "validation_error", "only PDF files are accepted", nil)
		return
	}
	if _, err := util.SanitizeFileName(fileHeader.Filename); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	rec, err := h.Runner.Run(c.Request.Context(), RunInput{
		FileName:       fileHeader.Filename,
		Data:           data,
		CompanyName:    c.PostForm("company-name"),
		JobTitle:       c.PostForm("job-title"),
		JobDescription: c.PostForm("job-description"),
		Progress: func(stage Stage, status string) {
			c.Set("runStage", string(stage))
		},
	})
	if err != nil {
		var re *RunError
		if errors.As(err, &re) {
			respond.Error(c, statusForKind(re.Kind), string(re.Kind), StatusText(re.Stage)+" failed", gin.H{"stage": string(re.Stage)})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
		return
	}

	c.Set("resumeId", rec.ID)
	respond.JSON(c, http.StatusCreated, rec)
}

// statusForKind maps a failure kind to an HTTP status. Bad documents are the
// client's problem; everything else is an upstream dependency failing on our
// behalf.
func statusForKind(kind FailureKind) int {
	switch kind {
	case KindConversionFailed, KindExtractionFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) get(c *gin.Context) {
	rec, err := h.Records.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		return
	}
	respond.JSON(c, http.StatusOK, rec)
}

func (h *Handler) list(c *gin.Context) {
	records, err := h.Records.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}
	respond.JSON(c, http.StatusOK, records)
}

func (h *Handler) file(c *gin.Context) {
	h.stream(c, "application/pdf", func(rec Record) string { return rec.ResumePath })
}

func (h *Handler) image(c *gin.Context) {
	h.stream(c, "image/png", func(rec Record) string { return rec.ImagePath })
}

func (h *Handler) stream(c *gin.Context, contentType string, ref func(Record) string) {
	rec, err := h.Records.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		return
	}

	reader, err := h.Blob.Open(c.Request.Context(), ref(rec))
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "stored file not found", nil)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	io.Copy(c.Writer, reader)
}
