package api

import (
	stderrors "errors"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/diascribe/auth"
	apperrors "github.com/skillsenselab/diascribe/errors"
	"github.com/skillsenselab/diascribe/logger"
	"github.com/skillsenselab/diascribe/media"
	"github.com/skillsenselab/diascribe/observability"
	"github.com/skillsenselab/diascribe/pipeline"
	"github.com/skillsenselab/diascribe/server"
	"github.com/skillsenselab/diascribe/server/middleware"
	"github.com/skillsenselab/diascribe/validation"
)

// TranscribeRequest carries the per-upload processing options. The
// recording itself arrives as the multipart file field "audio".
type TranscribeRequest struct {
	// Language is the expected audio language (e.g. "sv").
	Language string `form:"language" json:"language" validate:"omitempty,bcp47_language_tag"`
	// Model overrides the configured transcription model.
	Model string `form:"model" json:"model" validate:"omitempty,max=64"`
	// Output selects the response body: the JSON document (default) or
	// its markdown rendering.
	Output string `form:"output" json:"output" validate:"omitempty,oneof=json markdown"`
	// NumSpeakers fixes the number of speakers (0 = auto-detect).
	NumSpeakers int `form:"num_speakers" json:"num_speakers" validate:"omitempty,min=1,max=32"`
	// MinSpeakers bounds speaker auto-detection from below.
	MinSpeakers int `form:"min_speakers" json:"min_speakers" validate:"omitempty,min=1,max=32"`
	// MaxSpeakers bounds speaker auto-detection from above.
	MaxSpeakers int `form:"max_speakers" json:"max_speakers" validate:"omitempty,min=1,max=32"`
}

// Create handles POST /v1/transcripts: it spools the uploaded recording,
// runs the pipeline, and responds with the terminal artifact. Successful
// runs return the document (or its markdown rendering); pipeline failures
// return the failure-shaped artifact with the error's HTTP status, so API
// consumers see the same terminal shapes the CLI and watcher persist.
func (h *Handler) Create(c *gin.Context) {
	var req TranscribeRequest
	if err := c.ShouldBind(&req); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("form", err.Error()))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	if err := validation.SpeakerBounds(req.NumSpeakers, req.MinSpeakers, req.MaxSpeakers); err != nil {
		server.RespondWithError(c, err)
		return
	}

	fh, err := c.FormFile("audio")
	if err != nil {
		server.RespondWithError(c, apperrors.MissingField("audio"))
		return
	}
	if !media.IsSupported(fh.Filename) {
		server.RespondWithError(c, apperrors.InvalidFormat("audio", strings.Join(media.SupportedExtensions, ", ")))
		return
	}

	spooled, cleanup, err := h.spool(c, fh)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	defer cleanup()

	userID := ""
	if claims, ok := middleware.ClaimsFromContext(c).(*auth.Claims); ok {
		userID = claims.Subject
	}
	oc := observability.NewOperationContext(serviceName, "transcribe", c.GetString("request_id"), userID, h.metrics)
	ctx := observability.WithOperationContext(c.Request.Context(), oc)
	ctx, span := oc.StartSpanForOperation(ctx, observability.SpanAPITranscribe)

	doc, err := h.pipeline.Process(ctx, pipeline.Job{
		AudioPath:   spooled,
		Language:    req.Language,
		Model:       req.Model,
		NumSpeakers: req.NumSpeakers,
		MinSpeakers: req.MinSpeakers,
		MaxSpeakers: req.MaxSpeakers,
	})
	if err != nil {
		oc.EndOperation(ctx, span, "error", err)
		h.respondFailure(c, safeBaseName(fh.Filename), err)
		return
	}
	oc.EndOperation(ctx, span, "ok", nil)

	// The spool path is server-internal; the response names the upload.
	doc.AudioFile = safeBaseName(fh.Filename)

	if req.Output == "markdown" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(doc.Markdown))
		return
	}
	c.JSON(http.StatusOK, doc)
}

// spool copies the upload into a per-request temp directory, keeping the
// original base name so artifact stems match the uploaded file.
func (h *Handler) spool(c *gin.Context, fh *multipart.FileHeader) (string, func(), error) {
	base := safeBaseName(fh.Filename)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", nil, apperrors.InvalidInput("audio", "invalid file name")
	}

	dir, err := os.MkdirTemp(h.spoolDir, "diascribe-upload-*")
	if err != nil {
		return "", nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "cannot create spool directory")
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			h.log.Warn("removing spool directory", logger.ErrorFields("cleanup", err))
		}
	}

	dst := filepath.Join(dir, base)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		cleanup()
		return "", nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "cannot save upload")
	}
	return dst, cleanup, nil
}

// respondFailure writes the failure-shaped artifact with the status of
// the underlying AppError.
func (h *Handler) respondFailure(c *gin.Context, audioFile string, err error) {
	status := http.StatusInternalServerError
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		status = appErr.HTTPStatus
	}
	c.JSON(status, pipeline.FailureFor(audioFile, err))
}

// safeBaseName strips any path components from a client-supplied file
// name, including Windows-style separators.
func safeBaseName(name string) string {
	if i := strings.LastIndexByte(name, '\\'); i >= 0 {
		name = name[i+1:]
	}
	return filepath.Base(name)
}
