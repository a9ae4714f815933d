package api

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/diascribe/errors"
	"github.com/skillsenselab/diascribe/server"
)

// ProviderStatus reports one inference backend and its availability.
type ProviderStatus struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Available bool   `json:"available"`
}

// Get handles GET /v1/transcripts/:name: it returns the stored document
// for an audio stem. The name may carry the audio extension or not.
func (h *Handler) Get(c *gin.Context) {
	if h.store == nil {
		server.RespondWithError(c, apperrors.ServiceUnavailable("artifact store"))
		return
	}
	name := c.Param("name")

	exists, err := h.store.Exists(c.Request.Context(), name)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if !exists {
		server.RespondWithError(c, apperrors.NotFound("transcript", name))
		return
	}

	doc, err := h.store.Load(c.Request.Context(), name)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, doc)
}

// Providers handles GET /v1/providers: it reports the configured
// inference backends and whether each currently responds.
func (h *Handler) Providers(c *gin.Context) {
	ctx := c.Request.Context()
	statuses := make([]ProviderStatus, 0, 2)

	if h.transcriber != nil {
		statuses = append(statuses, ProviderStatus{
			Name:      h.transcriber.Name(),
			Kind:      "transcription",
			Available: h.transcriber.IsAvailable(ctx),
		})
	}
	if h.diarizer != nil {
		statuses = append(statuses, ProviderStatus{
			Name:      h.diarizer.Name(),
			Kind:      "diarization",
			Available: h.diarizer.IsAvailable(ctx),
		})
	}
	server.RespondOK(c, statuses)
}
