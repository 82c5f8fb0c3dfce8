package files

import (
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/medarchive-api/internal/middleware"
	"github.com/jwalitptl/medarchive-api/internal/service/access"
	"github.com/jwalitptl/medarchive-api/internal/storage/localfs"
	apperrors "github.com/jwalitptl/medarchive-api/pkg/errors"
	"github.com/jwalitptl/medarchive-api/pkg/httputil"
)

// Handler serves stored attachments. Retrieval is gated by the same
// authorization check as the records that reference them.
type Handler struct {
	store *localfs.Store
	authz *access.Service
}

func NewHandler(store *localfs.Store, authz *access.Service) *Handler {
	return &Handler{store: store, authz: authz}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files/:ownerId/*filepath", h.Download)
}

func (h *Handler) Download(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("", nil))
		return
	}

	ownerID, err := uuid.Parse(c.Param("ownerId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid owner ID", err))
		return
	}

	decision, err := h.authz.Authorize(c.Request.Context(), userID, ownerID)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	if !decision.Allowed() {
		// Same conflation as records: no existence leak.
		httputil.RespondWithError(c, apperrors.NotFound("file", nil))
		return
	}

	relPath := path.Join(ownerID.String(), strings.TrimPrefix(c.Param("filepath"), "/"))
	fullPath, err := h.store.FullPath(relPath)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid file path", err))
		return
	}
	if !h.store.Exists(relPath) {
		httputil.RespondWithError(c, apperrors.NotFound("file", nil))
		return
	}

	c.FileAttachment(fullPath, path.Base(relPath))
}
