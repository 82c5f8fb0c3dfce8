package access

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/medarchive-api/internal/middleware"
	"github.com/jwalitptl/medarchive-api/internal/model"
	"github.com/jwalitptl/medarchive-api/internal/service/access"
	apperrors "github.com/jwalitptl/medarchive-api/pkg/errors"
	"github.com/jwalitptl/medarchive-api/pkg/httputil"
)

// Handler exposes the delegation lifecycle. Grants and revokes act on
// behalf of the authenticated patient; listings are role-specific views of
// the same grant table.
type Handler struct {
	svc        *access.Service
	doctorOnly gin.HandlerFunc
}

func NewHandler(svc *access.Service, doctorOnly gin.HandlerFunc) *Handler {
	return &Handler{svc: svc, doctorOnly: doctorOnly}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	da := rg.Group("/doctor-access")
	{
		da.GET("/doctors", h.ListDoctors)
		da.GET("/patients", h.doctorOnly, h.ListPatients)
		da.POST("/grant", h.Grant)
		da.DELETE("/revoke/:doctorId", h.Revoke)
	}
}

// ListDoctors is the patient's view: doctors currently holding access.
func (h *Handler) ListDoctors(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("", nil))
		return
	}

	doctors, err := h.svc.ListDoctors(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, doctors)
}

// ListPatients is the doctor's view: patients who granted access.
func (h *Handler) ListPatients(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("", nil))
		return
	}

	patients, err := h.svc.ListPatients(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, patients)
}

func (h *Handler) Grant(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("", nil))
		return
	}

	var req model.GrantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	grant, err := h.svc.Grant(c.Request.Context(), userID, req.DoctorEmail)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, grant)
}

func (h *Handler) Revoke(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("", nil))
		return
	}

	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid doctor ID", err))
		return
	}

	if err := h.svc.Revoke(c.Request.Context(), userID, doctorID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"message": "access revoked"})
}
