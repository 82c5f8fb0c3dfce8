package record

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/medarchive-api/internal/middleware"
	"github.com/jwalitptl/medarchive-api/internal/model"
	"github.com/jwalitptl/medarchive-api/internal/service/record"
	"github.com/jwalitptl/medarchive-api/internal/storage/localfs"
	apperrors "github.com/jwalitptl/medarchive-api/pkg/errors"
	"github.com/jwalitptl/medarchive-api/pkg/httputil"
)

const dateLayout = "2006-01-02"

// Handler serves the uniform REST surface of one record kind. R is the
// kind's request struct; toModel maps it onto a fresh record. The optional
// attachment always travels as the multipart "document" part.
type Handler[T model.OwnedRecord, R any] struct {
	svc        *record.Service[T]
	path       string
	toModel    func(*R) T
	doctorOnly gin.HandlerFunc
}

func NewHandler[T model.OwnedRecord, R any](
	svc *record.Service[T],
	path string,
	toModel func(*R) T,
	doctorOnly gin.HandlerFunc,
) *Handler[T, R] {
	return &Handler[T, R]{
		svc:        svc,
		path:       path,
		toModel:    toModel,
		doctorOnly: doctorOnly,
	}
}

func (h *Handler[T, R]) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/" + h.path)
	{
		g.GET("", h.List)
		g.GET("/search", h.Search)
		g.GET("/date-range", h.DateRange)
		g.GET("/:id", h.Get)
		g.POST("", h.Create)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)

		g.GET("/patient/:patientId", h.doctorOnly, h.ListForPatient)
		g.GET("/patient/:patientId/:id", h.doctorOnly, h.GetForPatient)
	}
}

func (h *Handler[T, R]) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("", nil))
		return
	}

	recs, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, recs)
}

func (h *Handler[T, R]) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("", nil))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid record ID", err))
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), id, userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rec)
}

func (h *Handler[T, R]) Search(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("", nil))
		return
	}

	term := c.Query("term")
	if term == "" {
		httputil.RespondWithError(c, apperrors.Validation("missing search term", nil))
		return
	}

	recs, err := h.svc.Search(c.Request.Context(), userID, term)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, recs)
}

func (h *Handler[T, R]) DateRange(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("", nil))
		return
	}

	start, err := time.Parse(dateLayout, c.Query("startDate"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid startDate", err))
		return
	}
	end, err := time.Parse(dateLayout, c.Query("endDate"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid endDate", err))
		return
	}

	recs, err := h.svc.DateRange(c.Request.Context(), userID, start, end)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, recs)
}

func (h *Handler[T, R]) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("", nil))
		return
	}

	var req R
	if err := c.ShouldBind(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	upload, closeFn, err := h.formUpload(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid attachment", err))
		return
	}
	defer closeFn()

	rec, err := h.svc.Create(c.Request.Context(), userID, h.toModel(&req), upload)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, rec)
}

func (h *Handler[T, R]) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("", nil))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid record ID", err))
		return
	}

	var req R
	if err := c.ShouldBind(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	upload, closeFn, err := h.formUpload(c)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid attachment", err))
		return
	}
	defer closeFn()

	rec, err := h.svc.Update(c.Request.Context(), id, userID, h.toModel(&req), upload)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rec)
}

func (h *Handler[T, R]) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("", nil))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid record ID", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, userID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "record deleted"})
}

func (h *Handler[T, R]) ListForPatient(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("", nil))
		return
	}

	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid patient ID", err))
		return
	}

	recs, err := h.svc.ListForPatient(c.Request.Context(), patientID, userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, recs)
}

func (h *Handler[T, R]) GetForPatient(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("", nil))
		return
	}

	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid patient ID", err))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid record ID", err))
		return
	}

	rec, err := h.svc.GetForPatient(c.Request.Context(), patientID, userID, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rec)
}

// formUpload extracts the optional "document" part. Absence is not an
// error; a present but unreadable part is.
func (h *Handler[T, R]) formUpload(c *gin.Context) (*localfs.Upload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile("document")
	if err != nil {
		return nil, noop, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}

	return &localfs.Upload{
		Filename: fh.Filename,
		Content:  f,
	}, func() { f.Close() }, nil
}
