package server

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/protokoll/errors"
	"github.com/skillsenselab/protokoll/logger"
	"github.com/skillsenselab/protokoll/queue"
	"github.com/skillsenselab/protokoll/util"
)

// JobsHandler serves the job submission and status API backed by the
// Redis task queue.
type JobsHandler struct {
	queue *queue.Queue
	log   *logger.Logger
}

// NewJobsHandler creates a JobsHandler.
func NewJobsHandler(q *queue.Queue, log *logger.Logger) *JobsHandler {
	return &JobsHandler{
		queue: q,
		log:   log.WithComponent("jobs_api"),
	}
}

// Register mounts the job routes under /api/v1.
func (h *JobsHandler) Register(r gin.IRouter) {
	v1 := r.Group("/api/v1")
	v1.POST("/jobs", h.create)
	v1.GET("/jobs/:id", h.get)
}

// createJobRequest is the body for POST /api/v1/jobs.
type createJobRequest struct {
	URL string `json:"url" binding:"required,url"`
}

func (h *JobsHandler) create(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.InvalidInput("url", "url must be a valid video URL"))
		return
	}

	state, err := h.queue.Enqueue(c.Request.Context(), req.URL)
	if err != nil {
		h.log.WithError(err).Error("Failed to enqueue job", logger.Fields(
			logger.FieldURL, req.URL,
		))
		RespondWithError(c, err)
		return
	}

	h.log.Info("Job accepted", logger.Fields(
		logger.FieldTaskID, state.ID,
		logger.FieldURL, state.URL,
	))
	RespondAccepted(c, state)
}

func (h *JobsHandler) get(c *gin.Context) {
	id := c.Param("id")
	if _, err := util.ValidateUUID("id", id); err != nil {
		RespondWithError(c, apperrors.InvalidInput("id", "id must be a valid task ID"))
		return
	}

	state, err := h.queue.State(c.Request.Context(), id)
	if err != nil {
		h.log.WithError(err).Error("Failed to load task state", logger.Fields(
			logger.FieldTaskID, id,
		))
		RespondWithError(c, err)
		return
	}
	if state == nil {
		RespondWithError(c, apperrors.NotFound("task", id))
		return
	}

	RespondOK(c, state)
}
