package v1

import (
	"net/http"

	"job-tracker-backend/internal/delivery/http/middleware"
	"job-tracker-backend/internal/delivery/http/response"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"
	"job-tracker-backend/pkg/paging"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := protected.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.GET("/stats", handler.ShowStats)
		jobs.GET("/:id", handler.Get)

		// The demo account may browse but never write.
		writes := jobs.Group("", middleware.ReadOnlyTestUser())
		writes.POST("", handler.Create)
		writes.PATCH("/:id", handler.Update)
		writes.DELETE("/:id", handler.Delete)
	}
}

// JobEnvelope is the data payload for single-job responses.
type JobEnvelope struct {
	Job *domain.Job `json:"job"`
}

// ListJobs godoc
// @Summary      List jobs
// @Description  Filter and paginate the caller's job applications
// @Tags         jobs
// @Produce      json
// @Param        search   query     string  false  "Exact position"
// @Param        status   query     string  false  "pending, interview, declined or all"
// @Param        jobType  query     string  false  "full-time, part-time, remote, internship or all"
// @Param        sort     query     string  false  "latest, oldest, a-z or z-a"
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Page size (default 4)"
// @Success      200      {object}  response.Response{data=domain.JobList}
// @Failure      401      {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	query := domain.JobQuery{
		Search:  c.Query("search"),
		Status:  c.Query("status"),
		JobType: c.Query("jobType"),
		Sort:    c.Query("sort"),
		Page:    paging.ParsePage(c.Query("page")),
		Limit:   paging.ParseLimit(c.Query("limit")),
	}

	list, err := h.jobUC.ListJobs(c.Request.Context(), ownerID(c), query)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", list)
}

// GetJob godoc
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=JobEnvelope}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobUC.GetJob(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", JobEnvelope{Job: job})
}

// CreateJob godoc
// @Summary      Create a job
// @Description  Record a new application. Missing status, jobType, jobLocation and meetingType take their defaults.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.JobInput  true  "Job JSON"
// @Success      201  {object}  response.Response{data=JobEnvelope}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var input domain.JobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest("Invalid JSON body"))
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), ownerID(c), input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", JobEnvelope{Job: job})
}

// UpdateJob godoc
// @Summary      Update a job
// @Description  Partial update; fields left out of the body are unchanged
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string           true  "Job ID"
// @Param        job  body      domain.JobPatch  true  "Fields to change"
// @Success      200  {object}  response.Response{data=JobEnvelope}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [patch]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var patch domain.JobPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest("Invalid JSON body"))
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), ownerID(c), c.Param("id"), patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", JobEnvelope{Job: job})
}

// DeleteJob godoc
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobUC.DeleteJob(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job removed", nil)
}

// ShowStats godoc
// @Summary      Application statistics
// @Description  Status histogram plus applications per month for the latest six months with data
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.JobStats}
// @Failure      401  {object}  response.Response
// @Router       /jobs/stats [get]
// @Security     BearerAuth
func (h *JobHandler) ShowStats(c *gin.Context) {
	stats, err := h.jobUC.ShowStats(c.Request.Context(), ownerID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job stats", stats)
}

func ownerID(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserID))
}
