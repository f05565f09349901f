package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hireboard/domain/dto"
	"hireboard/domain/model"
	"hireboard/infrastructure/logger"
	"hireboard/usecase"
)

const (
	ErrorUnmarshal = "Error while unmarshal"
)

type ISocialHandler interface {
	Dispatch(c *gin.Context)
	Status(c *gin.Context)
	Platforms(c *gin.Context)
}

type SocialHandler struct {
	dispatchUsecase usecase.ISocialDispatchUsecase
}

func NewSocialHandler(dispatchUsecase usecase.ISocialDispatchUsecase) ISocialHandler {
	return &SocialHandler{dispatchUsecase: dispatchUsecase}
}

// Dispatch handles POST /api/jobs/:jobId/social.
func (socialHandler *SocialHandler) Dispatch(c *gin.Context) {
	var req dto.SocialDispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}

	media := make([]model.FilePayload, 0, len(req.Media))
	for _, m := range req.Media {
		media = append(media, model.FilePayload{Name: m.Name, ContentType: m.ContentType, Data: m.Data})
	}

	in := &usecase.DispatchInput{
		Job: model.JobSummary{
			ID:          c.Param("jobId"),
			Title:       req.Title,
			Description: req.Description,
			CompanyName: req.CompanyName,
			CompanySite: req.CompanySite,
		},
		OrganizationID: c.GetString("organization_id"),
		TeamID:         c.GetString("team_id"),
		Platforms:      req.Platforms,
		ScheduleAt:     req.ScheduleAt,
		Media:          media,
	}

	results, err := socialHandler.dispatchUsecase.Dispatch(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.Res{ResponseCode: "422", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job_id": in.Job.ID, "results": results})
}

// Status handles GET /api/jobs/:jobId/social-status.
func (socialHandler *SocialHandler) Status(c *gin.Context) {
	status, err := socialHandler.dispatchUsecase.Status(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("status read failed")
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, status)
}

// Platforms handles GET /api/social/platforms.
func (socialHandler *SocialHandler) Platforms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"platforms": socialHandler.dispatchUsecase.Capabilities()})
}
