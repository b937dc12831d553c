package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xenowa/foodifire-backend/internal/app"
	"github.com/Xenowa/foodifire-backend/internal/pkg/datauri"
	"github.com/Xenowa/foodifire-backend/internal/transport/http/middleware"
	"github.com/Xenowa/foodifire-backend/internal/transport/http/response"
)

// ImageLoader reads back the last image a user submitted.
type ImageLoader interface {
	Load(ctx context.Context, email string) (string, bool, error)
}

// ReportHandler serves report generation and the cached-image view.
type ReportHandler struct {
	reports *app.ReportService
	images  ImageLoader
}

func NewReportHandler(reports *app.ReportService, images ImageLoader) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		images:  images,
	}
}

type reportRequest struct {
	// Image is bound loosely so numeric submissions can be told apart from
	// malformed strings and rejected with the specific reason.
	Image any `json:"image"`
}

// GetReport runs the classification pipeline for the submitted image.
func (h *ReportHandler) GetReport(c *gin.Context) {
	email := c.GetString(middleware.ContextEmailKey)

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// No body at all reads the same as an absent image field.
		response.Message(c, http.StatusBadRequest, datauri.ErrEmpty.Error())
		return
	}

	report, err := h.reports.GenerateReport(c.Request.Context(), email, req.Image)
	if err != nil {
		switch {
		case errors.Is(err, datauri.ErrEmpty),
			errors.Is(err, datauri.ErrNumericInput),
			errors.Is(err, datauri.ErrInvalidFormat):
			response.Message(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrClassificationFailed):
			log.Printf("report classification failed: %v", err)
			response.Message(c, http.StatusInternalServerError, "Error!, Classification failed!")
		default:
			log.Printf("report generation failed: %v", err)
			response.Message(c, http.StatusInternalServerError, "Server Error")
		}
		return
	}

	if report.Degraded {
		c.JSON(http.StatusOK, gin.H{
			"foodName": report.FoodName,
			"message":  report.Message,
		})
		return
	}

	conditions := report.RelatedConditions
	if conditions == nil {
		conditions = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"foodName":          report.FoodName,
		"relatedConditions": conditions,
	})
}

// UserImage renders the caller's last submitted image as an HTML img tag.
func (h *ReportHandler) UserImage(c *gin.Context) {
	email := c.GetString(middleware.ContextEmailKey)

	dataURL, ok, err := h.images.Load(c.Request.Context(), email)
	if err != nil {
		log.Printf("load cached image failed: %v", err)
		response.Message(c, http.StatusInternalServerError, "Server Error")
		return
	}
	if !ok {
		response.Message(c, http.StatusForbidden, "Error Invalid Image")
		return
	}

	html := fmt.Sprintf("<img src='%s' alt='Testing Image'></img>", dataURL)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
