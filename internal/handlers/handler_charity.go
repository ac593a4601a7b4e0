package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	portssvc "github.com/msaadaplus/msaada_backend/internal/core/ports/services"
	"github.com/msaadaplus/msaada_backend/internal/dto"
	"github.com/msaadaplus/msaada_backend/internal/middleware"
)

type charityHandler struct {
	charityService portssvc.CharitySvcFacade
}

// RegisterCharityRoutes registers charity browsing and the admin review routes.
// optionalAuth identifies the caller when a token is sent; requireAuth rejects anonymous callers.
func RegisterCharityRoutes(rg *gin.RouterGroup, charityService portssvc.CharitySvcFacade, optionalAuth, requireAuth gin.HandlerFunc) {
	registerValidators()
	h := &charityHandler{charityService: charityService}

	rg.GET("/charities", optionalAuth, h.listCharities)
	rg.GET("/charity/:id", h.getCharity)

	admin := rg.Group("/charity", requireAuth, middleware.RequireUserType(domain.UserTypeAdmin))
	{
		admin.GET("/applications", h.listApplications)
		admin.POST("/applications/:id/review", h.reviewApplication)
		admin.DELETE("/:id", h.deleteCharity)
	}
}

// listCharities godoc
// @Summary List charities
// @Description Lists charities with donation totals. Only admins see charities that are not approved.
// @Tags charities
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(10)
// @Param search query string false "Matches name or description"
// @Param status query string false "Application status (admin only)"
// @Success 200 {object} dto.ListCharitiesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /charities [get]
func (h *charityHandler) listCharities(c *gin.Context) {
	var params dto.ListCharitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	viewer, _ := middleware.GetUserTypeFromContext(c)
	resp, err := h.charityService.ListCharities(c.Request.Context(), params, viewer)
	if err != nil {
		respondError(c, err, "Failed to list charities")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getCharity godoc
// @Summary Get a charity
// @Tags charities
// @Produce json
// @Param id path string true "Charity ID"
// @Success 200 {object} dto.CharityDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /charity/{id} [get]
func (h *charityHandler) getCharity(c *gin.Context) {
	resp, err := h.charityService.GetCharityDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve charity")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listApplications godoc
// @Summary List charity applications
// @Tags admin
// @Produce json
// @Param status query string false "Application status" default(pending)
// @Success 200 {object} dto.ListApplicationsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /charity/applications [get]
func (h *charityHandler) listApplications(c *gin.Context) {
	status, ok := domain.ParseCharityStatus(c.DefaultQuery("status", string(domain.CharityPending)))
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid status"})
		return
	}

	charities, err := h.charityService.ListApplications(c.Request.Context(), status)
	if err != nil {
		respondError(c, err, "Failed to list applications")
		return
	}
	c.JSON(http.StatusOK, dto.ListApplicationsResponse{Applications: dto.ToCharityResponses(charities)})
}

// reviewApplication godoc
// @Summary Approve or reject a charity
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Charity ID"
// @Param review body dto.ReviewApplicationRequest true "approve or reject"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid action"
// @Failure 404 {object} dto.ErrorResponse "Charity not found"
// @Security BearerAuth
// @Router /charity/applications/{id}/review [post]
func (h *charityHandler) reviewApplication(c *gin.Context) {
	var req dto.ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	charity, err := h.charityService.ReviewApplication(c.Request.Context(), c.Param("id"), domain.ReviewAction(req.Action))
	if err != nil {
		respondError(c, err, "Failed to review application")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Charity application reviewed",
		slog.String("charity_id", charity.CharityID), slog.String("status", string(charity.Status)))
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Charity application " + string(charity.Status)})
}

// deleteCharity godoc
// @Summary Delete a charity
// @Description Deletes a charity and its content. Charities that received donations cannot be deleted.
// @Tags admin
// @Produce json
// @Param id path string true "Charity ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /charity/{id} [delete]
func (h *charityHandler) deleteCharity(c *gin.Context) {
	if err := h.charityService.DeleteCharity(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete charity")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Charity deleted successfully"})
}
