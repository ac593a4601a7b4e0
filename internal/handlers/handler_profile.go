package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/msaadaplus/msaada_backend/internal/core/ports/services"
	"github.com/msaadaplus/msaada_backend/internal/dto"
	"github.com/msaadaplus/msaada_backend/internal/middleware"
)

type profileHandler struct {
	profileService portssvc.ProfileSvcFacade
}

// RegisterProfileRoutes registers the signed-in user's profile routes.
func RegisterProfileRoutes(rg *gin.RouterGroup, profileService portssvc.ProfileSvcFacade) {
	registerValidators()
	h := &profileHandler{profileService: profileService}

	rg.GET("/profile-details", h.getProfileDetails)
	rg.PUT("/profile", h.updateProfile)
}

// getProfileDetails godoc
// @Summary Get my profile
// @Description Returns the profile together with the donations, beneficiaries, stories and inventory relevant to the caller's role.
// @Tags profile
// @Produce json
// @Success 200 {object} dto.ProfileDetailsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /profile-details [get]
func (h *profileHandler) getProfileDetails(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	details, err := h.profileService.GetProfileDetails(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve profile")
		return
	}
	c.JSON(http.StatusOK, details)
}

// updateProfile godoc
// @Summary Update my profile
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /profile [put]
func (h *profileHandler) updateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.profileService.UpdateProfile(c.Request.Context(), userID, req); err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Profile updated successfully"})
}
