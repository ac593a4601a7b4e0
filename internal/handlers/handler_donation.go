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

// donationHandler handles HTTP requests related to donations.
type donationHandler struct {
	donationService portssvc.DonationSvcFacade
}

// RegisterDonationRoutes registers the donor-only donation routes. rg must already
// authenticate the caller.
func RegisterDonationRoutes(rg *gin.RouterGroup, donationService portssvc.DonationSvcFacade) {
	registerValidators()
	h := &donationHandler{donationService: donationService}

	donor := rg.Group("", middleware.RequireUserType(domain.UserTypeDonor))
	{
		donor.POST("/donation", h.createDonation)
		donor.POST("/recurring-donation", h.createRecurringDonation)
		donor.GET("/donations/:id", h.getDonation)
		donor.GET("/recurring-donations", h.listRecurringDonations)
	}
}

// createDonation godoc
// @Summary Make a one-time donation
// @Description Records a pending donation and sends an M-Pesa payment prompt to the donor's phone.
// @Tags donations
// @Accept json
// @Produce json
// @Param donation body dto.CreateDonationRequest true "Donation details"
// @Success 201 {object} dto.DonationCreatedResponse
// @Failure 400 {object} map[string]interface{} "Validation error, or the raw M-Pesa rejection"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Charity not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to initiate payment"
// @Security BearerAuth
// @Router /donation [post]
func (h *donationHandler) createDonation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	receipt, err := h.donationService.CreateDonation(c.Request.Context(), userID, req)
	if err != nil {
		if receipt != nil {
			logger.Warn("Donation recorded but payment was not initiated", slog.String("donation_id", receipt.Donation.DonationID))
		}
		respondError(c, err, "Failed to initiate payment")
		return
	}

	logger.Info("Donation initiated", slog.String("donation_id", receipt.Donation.DonationID))
	c.JSON(http.StatusCreated, dto.ToDonationCreatedResponse(receipt))
}

// createRecurringDonation godoc
// @Summary Set up a recurring donation
// @Description Records an active recurring donation and prompts the donor to pay the first installment.
// @Tags donations
// @Accept json
// @Produce json
// @Param donation body dto.CreateRecurringDonationRequest true "Recurring donation details"
// @Success 201 {object} dto.RecurringDonationCreatedResponse
// @Failure 400 {object} map[string]interface{} "Validation error, or the raw M-Pesa rejection"
// @Failure 404 {object} dto.ErrorResponse "Charity not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to initiate payment"
// @Security BearerAuth
// @Router /recurring-donation [post]
func (h *donationHandler) createRecurringDonation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRecurringDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	receipt, err := h.donationService.CreateRecurringDonation(c.Request.Context(), userID, req)
	if err != nil {
		if receipt != nil {
			logger.Warn("Recurring donation recorded but payment was not initiated",
				slog.String("recurring_donation_id", receipt.RecurringDonation.RecurringDonationID))
		}
		respondError(c, err, "Failed to initiate payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecurringDonationCreatedResponse(receipt))
}

// getDonation godoc
// @Summary Get one of my donations
// @Tags donations
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} dto.DonationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /donations/{id} [get]
func (h *donationHandler) getDonation(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	view, err := h.donationService.GetDonation(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve donation")
		return
	}
	c.JSON(http.StatusOK, dto.ToDonationResponse(*view))
}

// listRecurringDonations godoc
// @Summary List my recurring donations
// @Tags donations
// @Produce json
// @Success 200 {array} dto.RecurringDonationResponse
// @Security BearerAuth
// @Router /recurring-donations [get]
func (h *donationHandler) listRecurringDonations(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	views, err := h.donationService.ListRecurringDonations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list recurring donations")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecurringDonationResponses(views))
}
