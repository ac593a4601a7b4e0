package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	portssvc "github.com/msaadaplus/msaada_backend/internal/core/ports/services"
	"github.com/msaadaplus/msaada_backend/internal/dto"
	"github.com/msaadaplus/msaada_backend/internal/middleware"
)

type contentHandler struct {
	contentService portssvc.ContentSvcFacade
}

// RegisterContentRoutes registers the charity-only story, beneficiary and inventory routes.
// rg must already authenticate the caller.
func RegisterContentRoutes(rg *gin.RouterGroup, contentService portssvc.ContentSvcFacade) {
	registerValidators()
	h := &contentHandler{contentService: contentService}

	charity := rg.Group("", middleware.RequireUserType(domain.UserTypeCharity))
	{
		charity.POST("/stories", h.createStory)
		charity.GET("/stories", h.listStories)
		charity.DELETE("/stories/:id", h.deleteStory)

		charity.POST("/beneficiaries", h.createBeneficiary)
		charity.GET("/beneficiaries", h.listBeneficiaries)
		charity.PUT("/beneficiaries/:id", h.updateBeneficiary)
		charity.DELETE("/beneficiaries/:id", h.deleteBeneficiary)

		charity.POST("/inventory", h.createInventoryItem)
		charity.GET("/inventory", h.listInventory)
		charity.POST("/inventory/:id/distribute", h.distributeItem)
	}
}

func callerID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
	}
	return userID, ok
}

// createStory godoc
// @Summary Publish a story
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param content formData string true "Content"
// @Param image formData file false "png, jpg, jpeg or gif, at most 5MB"
// @Success 201 {object} dto.StoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /stories [post]
func (h *contentHandler) createStory(c *gin.Context) {
	var req dto.CreateStoryRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Could not read image"})
			return
		}
		defer f.Close()
		req.Image = &dto.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		}
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		respondBindError(c, err)
		return
	}

	story, err := h.contentService.CreateStory(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create story")
		return
	}
	c.JSON(http.StatusCreated, dto.ToStoryResponse(*story))
}

// listStories godoc
// @Summary List my stories
// @Tags content
// @Produce json
// @Success 200 {array} dto.StoryResponse
// @Security BearerAuth
// @Router /stories [get]
func (h *contentHandler) listStories(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	stories, err := h.contentService.ListStories(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list stories")
		return
	}
	c.JSON(http.StatusOK, dto.ToStoryResponses(stories))
}

// deleteStory godoc
// @Summary Delete a story
// @Tags content
// @Param id path string true "Story ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /stories/{id} [delete]
func (h *contentHandler) deleteStory(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.contentService.DeleteStory(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete story")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Story deleted successfully"})
}

// createBeneficiary godoc
// @Summary Add a beneficiary
// @Tags content
// @Accept json
// @Produce json
// @Param beneficiary body dto.BeneficiaryRequest true "Beneficiary"
// @Success 201 {object} dto.BeneficiaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /beneficiaries [post]
func (h *contentHandler) createBeneficiary(c *gin.Context) {
	var req dto.BeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	b, err := h.contentService.CreateBeneficiary(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create beneficiary")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBeneficiaryResponse(*b))
}

// listBeneficiaries godoc
// @Summary List my beneficiaries
// @Tags content
// @Produce json
// @Success 200 {array} dto.BeneficiaryResponse
// @Security BearerAuth
// @Router /beneficiaries [get]
func (h *contentHandler) listBeneficiaries(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	bs, err := h.contentService.ListBeneficiaries(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list beneficiaries")
		return
	}
	c.JSON(http.StatusOK, dto.ToBeneficiaryResponses(bs))
}

// updateBeneficiary godoc
// @Summary Update a beneficiary
// @Tags content
// @Accept json
// @Produce json
// @Param id path string true "Beneficiary ID"
// @Param beneficiary body dto.BeneficiaryRequest true "Beneficiary"
// @Success 200 {object} dto.BeneficiaryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /beneficiaries/{id} [put]
func (h *contentHandler) updateBeneficiary(c *gin.Context) {
	var req dto.BeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	b, err := h.contentService.UpdateBeneficiary(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update beneficiary")
		return
	}
	c.JSON(http.StatusOK, dto.ToBeneficiaryResponse(*b))
}

// deleteBeneficiary godoc
// @Summary Delete a beneficiary
// @Tags content
// @Param id path string true "Beneficiary ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Inventory was distributed to the beneficiary"
// @Security BearerAuth
// @Router /beneficiaries/{id} [delete]
func (h *contentHandler) deleteBeneficiary(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.contentService.DeleteBeneficiary(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete beneficiary")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Beneficiary deleted successfully"})
}

// createInventoryItem godoc
// @Summary Add an inventory item
// @Tags content
// @Accept json
// @Produce json
// @Param item body dto.CreateInventoryItemRequest true "Item"
// @Success 201 {object} dto.InventoryItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /inventory [post]
func (h *contentHandler) createInventoryItem(c *gin.Context) {
	var req dto.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	item, err := h.contentService.CreateInventoryItem(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create inventory item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInventoryItemResponse(*item))
}

// listInventory godoc
// @Summary List my inventory
// @Tags content
// @Produce json
// @Success 200 {array} dto.InventoryItemResponse
// @Security BearerAuth
// @Router /inventory [get]
func (h *contentHandler) listInventory(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	items, err := h.contentService.ListInventory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list inventory")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponses(items))
}

// distributeItem godoc
// @Summary Distribute an inventory item
// @Tags content
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param distribution body dto.DistributeItemRequest true "Beneficiary and optional date"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 400 {object} dto.ErrorResponse "Beneficiary does not belong to this charity"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already distributed"
// @Security BearerAuth
// @Router /inventory/{id}/distribute [post]
func (h *contentHandler) distributeItem(c *gin.Context) {
	var req dto.DistributeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	item, err := h.contentService.DistributeItem(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to distribute item")
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(*item))
}
