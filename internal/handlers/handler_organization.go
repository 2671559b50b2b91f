package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/swiftparcel/parcel_broker_app/internal/core/ports/services"
	"github.com/swiftparcel/parcel_broker_app/internal/dto"
	"github.com/swiftparcel/parcel_broker_app/internal/middleware"
)

// organizationHandler manages organizations and their membership.
type organizationHandler struct {
	organizationService portssvc.OrganizationSvcFacade
}

func newOrganizationHandler(os portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{organizationService: os}
}

// registerOrganizationRoutes registers routes related to organizations.
func registerOrganizationRoutes(rg *gin.RouterGroup, os portssvc.OrganizationSvcFacade) {
	h := newOrganizationHandler(os)

	orgs := rg.Group("/organizations")
	{
		orgs.POST("", h.createOrganization)
		orgs.GET("/:id", h.getOrganization)
		orgs.POST("/:id/members", h.addMember)
		orgs.DELETE("/:id/members/:userID", h.removeMember)
	}
}

// createOrganization godoc
// @Summary Create an organization
// @Description Creates an organization with its pooled billing account. Staff only.
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	org, err := h.organizationService.CreateOrganization(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Organization created", slog.String("organization_id", org.OrganizationID))
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// getOrganization godoc
// @Summary Get an organization
// @Description Retrieves an organization; staff or its own members.
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{id} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	org, err := h.organizationService.GetOrganization(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// addMember godoc
// @Summary Add an organization member
// @Description Links a user into the organization's billing pool. Staff only.
// @Tags organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param member body dto.AddMemberRequest true "User to add"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "User already belongs to another organization"
// @Security BearerAuth
// @Router /organizations/{id}/members [post]
func (h *organizationHandler) addMember(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.organizationService.AddMember(c.Request.Context(), c.Param("id"), req.UserID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// removeMember godoc
// @Summary Remove an organization member
// @Description Unlinks a user; their future billing falls back to their own account. Staff only.
// @Tags organizations
// @Param id path string true "Organization ID"
// @Param userID path string true "User ID to remove"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{id}/members/{userID} [delete]
func (h *organizationHandler) removeMember(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	if err := h.organizationService.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("userID"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
