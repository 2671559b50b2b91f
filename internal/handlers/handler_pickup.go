package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/swiftparcel/parcel_broker_app/internal/core/ports/services"
	"github.com/swiftparcel/parcel_broker_app/internal/dto"
	"github.com/swiftparcel/parcel_broker_app/internal/middleware"
)

// pickupHandler handles the pre-shipment pickup request workflow.
type pickupHandler struct {
	pickupService portssvc.PickupSvcFacade
}

func newPickupHandler(ps portssvc.PickupSvcFacade) *pickupHandler {
	return &pickupHandler{pickupService: ps}
}

// registerPickupRoutes registers routes related to pickup requests.
func registerPickupRoutes(rg *gin.RouterGroup, ps portssvc.PickupSvcFacade) {
	h := newPickupHandler(ps)

	pickups := rg.Group("/pickups")
	{
		pickups.POST("", h.createPickup)
		pickups.GET("", h.listPickups)
		pickups.GET("/:id", h.getPickup)
		pickups.PATCH("/:id", h.updatePickup)
		pickups.POST("/:id/ready", h.markReady)
		pickups.POST("/:id/approve", h.approvePickup)
		pickups.POST("/:id/reject", h.rejectPickup)
		pickups.DELETE("/:id", h.deletePickup)
	}
}

// createPickup godoc
// @Summary Create a pickup request
// @Description Creates a new pickup request in REQUESTED for the caller.
// @Tags pickups
// @Accept json
// @Produce json
// @Param pickup body dto.CreatePickupRequest true "Pickup request details"
// @Success 201 {object} dto.PickupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /pickups [post]
func (h *pickupHandler) createPickup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	pickup, err := h.pickupService.CreatePickup(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Pickup request created", slog.String("request_id", pickup.RequestID))
	c.JSON(http.StatusCreated, dto.ToPickupResponse(pickup))
}

// listPickups godoc
// @Summary List pickup requests
// @Description Lists all requests for staff, the caller's own otherwise.
// @Tags pickups
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListPickupsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /pickups [get]
func (h *pickupHandler) listPickups(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	var params dto.ListPickupsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.pickupService.ListPickups(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// getPickup godoc
// @Summary Get a pickup request
// @Description Retrieves one request; owner or staff only.
// @Tags pickups
// @Produce json
// @Param id path string true "Pickup request ID"
// @Success 200 {object} dto.PickupResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /pickups/{id} [get]
func (h *pickupHandler) getPickup(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	pickup, err := h.pickupService.GetPickup(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPickupResponse(pickup))
}

// updatePickup godoc
// @Summary Update a pickup request
// @Description Edits an owned request while it is still REQUESTED.
// @Tags pickups
// @Accept json
// @Produce json
// @Param id path string true "Pickup request ID"
// @Param pickup body dto.UpdatePickupRequest true "Fields to update"
// @Success 200 {object} dto.PickupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Request no longer editable"
// @Security BearerAuth
// @Router /pickups/{id} [patch]
func (h *pickupHandler) updatePickup(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	pickup, err := h.pickupService.UpdatePickup(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPickupResponse(pickup))
}

// markReady godoc
// @Summary Mark a pickup request ready
// @Description Moves an owned request from REQUESTED to READY_FOR_PICKUP.
// @Tags pickups
// @Produce json
// @Param id path string true "Pickup request ID"
// @Success 200 {object} dto.PickupResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /pickups/{id}/ready [post]
func (h *pickupHandler) markReady(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	pickup, err := h.pickupService.MarkReady(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPickupResponse(pickup))
}

// approvePickup godoc
// @Summary Approve a pickup request
// @Description Promotes the request into a shipment atomically. Staff only.
// @Tags pickups
// @Accept json
// @Produce json
// @Param id path string true "Pickup request ID"
// @Param approval body dto.ApprovePickupRequest true "Carrier cost quote"
// @Success 201 {object} dto.ShipmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Request no longer approvable"
// @Security BearerAuth
// @Router /pickups/{id}/approve [post]
func (h *pickupHandler) approvePickup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	var req dto.ApprovePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	shipment, err := h.pickupService.Approve(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Pickup request approved",
		slog.String("request_id", c.Param("id")),
		slog.String("tracking_number", shipment.TrackingNumber))
	c.JSON(http.StatusCreated, dto.ToShipmentResponse(shipment))
}

// rejectPickup godoc
// @Summary Reject a pickup request
// @Description Terminates the request with a mandatory reason. Staff only.
// @Tags pickups
// @Accept json
// @Produce json
// @Param id path string true "Pickup request ID"
// @Param rejection body dto.RejectPickupRequest true "Rejection reason"
// @Success 200 {object} dto.PickupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /pickups/{id}/reject [post]
func (h *pickupHandler) rejectPickup(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	var req dto.RejectPickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	pickup, err := h.pickupService.Reject(c.Request.Context(), c.Param("id"), req.Reason, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPickupResponse(pickup))
}

// deletePickup godoc
// @Summary Delete a pickup request
// @Description Removes an owned request while it is still REQUESTED.
// @Tags pickups
// @Param id path string true "Pickup request ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /pickups/{id} [delete]
func (h *pickupHandler) deletePickup(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	if err := h.pickupService.DeletePickup(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
