package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/swiftparcel/parcel_broker_app/internal/core/ports/services"
	"github.com/swiftparcel/parcel_broker_app/internal/dto"
	"github.com/swiftparcel/parcel_broker_app/internal/middleware"
)

// shipmentHandler drives the shipment lifecycle endpoints.
type shipmentHandler struct {
	shipmentService portssvc.ShipmentSvcFacade
}

func newShipmentHandler(ss portssvc.ShipmentSvcFacade) *shipmentHandler {
	return &shipmentHandler{shipmentService: ss}
}

// registerShipmentRoutes registers routes related to shipments.
func registerShipmentRoutes(rg *gin.RouterGroup, ss portssvc.ShipmentSvcFacade) {
	h := newShipmentHandler(ss)

	shipments := rg.Group("/shipments")
	{
		shipments.POST("", h.createShipment)
		shipments.GET("", h.listShipments)
		shipments.GET("/:trackingNumber", h.getShipment)
		shipments.PATCH("/:trackingNumber", h.updateShipment)
		shipments.PATCH("/:trackingNumber/status", h.updateStatus)
		shipments.POST("/:trackingNumber/pickup", h.confirmPickup)
		shipments.POST("/:trackingNumber/book", h.bookShipment)
		shipments.POST("/:trackingNumber/cancel", h.cancelShipment)
		shipments.POST("/:trackingNumber/location", h.updateLocation)
		shipments.DELETE("/:trackingNumber", h.deleteShipment)
	}
}

// registerTrackingRoutes registers the public, unauthenticated tracking view.
func registerTrackingRoutes(r *gin.Engine, ss portssvc.ShipmentSvcFacade) {
	h := newShipmentHandler(ss)
	r.GET("/track/:trackingNumber", h.publicTracking)
}

// createShipment godoc
// @Summary Create a shipment
// @Description Creates a draft shipment billed to the caller's account.
// @Tags shipments
// @Accept json
// @Produce json
// @Param shipment body dto.CreateShipmentRequest true "Shipment details"
// @Success 201 {object} dto.ShipmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipments [post]
func (h *shipmentHandler) createShipment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	var req dto.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	shipment, err := h.shipmentService.CreateShipment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Shipment created", slog.String("tracking_number", shipment.TrackingNumber))
	c.JSON(http.StatusCreated, dto.ToShipmentResponse(shipment))
}

// listShipments godoc
// @Summary List shipments
// @Description Lists all shipments for staff, the caller's billing account's otherwise.
// @Tags shipments
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListShipmentsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipments [get]
func (h *shipmentHandler) listShipments(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	var params dto.ListShipmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.shipmentService.ListShipments(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// getShipment godoc
// @Summary Get a shipment
// @Description Retrieves one shipment; visible to staff, drivers, the owner and account peers.
// @Tags shipments
// @Produce json
// @Param trackingNumber path string true "Tracking number"
// @Success 200 {object} dto.ShipmentResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipments/{trackingNumber} [get]
func (h *shipmentHandler) getShipment(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	shipment, err := h.shipmentService.GetShipment(c.Request.Context(), c.Param("trackingNumber"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShipmentResponse(shipment))
}

// publicTracking godoc
// @Summary Track a shipment
// @Description Public tracking view: status and history, no prices or billing.
// @Tags tracking
// @Produce json
// @Param trackingNumber path string true "Tracking number"
// @Success 200 {object} dto.TrackingResponse
// @Failure 404 {object} ErrorResponse
// @Router /track/{trackingNumber} [get]
func (h *shipmentHandler) publicTracking(c *gin.Context) {
	shipment, err := h.shipmentService.GetPublicTracking(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTrackingResponse(shipment))
}

// updateShipment godoc
// @Summary Update a shipment
// @Description Applies a client edit; allowed only in client-editable states.
// @Tags shipments
// @Accept json
// @Produce json
// @Param trackingNumber path string true "Tracking number"
// @Param shipment body dto.UpdateShipmentRequest true "Fields to update"
// @Success 200 {object} dto.ShipmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Shipment not client-editable"
// @Security BearerAuth
// @Router /shipments/{trackingNumber} [patch]
func (h *shipmentHandler) updateShipment(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	shipment, err := h.shipmentService.UpdateShipment(c.Request.Context(), c.Param("trackingNumber"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShipmentResponse(shipment))
}

// updateStatus godoc
// @Summary Update shipment status
// @Description Applies an explicit status transition. Staff and drivers only.
// @Tags shipments
// @Accept json
// @Produce json
// @Param trackingNumber path string true "Tracking number"
// @Param status body dto.UpdateStatusRequest true "Target status and description"
// @Success 200 {object} dto.ShipmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transition not permitted"
// @Security BearerAuth
// @Router /shipments/{trackingNumber}/status [patch]
func (h *shipmentHandler) updateStatus(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	shipment, err := h.shipmentService.UpdateStatus(c.Request.Context(), c.Param("trackingNumber"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShipmentResponse(shipment))
}

// confirmPickup godoc
// @Summary Confirm parcel pickup
// @Description Driver scan: moves ready_for_pickup to picked_up. Repeat scans are no-ops.
// @Tags shipments
// @Accept json
// @Produce json
// @Param trackingNumber path string true "Tracking number"
// @Param scan body dto.UpdateLocationRequest false "Scan location"
// @Success 200 {object} dto.ShipmentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipments/{trackingNumber}/pickup [post]
func (h *shipmentHandler) confirmPickup(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateLocationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
			return
		}
	}

	shipment, err := h.shipmentService.ConfirmPickup(c.Request.Context(), c.Param("trackingNumber"), req.Location, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShipmentResponse(shipment))
}

// bookShipment godoc
// @Summary Book a shipment with the carrier
// @Description Prices the shipment, debits the billing account and books with the carrier. The debit is reversed if the carrier call fails.
// @Tags shipments
// @Accept json
// @Produce json
// @Param trackingNumber path string true "Tracking number"
// @Param booking body dto.BookShipmentRequest false "Carrier cost quote"
// @Success 200 {object} dto.ShipmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Insufficient funds"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Shipment not bookable"
// @Security BearerAuth
// @Router /shipments/{trackingNumber}/book [post]
func (h *shipmentHandler) bookShipment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	var req dto.BookShipmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
			return
		}
	}

	shipment, err := h.shipmentService.Book(c.Request.Context(), c.Param("trackingNumber"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Shipment booked", slog.String("tracking_number", shipment.TrackingNumber))
	c.JSON(http.StatusOK, dto.ToShipmentResponse(shipment))
}

// cancelShipment godoc
// @Summary Cancel a shipment
// @Description Moves a non-terminal shipment to cancelled, refunding any fee already debited.
// @Tags shipments
// @Accept json
// @Produce json
// @Param trackingNumber path string true "Tracking number"
// @Param cancellation body dto.RejectPickupRequest false "Cancellation reason"
// @Success 200 {object} dto.ShipmentResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Shipment already terminal"
// @Security BearerAuth
// @Router /shipments/{trackingNumber}/cancel [post]
func (h *shipmentHandler) cancelShipment(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
			return
		}
	}

	shipment, err := h.shipmentService.Cancel(c.Request.Context(), c.Param("trackingNumber"), req.Reason, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShipmentResponse(shipment))
}

// updateLocation godoc
// @Summary Append a location checkpoint
// @Description Appends a checkpoint to the history without changing status.
// @Tags shipments
// @Accept json
// @Produce json
// @Param trackingNumber path string true "Tracking number"
// @Param location body dto.UpdateLocationRequest true "Checkpoint location"
// @Success 200 {object} dto.ShipmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Shipment already terminal"
// @Security BearerAuth
// @Router /shipments/{trackingNumber}/location [post]
func (h *shipmentHandler) updateLocation(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	shipment, err := h.shipmentService.UpdateLocation(c.Request.Context(), c.Param("trackingNumber"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShipmentResponse(shipment))
}

// deleteShipment godoc
// @Summary Delete a shipment
// @Description Hard-deletes a shipment with its items and history. Admin only.
// @Tags shipments
// @Param trackingNumber path string true "Tracking number"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipments/{trackingNumber} [delete]
func (h *shipmentHandler) deleteShipment(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	if err := h.shipmentService.DeleteShipment(c.Request.Context(), c.Param("trackingNumber"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
