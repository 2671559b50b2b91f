package dhl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	portssvc "github.com/swiftparcel/parcel_broker_app/internal/core/ports/services"
)

// maxAddressLineLen is the carrier's hard field limit; longer lines are
// truncated rather than rejected.
const maxAddressLineLen = 45

// Client books shipments against the DHL Express API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a carrier booking client. The timeout bounds each
// booking call end to end.
func NewClient(baseURL string, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ensure Client implements the portssvc.CarrierBooker interface
var _ portssvc.CarrierBooker = (*Client)(nil)

type bookingAddress struct {
	Name        string `json:"name"`
	CompanyName string `json:"companyName,omitempty"`
	Street      string `json:"addressLine1"`
	City        string `json:"cityName"`
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

type bookingPackage struct {
	Description string          `json:"description"`
	Weight      decimal.Decimal `json:"weight"`
	Length      decimal.Decimal `json:"length"`
	Width       decimal.Decimal `json:"width"`
	Height      decimal.Decimal `json:"height"`
	Quantity    int             `json:"quantity"`
}

type bookingRequest struct {
	CustomerReference string           `json:"customerReference"`
	ProductCode       string           `json:"productCode"`
	Shipper           bookingAddress   `json:"shipper"`
	Receiver          bookingAddress   `json:"receiver"`
	Packages          []bookingPackage `json:"packages"`
}

type bookingResponse struct {
	ShipmentTrackingNumber string `json:"shipmentTrackingNumber"`
	Documents              []struct {
		URL string `json:"url"`
	} `json:"documents"`
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func toBookingAddress(a domain.Address) bookingAddress {
	return bookingAddress{
		Name:        truncate(a.Name, maxAddressLineLen),
		CompanyName: truncate(a.CompanyName, maxAddressLineLen),
		Street:      truncate(a.Street, maxAddressLineLen),
		City:        a.City,
		PostalCode:  a.PostalCode,
		CountryCode: a.CountryCode,
		Phone:       a.Phone,
		Email:       a.Email,
	}
}

// BookShipment submits the shipment to the carrier and returns its
// acknowledgment. The request honors ctx cancellation on top of the client's
// own timeout.
func (c *Client) BookShipment(ctx context.Context, shipment *domain.Shipment) (*portssvc.CarrierBooking, error) {
	packages := make([]bookingPackage, len(shipment.Items))
	for i, item := range shipment.Items {
		packages[i] = bookingPackage{
			Description: item.Description,
			Weight:      item.WeightKg,
			Length:      item.LengthCm,
			Width:       item.WidthCm,
			Height:      item.HeightCm,
			Quantity:    item.Quantity,
		}
	}

	payload := bookingRequest{
		CustomerReference: shipment.TrackingNumber,
		ProductCode:       shipment.ServiceCode,
		Shipper:           toBookingAddress(shipment.Origin),
		Receiver:          toBookingAddress(shipment.Destination),
		Packages:          packages,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode booking request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/shipments", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("DHL-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("carrier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("carrier rejected booking: status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed bookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode carrier response: %w", err)
	}
	if parsed.ShipmentTrackingNumber == "" {
		return nil, fmt.Errorf("carrier response missing tracking number")
	}

	booking := &portssvc.CarrierBooking{
		CarrierReference: parsed.ShipmentTrackingNumber,
	}
	if len(parsed.Documents) > 0 {
		booking.LabelURL = parsed.Documents[0].URL
	}
	return booking, nil
}
