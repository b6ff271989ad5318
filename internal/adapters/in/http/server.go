// Package http exposes the engine over a small JSON API. Handlers translate
// wire payloads into commands and queries and map the error taxonomy onto
// HTTP status codes; no business rule lives here.
package http

import (
	"errors"
	"net/http"
	"time"

	"orderhub/internal/core/application/usecases/commands"
	"orderhub/internal/core/application/usecases/queries"
	"orderhub/internal/core/domain/model/actor"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	requestTransitionHandler    commands.RequestTransitionCommandHandler
	setRiderAvailabilityHandler commands.SetRiderAvailabilityCommandHandler

	getActiveOrdersHandler    queries.GetActiveOrdersQueryHandler
	getAvailableRidersHandler queries.GetAvailableRidersQueryHandler

	validate *validator.Validate
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	requestTransitionHandler commands.RequestTransitionCommandHandler,
	setRiderAvailabilityHandler commands.SetRiderAvailabilityCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getAvailableRidersHandler queries.GetAvailableRidersQueryHandler,
) *Server {
	return &Server{
		requestTransitionHandler:    requestTransitionHandler,
		setRiderAvailabilityHandler: setRiderAvailabilityHandler,
		getActiveOrdersHandler:      getActiveOrdersHandler,
		getAvailableRidersHandler:   getAvailableRidersHandler,
		validate:                    validator.New(),
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders/:id/status", s.RequestTransition)
	v1.GET("/orders/active", s.GetActiveOrders)
	v1.POST("/riders/:id/availability", s.SetRiderAvailability)
	v1.GET("/riders/available", s.GetAvailableRiders)
}

// ErrorResponse is the wire shape of every error this API returns. Code is a
// stable machine-readable token from the error taxonomy; Reason carries the
// finer-grained cause when the error has one, such as "not-owner" on a
// forbidden or "payment-not-paid" on a guard failure.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

// TransitionRequest is the payload of POST /api/v1/orders/:id/status.
// Actor identity comes in the body; an authentication middleware in front of
// this API is expected to have verified it.
type TransitionRequest struct {
	ActorID           string  `json:"actorId" validate:"required,uuid"`
	ActorRole         string  `json:"actorRole" validate:"required"`
	OwnedRestaurantID *string `json:"ownedRestaurantId,omitempty" validate:"omitempty,uuid"`
	Status            string  `json:"status" validate:"required"`
	RiderID           *string `json:"riderId,omitempty" validate:"omitempty,uuid"`
}

// AvailabilityRequest is the payload of POST /api/v1/riders/:id/availability.
type AvailabilityRequest struct {
	Online *bool `json:"online" validate:"required"`
}

// OrderResponse is the wire shape of an order.
type OrderResponse struct {
	ID          string  `json:"id"`
	CustomerID  string  `json:"customerId"`
	RiderID     *string `json:"riderId,omitempty"`
	Status      string  `json:"status"`
	TotalAmount int64   `json:"totalAmount"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// RiderResponse is the wire shape of a rider.
type RiderResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// RequestTransition handles POST /api/v1/orders/:id/status.
func (s *Server) RequestTransition(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req TransitionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(ctx, err.Error())
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}
	role, err := actor.RoleFromString(req.ActorRole)
	if err != nil {
		return badRequest(ctx, "invalid actor role")
	}

	var ownedRestaurantID *kernel.UUID
	if req.OwnedRestaurantID != nil {
		parsed, idErr := kernel.UUIDFromString(*req.OwnedRestaurantID)
		if idErr != nil {
			return badRequest(ctx, "invalid owned restaurant id")
		}
		ownedRestaurantID = &parsed
	}

	a, err := actor.NewActor(actorID, role, ownedRestaurantID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	toStatus, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "invalid status")
	}

	var riderID *kernel.UUID
	if req.RiderID != nil {
		parsed, idErr := kernel.UUIDFromString(*req.RiderID)
		if idErr != nil {
			return badRequest(ctx, "invalid rider id")
		}
		riderID = &parsed
	}

	cmd, err := commands.NewRequestTransitionCommand(orderID, a, toStatus, riderID)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.requestTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// SetRiderAvailability handles POST /api/v1/riders/:id/availability.
func (s *Server) SetRiderAvailability(ctx echo.Context) error {
	riderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid rider id")
	}

	var req AvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewSetRiderAvailabilityCommand(riderID, *req.Online)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.setRiderAvailabilityHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, RiderResponse{
		ID:        updated.ID().String(),
		UserID:    updated.UserID().String(),
		Status:    updated.Status().String(),
		UpdatedAt: updated.UpdatedAt().Format(time.RFC3339),
	})
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		var riderID *string
		if o.RiderID != nil {
			raw := o.RiderID.String()
			riderID = &raw
		}
		response[i] = OrderResponse{
			ID:          o.ID.String(),
			CustomerID:  o.CustomerID.String(),
			RiderID:     riderID,
			Status:      o.Status.String(),
			TotalAmount: o.TotalAmount,
			CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt:   o.UpdatedAt.UTC().Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAvailableRiders handles GET /api/v1/riders/available.
func (s *Server) GetAvailableRiders(ctx echo.Context) error {
	query := queries.NewGetAvailableRidersQuery()

	riders, err := s.getAvailableRidersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]RiderResponse, len(riders))
	for i, r := range riders {
		response[i] = RiderResponse{
			ID:        r.ID.String(),
			UserID:    r.UserID.String(),
			Status:    "available",
			UpdatedAt: r.UpdatedAt.UTC().Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func toOrderResponse(o *order.Order) OrderResponse {
	var riderID *string
	if id := o.RiderID(); id != nil {
		raw := id.String()
		riderID = &raw
	}

	return OrderResponse{
		ID:          o.ID().String(),
		CustomerID:  o.CustomerID().String(),
		RiderID:     riderID,
		Status:      o.Status().String(),
		TotalAmount: o.TotalAmount(),
		CreatedAt:   o.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:   o.UpdatedAt().UTC().Format(time.RFC3339),
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{Code: "invalid-value", Message: message})
}

// writeError maps a taxonomy error onto its HTTP status. Unknown errors are
// reported as 500 without leaking internals to the client.
func writeError(ctx echo.Context, err error) error {
	code := errs.CodeOf(err)

	var status int
	switch code {
	case "not-found":
		status = http.StatusNotFound
	case "forbidden":
		status = http.StatusForbidden
	case "conflict":
		status = http.StatusConflict
	case "invalid-transition", "guard-failed", "rider-unavailable", "has-active-orders":
		status = http.StatusUnprocessableEntity
	case "invalid-value", "out-of-range", "required-value":
		status = http.StatusBadRequest
	case "storage-unavailable":
		status = http.StatusServiceUnavailable
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Code: "internal", Message: "internal error"})
	}

	return ctx.JSON(status, ErrorResponse{Code: code, Message: err.Error(), Reason: reasonOf(err)})
}

// reasonOf extracts the structured reason from errors that carry one.
func reasonOf(err error) string {
	var forbidden *errs.ForbiddenError
	if errors.As(err, &forbidden) {
		return string(forbidden.Reason)
	}

	var guardFailed *errs.GuardFailedError
	if errors.As(err, &guardFailed) {
		return string(guardFailed.Reason)
	}

	return ""
}
