package http

import (
	"log/slog"
	"net/http"
	"time"

	"livestock/internal/core/application/usecases/commands"
	"livestock/internal/core/application/usecases/queries"
	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/order"
	"livestock/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateSite         commands.CreateSiteCommandHandler
	SetSiteCapacity    commands.SetSiteCapacityCommandHandler
	RegisterAnimal     commands.RegisterAnimalCommandHandler
	ChangeAnimalStatus commands.ChangeAnimalStatusCommandHandler
	RecordColdWeight   commands.RecordColdWeightCommandHandler
	SetAnimalHealth    commands.SetAnimalHealthCommandHandler

	CreateHolding       commands.CreateHoldingCommandHandler
	AdmitToHolding      commands.AdmitToHoldingCommandHandler
	WithdrawFromHolding commands.WithdrawFromHoldingCommandHandler
	CancelHolding       commands.CancelHoldingCommandHandler
	FinalizeHolding     commands.FinalizeHoldingCommandHandler

	CreateTransfer     commands.CreateTransferCommandHandler
	AddToTransfer      commands.AddToTransferCommandHandler
	RemoveFromTransfer commands.RemoveFromTransferCommandHandler
	TransferAction     commands.TransferActionCommandHandler
	ConfirmReception   commands.ConfirmReceptionCommandHandler

	CreateOrder    commands.CreateOrderCommandHandler
	UpdateOrder    commands.UpdateOrderCommandHandler
	SetOrderStatus commands.SetOrderStatusCommandHandler
	DeleteOrder    commands.DeleteOrderCommandHandler

	SiteCapacity   queries.GetSiteCapacityQueryHandler
	StaleTransfers queries.GetStaleTransfersQueryHandler
}

// Server translates HTTP requests into commands and queries. It holds no
// state of its own.
type Server struct {
	h          Handlers
	logger     *slog.Logger
	staleAfter time.Duration
	clock      func() time.Time
}

func NewServer(h Handlers, logger *slog.Logger, staleAfter time.Duration) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		h:          h,
		logger:     logger.With("component", "http"),
		staleAfter: staleAfter,
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

// Register mounts the API routes on g, conventionally /api/v1.
func (s *Server) Register(g *echo.Group) {
	g.POST("/sites", s.CreateSite)
	g.PUT("/sites/:id/capacity", s.SetSiteCapacity)
	g.GET("/sites/:id/capacity", s.GetSiteCapacity)

	g.POST("/animals", s.RegisterAnimal)
	g.POST("/animals/status", s.ChangeAnimalStatus)
	g.PUT("/animals/:id/cold-weight", s.RecordColdWeight)
	g.PUT("/animals/:id/health", s.SetAnimalHealth)

	g.POST("/holdings", s.CreateHolding)
	g.POST("/holdings/:id/admit", s.AdmitToHolding)
	g.POST("/holdings/:id/withdraw", s.WithdrawFromHolding)
	g.POST("/holdings/:id/cancel", s.CancelHolding)
	g.POST("/holdings/:id/finalize", s.FinalizeHolding)

	g.POST("/transfers", s.CreateTransfer)
	g.GET("/transfers/stale", s.GetStaleTransfers)
	g.POST("/transfers/:id/animals", s.AddToTransfer)
	g.DELETE("/transfers/:id/animals/:animalId", s.RemoveFromTransfer)
	g.POST("/transfers/:id/dispatch", s.transferAction(commands.DispatchTransfer))
	g.POST("/transfers/:id/cancel", s.transferAction(commands.CancelTransfer))
	g.POST("/transfers/:id/reception/begin", s.transferAction(commands.BeginReception))
	g.POST("/transfers/:id/reception/cancel", s.transferAction(commands.CancelReception))
	g.POST("/transfers/:id/reception/confirm", s.ConfirmReception)

	g.POST("/orders", s.CreateOrder)
	g.PUT("/orders/:id", s.UpdateOrder)
	g.POST("/orders/:id/status", s.SetOrderStatus)
	g.DELETE("/orders/:id", s.DeleteOrder)
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// CreateSite handles POST /api/v1/sites.
func (s *Server) CreateSite(c echo.Context) error {
	var req createSiteRequest
	if err := c.Bind(&req); err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewCreateSiteCommand(req.Name, req.Location, req.Capacities)
	if err != nil {
		return s.invalid(c, err)
	}
	created, err := s.h.CreateSite.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusCreated, newSiteResponse(created))
}

// SetSiteCapacity handles PUT /api/v1/sites/{id}/capacity.
func (s *Server) SetSiteCapacity(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.invalid(c, err)
	}
	var req setCapacityRequest
	if err = c.Bind(&req); err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewSetSiteCapacityCommand(id, req.Species, req.Capacity)
	if err != nil {
		return s.invalid(c, err)
	}
	updated, err := s.h.SetSiteCapacity.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusOK, newSiteResponse(updated))
}

// GetSiteCapacity handles GET /api/v1/sites/{id}/capacity.
func (s *Server) GetSiteCapacity(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.invalid(c, err)
	}
	query, err := queries.NewGetSiteCapacityQuery(id)
	if err != nil {
		return s.invalid(c, err)
	}
	capacity, err := s.h.SiteCapacity.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusOK, newCapacityResponse(capacity))
}

// RegisterAnimal handles POST /api/v1/animals.
func (s *Server) RegisterAnimal(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.invalid(c, err)
	}
	var req registerAnimalRequest
	if err = c.Bind(&req); err != nil {
		return s.invalid(c, err)
	}
	sex, err := animal.ParseSex(req.Sex)
	if err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewRegisterAnimalCommand(req.Tag, req.Species, sex, req.LiveWeight, req.SiteID, actor)
	if err != nil {
		return s.invalid(c, err)
	}
	registered, err := s.h.RegisterAnimal.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusCreated, newAnimalResponse(registered))
}

// ChangeAnimalStatus handles POST /api/v1/animals/status.
func (s *Server) ChangeAnimalStatus(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.invalid(c, err)
	}
	var req changeStatusRequest
	if err = c.Bind(&req); err != nil {
		return s.invalid(c, err)
	}
	target, err := animal.ParseStatus(req.Status)
	if err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewChangeAnimalStatusCommand(req.AnimalIDs, target, req.Reason, actor)
	if err != nil {
		return s.invalid(c, err)
	}
	change, err := s.h.ChangeAnimalStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusOK, newStatusChangeResponse(change))
}

// RecordColdWeight handles PUT /api/v1/animals/{id}/cold-weight.
func (s *Server) RecordColdWeight(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.invalid(c, err)
	}
	var req coldWeightRequest
	if err = c.Bind(&req); err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewRecordColdWeightCommand(id, req.Weight)
	if err != nil {
		return s.invalid(c, err)
	}
	updated, err := s.h.RecordColdWeight.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusOK, newAnimalResponse(updated))
}

// SetAnimalHealth handles PUT /api/v1/animals/{id}/health.
func (s *Server) SetAnimalHealth(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.invalid(c, err)
	}
	var req healthRequest
	if err = c.Bind(&req); err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewSetAnimalHealthCommand(id, req.Healthy, req.UrgentSlaughter)
	if err != nil {
		return s.invalid(c, err)
	}
	updated, err := s.h.SetAnimalHealth.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusOK, newAnimalResponse(updated))
}

// CreateHolding handles POST /api/v1/holdings. start_time defaults to now.
func (s *Server) CreateHolding(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.invalid(c, err)
	}
	var req createHoldingRequest
	if err = c.Bind(&req); err != nil {
		return s.invalid(c, err)
	}
	startAt := s.clock()
	if req.StartTime != nil {
		startAt = *req.StartTime
	}
	cmd, err := commands.NewCreateHoldingCommand(req.SiteID, req.Species, startAt, req.Note, actor)
	if err != nil {
		return s.invalid(c, err)
	}
	session, err := s.h.CreateHolding.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusCreated, newSessionResponse(session))
}

// AdmitToHolding handles POST /api/v1/holdings/{id}/admit.
func (s *Server) AdmitToHolding(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.invalid(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return s.invalid(c, err)
	}
	var req animalIDsRequest
	if err = c.Bind(&req); err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewAdmitToHoldingCommand(id, req.AnimalIDs, actor)
	if err != nil {
		return s.invalid(c, err)
	}
	session, err := s.h.AdmitToHolding.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusOK, newSessionResponse(session))
}

// WithdrawFromHolding handles POST /api/v1/holdings/{id}/withdraw.
func (s *Server) WithdrawFromHolding(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.invalid(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return s.invalid(c, err)
	}
	var req animalIDsRequest
	if err = c.Bind(&req); err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewWithdrawFromHoldingCommand(id, req.AnimalIDs, actor)
	if err != nil {
		return s.invalid(c, err)
	}
	session, err := s.h.WithdrawFromHolding.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusOK, newSessionResponse(session))
}

// CancelHolding handles POST /api/v1/holdings/{id}/cancel.
func (s *Server) CancelHolding(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.invalid(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewCancelHoldingCommand(id, actor)
	if err != nil {
		return s.invalid(c, err)
	}
	session, err := s.h.CancelHolding.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusOK, newSessionResponse(session))
}

// FinalizeHolding handles POST /api/v1/holdings/{id}/finalize.
func (s *Server) FinalizeHolding(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.invalid(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return s.invalid(c, err)
	}
	var req finalizeRequest
	if err = c.Bind(&req); err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewFinalizeHoldingCommand(id, req.payload(), actor)
	if err != nil {
		return s.invalid(c, err)
	}
	session, err := s.h.FinalizeHolding.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusOK, newSessionResponse(session))
}

// CreateTransfer handles POST /api/v1/transfers.
func (s *Server) CreateTransfer(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.invalid(c, err)
	}
	var req createTransferRequest
	if err = c.Bind(&req); err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewCreateTransferCommand(req.SourceID, req.DestinationID, req.AnimalIDs, req.DeclaredCount, req.Motive, actor)
	if err != nil {
		return s.invalid(c, err)
	}
	created, err := s.h.CreateTransfer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusCreated, newTransferResponse(created))
}

// AddToTransfer handles POST /api/v1/transfers/{id}/animals.
func (s *Server) AddToTransfer(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.invalid(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return s.invalid(c, err)
	}
	var req transferMemberRequest
	if err = c.Bind(&req); err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewAddToTransferCommand(id, req.AnimalID, actor)
	if err != nil {
		return s.invalid(c, err)
	}
	updated, err := s.h.AddToTransfer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusOK, newTransferResponse(updated))
}

// RemoveFromTransfer handles DELETE /api/v1/transfers/{id}/animals/{animalId}.
func (s *Server) RemoveFromTransfer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.invalid(c, err)
	}
	animalID, err := pathID(c, "animalId")
	if err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewRemoveFromTransferCommand(id, animalID)
	if err != nil {
		return s.invalid(c, err)
	}
	updated, err := s.h.RemoveFromTransfer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusOK, newTransferResponse(updated))
}

// transferAction serves the body-less lifecycle steps. Cancellations read an
// optional {"reason": ...} body.
func (s *Server) transferAction(action commands.TransferAction) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := actorOf(c)
		if err != nil {
			return s.invalid(c, err)
		}
		id, err := pathID(c, "id")
		if err != nil {
			return s.invalid(c, err)
		}
		var req reasonRequest
		if err = c.Bind(&req); err != nil {
			return s.invalid(c, err)
		}
		cmd, err := commands.NewTransferActionCommand(id, action, req.Reason, actor)
		if err != nil {
			return s.invalid(c, err)
		}
		updated, err := s.h.TransferAction.Handle(c.Request().Context(), cmd)
		if err != nil {
			return s.fail(c, err)
		}
		return ok(c, http.StatusOK, newTransferResponse(updated))
	}
}

// ConfirmReception handles POST /api/v1/transfers/{id}/reception/confirm.
func (s *Server) ConfirmReception(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.invalid(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return s.invalid(c, err)
	}
	var req confirmReceptionRequest
	if err = c.Bind(&req); err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewConfirmReceptionCommand(id, req.confirmation(), actor)
	if err != nil {
		return s.invalid(c, err)
	}
	updated, err := s.h.ConfirmReception.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusOK, newTransferResponse(updated))
}

// GetStaleTransfers handles GET /api/v1/transfers/stale?older_than=36h.
func (s *Server) GetStaleTransfers(c echo.Context) error {
	olderThan := s.staleAfter
	if raw := c.QueryParam("older_than"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return s.invalid(c, errs.NewValueIsInvalidErrorWithCause("older_than", err))
		}
		olderThan = parsed
	}
	query, err := queries.NewGetStaleTransfersQuery(olderThan, s.clock())
	if err != nil {
		return s.invalid(c, err)
	}
	stale, err := s.h.StaleTransfers.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	out := make([]staleTransferResponse, 0, len(stale))
	for _, t := range stale {
		out = append(out, staleTransferResponse(t))
	}
	return ok(c, http.StatusOK, out)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.invalid(c, err)
	}
	var req orderRequest
	if err = c.Bind(&req); err != nil {
		return s.invalid(c, err)
	}
	details, err := req.details()
	if err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewCreateOrderCommand(details, actor)
	if err != nil {
		return s.invalid(c, err)
	}
	created, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusCreated, newOrderResponse(created))
}

// UpdateOrder handles PUT /api/v1/orders/{id}.
func (s *Server) UpdateOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.invalid(c, err)
	}
	var req orderRequest
	if err = c.Bind(&req); err != nil {
		return s.invalid(c, err)
	}
	details, err := req.details()
	if err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewUpdateOrderCommand(id, details)
	if err != nil {
		return s.invalid(c, err)
	}
	updated, err := s.h.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusOK, newOrderResponse(updated))
}

// SetOrderStatus handles POST /api/v1/orders/{id}/status.
func (s *Server) SetOrderStatus(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.invalid(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return s.invalid(c, err)
	}
	var req orderStatusRequest
	if err = c.Bind(&req); err != nil {
		return s.invalid(c, err)
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.invalid(c, err)
	}
	var deliveredOn *time.Time
	if req.DeliveredOn != nil {
		deliveredOn = &req.DeliveredOn.Time
	}
	cmd, err := commands.NewSetOrderStatusCommand(id, target, deliveredOn, actor)
	if err != nil {
		return s.invalid(c, err)
	}
	updated, err := s.h.SetOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusOK, newOrderResponse(updated))
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) DeleteOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.invalid(c, err)
	}
	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return s.invalid(c, err)
	}
	if err = s.h.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return ok(c, http.StatusOK, nil)
}
