package rest

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/wingedflyer/portal/internal/domain"
	authmw "github.com/wingedflyer/portal/internal/present/rest/middleware"
	"github.com/wingedflyer/portal/internal/present/rest/presenter"
	"github.com/wingedflyer/portal/internal/service"
	"github.com/wingedflyer/portal/internal/usecase"
)

type Handler struct {
	auth        *service.AuthService
	events      *service.EventService
	labels      *service.LabelService
	render      *service.RenderService
	qr          *service.QRService
	participant *usecase.ParticipantUsecase
	institution *usecase.InstitutionUsecase
	activity    *usecase.ActivityUsecase
	signal      *usecase.SignalUsecase
	instruction *usecase.InstructionUsecase
	flyer       *usecase.FlyerUsecase
	status      *usecase.StatusUsecase
}

func NewHandler(
	auth *service.AuthService,
	events *service.EventService,
	labels *service.LabelService,
	render *service.RenderService,
	qr *service.QRService,
	participant *usecase.ParticipantUsecase,
	institution *usecase.InstitutionUsecase,
	activity *usecase.ActivityUsecase,
	signal *usecase.SignalUsecase,
	instruction *usecase.InstructionUsecase,
	flyer *usecase.FlyerUsecase,
	status *usecase.StatusUsecase,
) *Handler {
	return &Handler{
		auth:        auth,
		events:      events,
		labels:      labels,
		render:      render,
		qr:          qr,
		participant: participant,
		institution: institution,
		activity:    activity,
		signal:      signal,
		instruction: instruction,
		flyer:       flyer,
		status:      status,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, auth *authmw.AuthMiddleware) {
	e.POST("/api/v1/participant/login", h.handleLogin(domain.ActorParticipant))
	e.POST("/api/v1/institution/login", h.handleLogin(domain.ActorInstitution))

	p := e.Group("/api/v1/participant", auth.Require(domain.ActorParticipant))
	p.POST("/logout", h.handleLogout)
	p.GET("/dashboard", h.handleParticipantDashboard)
	p.GET("/profile", h.handleProfile)
	p.PUT("/profile", h.handleUpdateProfile)
	p.POST("/working", h.handleToggleWorking)
	p.POST("/messages", h.handleSendMessage)
	p.GET("/activities", h.handleListActivities)
	p.POST("/activities", h.handleCreateActivity)
	p.PUT("/activities/:id", h.handleUpdateActivity)
	p.DELETE("/activities/:id", h.handleDeleteActivity)
	p.GET("/signals", h.handleSignalHistory)
	p.POST("/signals", h.handleReportSignal)
	p.DELETE("/signals/:id", h.handleDeleteSignal)
	p.GET("/instructions", h.handleInbox)
	p.GET("/instructions/:id", h.handleReadInstruction)
	p.POST("/instructions/:id/response", h.handleRespondInstruction)
	p.GET("/flyers", h.handleListFlyers)
	p.POST("/flyers", h.handleCreateFlyer)
	p.GET("/flyers/:id", h.handleGetFlyer)
	p.PUT("/flyers/:id", h.handleUpdateFlyer)
	p.DELETE("/flyers/:id", h.handleDeleteFlyer)
	p.GET("/flyers/:id/preview", h.handlePreviewFlyer)
	p.GET("/flyers/:id/views", h.handleFlyerViews)
	p.GET("/labels", h.handleLabels)

	i := e.Group("/api/v1/institution", auth.Require(domain.ActorInstitution))
	i.POST("/logout", h.handleLogout)
	i.GET("/dashboard", h.handleInstitutionDashboard)
	i.GET("/participants", h.handleListParticipants)
	i.POST("/participants", h.handleCreateParticipant)
	i.GET("/participants/:id", h.handleGetParticipant)
	i.PUT("/participants/:id", h.handleUpdateParticipant)
	i.DELETE("/participants/:id", h.handleDeleteParticipant)
	i.PUT("/participants/:id/amounts", h.handleUpdateAmounts)
	i.GET("/participants/:id/status", h.handleRefreshStatus)
	i.GET("/participants/:id/payments", h.handleListPayments)
	i.POST("/participants/:id/payments", h.handleRecordPayment)
	i.PUT("/payments/:id", h.handleCorrectPayment)
	i.GET("/participants/:id/communications", h.handleListCommunications)
	i.POST("/participants/:id/communications", h.handleLogCommunication)
	i.PUT("/communications/:id/answered", h.handleMarkAnswered)
	i.GET("/instructions", h.handleSentInstructions)
	i.POST("/instructions", h.handleComposeInstruction)
	i.GET("/instructions/:id", h.handleInstructionDetails)
	i.GET("/signals", h.handleSignalsOverview)
	i.GET("/labels", h.handleLabels)

	e.GET("/public/flyers/:id", h.handlePublicFlyer)
	e.GET("/public/flyers/:id/qr", h.handlePublicFlyerQR)
	e.GET("/public/micropage/:username", h.handleMicropage)
	e.GET("/public/micropage/:username/qr", h.handleMicropageQR)
	e.GET("/realtime", h.handleRealtime, auth.Require(domain.ActorInstitution))
}

// fail maps domain errors onto the HTTP surface. Not-found and
// cross-tenant denials stay generic so record existence is not leaked.
func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return presenter.NotFound(c, "not found")
	case errors.Is(err, domain.ErrDenied):
		return presenter.Denied(c, err.Error())
	case errors.Is(err, domain.LimitError{}):
		return presenter.BadRequest(c, err)
	default:
		return presenter.InternalError(c, err)
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string           `json:"token"`
	Kind    domain.ActorKind `json:"kind"`
	ActorID int64            `json:"actorId"`
	Display string           `json:"display"`
}

func (h *Handler) handleLogin(kind domain.ActorKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var req loginRequest
		if err := c.Bind(&req); err != nil {
			return presenter.BadRequest(c, err)
		}
		if req.Username == "" || req.Password == "" {
			return presenter.BadRequestMessage(c, "username and password are required")
		}

		session, err := h.auth.Login(ctx, kind, req.Username, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrBadCredentials) {
				return presenter.Unauthorized(c, err.Error())
			}
			return presenter.InternalError(c, err)
		}

		return presenter.OK(c, loginResponse{
			Token:   session.Token,
			Kind:    session.Kind,
			ActorID: session.ActorID,
			Display: session.Display,
		})
	}
}

func (h *Handler) handleLogout(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.auth.Logout(ctx, authmw.SessionToken(c)); err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleLabels(c echo.Context) error {
	ctx := c.Request().Context()

	labels, err := h.labels.Labels(ctx, authmw.ActorContextID(c))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, labels)
}
