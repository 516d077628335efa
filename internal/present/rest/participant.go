package rest

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wingedflyer/portal/internal/domain"
	authmw "github.com/wingedflyer/portal/internal/present/rest/middleware"
	"github.com/wingedflyer/portal/internal/present/rest/presenter"
	"github.com/wingedflyer/portal/internal/usecase"
)

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func (h *Handler) handleParticipantDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	dashboard, err := h.participant.Dashboard(ctx, authmw.ActorID(c))
	if err != nil {
		return fail(c, err)
	}
	labels, err := h.labels.Labels(ctx, authmw.ActorContextID(c))
	if err != nil {
		return fail(c, err)
	}

	return presenter.OK(c, struct {
		usecase.ParticipantDashboard
		Labels map[string]string `json:"labels"`
	}{ParticipantDashboard: dashboard, Labels: labels})
}

func (h *Handler) handleProfile(c echo.Context) error {
	ctx := c.Request().Context()

	profile, err := h.participant.Profile(ctx, authmw.ActorID(c))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, profile)
}

type profileRequest struct {
	RealName    string `json:"realName"`
	Address     string `json:"address"`
	Telephone   string `json:"telephone"`
	Email       string `json:"email"`
	SocialMedia string `json:"socialMedia"`
}

func (h *Handler) handleUpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	err := h.participant.UpdateProfile(ctx, authmw.ActorID(c), usecase.ProfileInput{
		RealName:    req.RealName,
		Address:     req.Address,
		Telephone:   req.Telephone,
		Email:       req.Email,
		SocialMedia: req.SocialMedia,
	})
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleToggleWorking(c echo.Context) error {
	ctx := c.Request().Context()

	working, err := h.participant.ToggleWorking(ctx, authmw.ActorID(c))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, echo.Map{"isWorking": working})
}

type messageRequest struct {
	Body      string `json:"body"`
	Proactive bool   `json:"proactive"`
}

func (h *Handler) handleSendMessage(c echo.Context) error {
	ctx := c.Request().Context()

	var req messageRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.Body == "" {
		return presenter.BadRequestMessage(c, "message body is required")
	}

	comm, err := h.participant.SendMessage(ctx, authmw.ActorID(c), req.Body, req.Proactive)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, comm)
}

func (h *Handler) handleListActivities(c echo.Context) error {
	ctx := c.Request().Context()

	activities, err := h.activity.List(ctx, authmw.ActorID(c))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, activities)
}

type activityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

func (h *Handler) handleCreateActivity(c echo.Context) error {
	ctx := c.Request().Context()

	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.Name == "" {
		return presenter.BadRequestMessage(c, "name is required")
	}

	activity, err := h.activity.Create(ctx, authmw.ActorID(c), authmw.ActorContextID(c), req.Name, req.Description)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, activity)
}

func (h *Handler) handleUpdateActivity(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid activity id")
	}
	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	activity, err := h.activity.Update(ctx, authmw.ActorID(c), id, req.Name, req.Description, req.IsActive)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, activity)
}

func (h *Handler) handleDeleteActivity(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid activity id")
	}
	if err := h.activity.Delete(ctx, authmw.ActorID(c), id); err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleSignalHistory(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 50
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid limit parameter")
		}
		limit = parsed
	}
	if limit > 200 {
		limit = 200
	}

	signals, err := h.signal.History(ctx, authmw.ActorID(c), limit)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, signals)
}

type signalRequest struct {
	WorkActivityID int64  `json:"workActivityId"`
	Outcome        string `json:"outcome"`
	Note           string `json:"note"`
	SignalDate     string `json:"signalDate"`
}

func (h *Handler) handleReportSignal(c echo.Context) error {
	ctx := c.Request().Context()

	var req signalRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	var signalDate time.Time
	if req.SignalDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.SignalDate)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid signalDate parameter")
		}
		signalDate = parsed
	}

	signal, err := h.signal.Report(ctx, authmw.ActorID(c), req.WorkActivityID,
		domain.SignalOutcome(req.Outcome), req.Note, signalDate)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, signal)
}

func (h *Handler) handleDeleteSignal(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid signal id")
	}
	if err := h.signal.Delete(ctx, authmw.ActorID(c), id); err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleInbox(c echo.Context) error {
	ctx := c.Request().Context()

	inbox, err := h.instruction.Inbox(ctx, authmw.ActorID(c))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, inbox)
}

func (h *Handler) handleReadInstruction(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid instruction id")
	}
	item, err := h.instruction.Read(ctx, authmw.ActorID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, item)
}

type responseRequest struct {
	Response string `json:"response"`
}

func (h *Handler) handleRespondInstruction(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid instruction id")
	}
	var req responseRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	if err := h.instruction.Respond(ctx, authmw.ActorID(c), id, req.Response); err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleListFlyers(c echo.Context) error {
	ctx := c.Request().Context()

	flyers, err := h.flyer.List(ctx, authmw.ActorID(c))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, flyers)
}

type flyerRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPublic bool   `json:"isPublic"`
}

func (h *Handler) handleCreateFlyer(c echo.Context) error {
	ctx := c.Request().Context()

	var req flyerRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	flyer, err := h.flyer.Create(ctx, authmw.ActorID(c), authmw.ActorContextID(c), req.Title, req.Content, req.IsPublic)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, flyer)
}

func (h *Handler) handleGetFlyer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid flyer id")
	}
	flyer, err := h.flyer.Get(ctx, authmw.ActorID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, flyer)
}

func (h *Handler) handleUpdateFlyer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid flyer id")
	}
	var req flyerRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	flyer, err := h.flyer.Update(ctx, authmw.ActorID(c), id, req.Title, req.Content, req.IsPublic)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, flyer)
}

func (h *Handler) handleDeleteFlyer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid flyer id")
	}
	if err := h.flyer.Delete(ctx, authmw.ActorID(c), id); err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handlePreviewFlyer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid flyer id")
	}
	flyer, err := h.flyer.Get(ctx, authmw.ActorID(c), id)
	if err != nil {
		return fail(c, err)
	}

	html, err := h.render.Render(ctx, flyer)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, echo.Map{"html": html})
}

func (h *Handler) handleFlyerViews(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid flyer id")
	}
	views, err := h.flyer.Views(ctx, authmw.ActorID(c), id, 100)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, views)
}
