package rest

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wingedflyer/portal/internal/domain"
	authmw "github.com/wingedflyer/portal/internal/present/rest/middleware"
	"github.com/wingedflyer/portal/internal/present/rest/presenter"
	"github.com/wingedflyer/portal/internal/usecase"
)

func (h *Handler) handleInstitutionDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	dashboard, err := h.institution.Dashboard(ctx, authmw.ActorID(c))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, dashboard)
}

func (h *Handler) handleListParticipants(c echo.Context) error {
	ctx := c.Request().Context()

	dashboard, err := h.institution.Dashboard(ctx, authmw.ActorID(c))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, dashboard.Participants)
}

type createParticipantRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	RealName    string `json:"realName"`
	Address     string `json:"address"`
	Telephone   string `json:"telephone"`
	Email       string `json:"email"`
	SocialMedia string `json:"socialMedia"`
}

func (h *Handler) handleCreateParticipant(c echo.Context) error {
	ctx := c.Request().Context()

	var req createParticipantRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.Username == "" {
		return presenter.BadRequestMessage(c, "username is required")
	}

	created, err := h.institution.CreateParticipant(ctx, authmw.ActorID(c), usecase.CreateParticipantInput{
		Username:    req.Username,
		Password:    req.Password,
		RealName:    req.RealName,
		Address:     req.Address,
		Telephone:   req.Telephone,
		Email:       req.Email,
		SocialMedia: req.SocialMedia,
	})
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, created)
}

func (h *Handler) handleGetParticipant(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid participant id")
	}
	participant, err := h.institution.GetParticipant(ctx, authmw.ActorID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, participant)
}

func (h *Handler) handleUpdateParticipant(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid participant id")
	}
	var req createParticipantRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	err = h.institution.UpdateParticipant(ctx, authmw.ActorID(c), domain.Participant{
		ID:          id,
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

func (h *Handler) handleDeleteParticipant(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid participant id")
	}
	if err := h.institution.DeleteParticipant(ctx, authmw.ActorID(c), id); err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

type amountsRequest struct {
	AmountBorrowed float64 `json:"amountBorrowed"`
	AmountRepaid   float64 `json:"amountRepaid"`
}

func (h *Handler) handleUpdateAmounts(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid participant id")
	}
	var req amountsRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.AmountBorrowed < 0 || req.AmountRepaid < 0 {
		return presenter.BadRequestMessage(c, "amounts must not be negative")
	}

	err = h.institution.UpdateAmounts(ctx, authmw.ActorID(c), id, req.AmountBorrowed, req.AmountRepaid)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

// handleRefreshStatus recomputes the traffic-light classification and
// persists it onto the participant row.
func (h *Handler) handleRefreshStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid participant id")
	}
	if _, err := h.institution.GetParticipant(ctx, authmw.ActorID(c), id); err != nil {
		return fail(c, err)
	}

	classification, err := h.status.Refresh(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, classification)
}

type paymentRequest struct {
	Amount float64 `json:"amount"`
	DueOn  string  `json:"dueOn"`
	PaidOn string  `json:"paidOn"`
}

func (r paymentRequest) dates() (time.Time, time.Time, error) {
	dueOn, err := time.Parse(time.RFC3339, r.DueOn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	paidOn, err := time.Parse(time.RFC3339, r.PaidOn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return dueOn, paidOn, nil
}

func (h *Handler) handleListPayments(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid participant id")
	}
	payments, err := h.institution.ListPayments(ctx, authmw.ActorID(c), id, 100)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, payments)
}

func (h *Handler) handleRecordPayment(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid participant id")
	}
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	dueOn, paidOn, err := req.dates()
	if err != nil {
		return presenter.BadRequestMessage(c, "dueOn and paidOn must be RFC3339 timestamps")
	}

	payment, err := h.institution.RecordPayment(ctx, authmw.ActorID(c), id, req.Amount, dueOn, paidOn)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, payment)
}

func (h *Handler) handleCorrectPayment(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid payment id")
	}
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	dueOn, paidOn, err := req.dates()
	if err != nil {
		return presenter.BadRequestMessage(c, "dueOn and paidOn must be RFC3339 timestamps")
	}

	payment, err := h.institution.CorrectPayment(ctx, authmw.ActorID(c), id, req.Amount, dueOn, paidOn)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, payment)
}

type communicationRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (h *Handler) handleListCommunications(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid participant id")
	}
	comms, err := h.institution.ListCommunications(ctx, authmw.ActorID(c), id, 100)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, comms)
}

func (h *Handler) handleLogCommunication(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid participant id")
	}
	var req communicationRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	comm, err := h.institution.LogCommunication(ctx, authmw.ActorID(c), id, req.Subject, req.Body)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, comm)
}

func (h *Handler) handleMarkAnswered(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid communication id")
	}
	if err := h.institution.MarkCommunicationAnswered(ctx, authmw.ActorID(c), id); err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleSentInstructions(c echo.Context) error {
	ctx := c.Request().Context()

	sent, err := h.instruction.Sent(ctx, authmw.ActorID(c))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, sent)
}

type composeInstructionRequest struct {
	Recipients       []int64 `json:"recipients"`
	Subject          string  `json:"subject"`
	Body             string  `json:"body"`
	ResponseTemplate string  `json:"responseTemplate"`
}

func (h *Handler) handleComposeInstruction(c echo.Context) error {
	ctx := c.Request().Context()

	var req composeInstructionRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	instruction, err := h.instruction.Compose(ctx, authmw.ActorID(c), authmw.ActorContextID(c),
		usecase.ComposeInstructionInput{
			Recipients:       req.Recipients,
			Subject:          req.Subject,
			Body:             req.Body,
			ResponseTemplate: domain.ResponseTemplate(req.ResponseTemplate),
			SentBy:           authmw.ActorDisplay(c),
		})
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, instruction)
}

func (h *Handler) handleInstructionDetails(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid instruction id")
	}
	details, err := h.instruction.Details(ctx, authmw.ActorID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, details)
}

func (h *Handler) handleSignalsOverview(c echo.Context) error {
	ctx := c.Request().Context()

	overview, err := h.signal.Overview(ctx, authmw.ActorID(c))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, overview)
}
