package rest

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/wingedflyer/portal/internal/domain"
	authmw "github.com/wingedflyer/portal/internal/present/rest/middleware"
	"github.com/wingedflyer/portal/internal/present/rest/presenter"
)

var flyerPage = template.Must(template.New("flyer").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>{{.Title}}</title></head>
<body>
<main>{{.Body}}</main>
</body>
</html>`))

var micropageTemplate = template.Must(template.New("micropage").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>{{.Name}}</title></head>
<body>
<h1>{{.Name}}</h1>
{{if .Working}}<p>Open for business</p>{{end}}
<p>Loan repaid: {{printf "%.0f" .RepaymentPercentage}}%</p>
<main>{{.Body}}</main>
</body>
</html>`))

func (h *Handler) handlePublicFlyer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid flyer id")
	}
	flyer, err := h.flyer.PublicView(ctx, id, c.RealIP())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.HTML(http.StatusNotFound, "<h1>Not Found</h1>")
		}
		return presenter.InternalError(c, err)
	}

	body, err := h.render.Render(ctx, flyer)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	var page strings.Builder
	err = flyerPage.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{Title: flyer.Title, Body: template.HTML(body)})
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return c.HTML(http.StatusOK, page.String())
}

func (h *Handler) handlePublicFlyerQR(c echo.Context) error {
	if _, err := pathID(c); err != nil {
		return presenter.BadRequestMessage(c, "invalid flyer id")
	}

	png, err := h.qr.PNG(h.qr.URL("/public/flyers/"+c.Param("id")), 0)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

func (h *Handler) handleMicropage(c echo.Context) error {
	ctx := c.Request().Context()

	username := c.Param("username")
	page, err := h.flyer.MicropageByUsername(ctx, username, c.RealIP())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.HTML(http.StatusNotFound, "<h1>Not Found</h1>")
		}
		return presenter.InternalError(c, err)
	}

	body := ""
	if page.Flyer != nil {
		body, err = h.render.Render(ctx, *page.Flyer)
		if err != nil {
			return presenter.InternalError(c, err)
		}
	}

	var out strings.Builder
	err = micropageTemplate.Execute(&out, struct {
		Name                string
		Working             bool
		RepaymentPercentage float64
		Body                template.HTML
	}{
		Name:                page.Participant.RealName,
		Working:             page.Participant.IsWorking,
		RepaymentPercentage: page.RepaymentPercentage,
		Body:                template.HTML(body),
	})
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return c.HTML(http.StatusOK, out.String())
}

func (h *Handler) handleMicropageQR(c echo.Context) error {
	png, err := h.qr.PNG(h.qr.URL("/public/micropage/"+c.Param("username")), 0)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleRealtime streams participant activity for the authenticated
// institution over a websocket.
func (h *Handler) handleRealtime(c echo.Context) error {
	responsibleID := authmw.ActorID(c)

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer ws.Close()

	ctx := c.Request().Context()

	events, err := h.events.Subscribe(ctx, responsibleID)
	if err != nil {
		slog.ErrorContext(
			ctx, "Failed to subscribe to event feed",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return nil
	}

	quit := make(chan struct{})

	go func() {
		defer close(quit)
		for {
			// clients send only heartbeats; any read error ends the session
			if _, _, err := ws.ReadMessage(); err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.DebugContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := ws.WriteJSON(event); err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
