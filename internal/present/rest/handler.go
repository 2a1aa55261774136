package rest

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
	"github.com/sahzadahmad246/unmatchedlines/internal/policy"
	"github.com/sahzadahmad246/unmatchedlines/internal/present/rest/presenter"
	"github.com/sahzadahmad246/unmatchedlines/internal/service"
	"github.com/sahzadahmad246/unmatchedlines/internal/usecase"
)

type Handler struct {
	contents    *usecase.ContentUsecase
	actors      *usecase.ActorUsecase
	engagement  *usecase.EngagementUsecase
	collections *usecase.CollectionUsecase
	curation    *usecase.CurationUsecase
	signal      *service.SignalService
	auth        *service.AuthService
}

func NewHandler(
	contents *usecase.ContentUsecase,
	actors *usecase.ActorUsecase,
	engagement *usecase.EngagementUsecase,
	collections *usecase.CollectionUsecase,
	curation *usecase.CurationUsecase,
	signal *service.SignalService,
	auth *service.AuthService,
) *Handler {
	return &Handler{
		contents:    contents,
		actors:      actors,
		engagement:  engagement,
		collections: collections,
		curation:    curation,
		signal:      signal,
		auth:        auth,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/actors", h.handleRegisterActor)
	e.GET("/api/v1/actors/:slug", h.handleGetActor)
	e.PUT("/api/v1/actors/me", h.handleUpdateProfile)
	e.DELETE("/api/v1/actors/:id", h.handleDeleteActor)

	e.POST("/api/v1/contents", h.handleCreateContent)
	e.GET("/api/v1/contents", h.handleListContents)
	e.GET("/api/v1/contents/:slug", h.handleGetContent)
	e.PUT("/api/v1/contents/:id", h.handleUpdateContent)
	e.DELETE("/api/v1/contents/:id", h.handleDeleteContent)
	e.POST("/api/v1/contents/:id/like", h.handleLike)
	e.POST("/api/v1/contents/:id/bookmark", h.handleBookmark)

	e.GET("/api/v1/collections", h.handleListCollections)
	e.POST("/api/v1/collections", h.handleCreateCollection)
	e.PUT("/api/v1/collections/:id", h.handleUpdateCollection)
	e.DELETE("/api/v1/collections/:id", h.handleDeleteCollection)

	e.POST("/api/v1/curation/refresh", h.handleCurationRefresh)

	e.GET("/realtime", h.handleRealtime)
}

// requester pulls the authenticated identity off the request context. The
// zero value means anonymous.
func requester(c echo.Context) policy.Requester {
	ctx := c.Request().Context()
	req := policy.Requester{}
	if id, ok := ctx.Value(domain.RequesterIDCtxKey).(string); ok {
		req.ID = id
	}
	if role, ok := ctx.Value(domain.RequesterRoleCtxKey).(domain.Role); ok {
		req.Role = role
	}
	return req
}

type registerActorRequest struct {
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Bio       string   `json:"bio"`
	Location  string   `json:"location"`
	Interests []string `json:"interests"`
}

func (h *Handler) handleRegisterActor(c echo.Context) error {
	ctx := c.Request().Context()

	var req registerActorRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	actor, err := h.actors.Register(ctx, usecase.RegisterActorInput{
		Name:      req.Name,
		Role:      req.Role,
		Bio:       req.Bio,
		Location:  req.Location,
		Interests: req.Interests,
	})
	if err != nil {
		return presenter.Error(c, err)
	}

	token, err := h.auth.IssueJwt(actor)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	return presenter.Created(c, echo.Map{"actor": actor, "token": token})
}

func (h *Handler) handleGetActor(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := h.actors.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, actor)
}

type updateProfileRequest struct {
	Name      *string   `json:"name"`
	Bio       *string   `json:"bio"`
	Location  *string   `json:"location"`
	Interests *[]string `json:"interests"`
}

func (h *Handler) handleUpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	req := requester(c)
	if req.ID == "" {
		return presenter.Forbidden(c, "authentication required")
	}

	var body updateProfileRequest
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}

	actor, err := h.actors.UpdateProfile(ctx, req.ID, usecase.UpdateActorInput{
		Name:      body.Name,
		Bio:       body.Bio,
		Location:  body.Location,
		Interests: body.Interests,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, actor)
}

func (h *Handler) handleDeleteActor(c echo.Context) error {
	ctx := c.Request().Context()

	req := requester(c)
	if req.ID == "" {
		return presenter.Forbidden(c, "authentication required")
	}

	if err := h.actors.Delete(ctx, req, c.Param("id")); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

type contentRequest struct {
	AuthorID   string           `json:"authorId"`
	Title      domain.Localized `json:"title"`
	Body       domain.Localized `json:"body"`
	Summary    domain.Localized `json:"summary"`
	DidYouKnow domain.Localized `json:"didYouKnow"`
	FAQs       []domain.FAQ     `json:"faqs"`
	Topics     []string         `json:"topics"`
	Category   string           `json:"category"`
	Status     string           `json:"status"`
	CoverImage string           `json:"coverImage"`
}

func (h *Handler) handleCreateContent(c echo.Context) error {
	ctx := c.Request().Context()

	req := requester(c)
	if req.ID == "" {
		return presenter.Forbidden(c, "authentication required")
	}

	var body contentRequest
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}

	content, err := h.contents.Create(ctx, req, usecase.CreateContentInput{
		AuthorID:   body.AuthorID,
		Title:      body.Title,
		Body:       body.Body,
		Summary:    body.Summary,
		DidYouKnow: body.DidYouKnow,
		FAQs:       body.FAQs,
		Topics:     body.Topics,
		Category:   body.Category,
		Status:     body.Status,
		CoverImage: body.CoverImage,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, content)
}

func (h *Handler) handleListContents(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	contents, total, err := h.contents.ListPublished(ctx, page, limit)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"contents": contents, "total": total})
}

func (h *Handler) handleGetContent(c echo.Context) error {
	ctx := c.Request().Context()

	content, err := h.contents.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, content)
}

type updateContentRequest struct {
	Title      *domain.Localized `json:"title"`
	Body       *domain.Localized `json:"body"`
	Summary    *domain.Localized `json:"summary"`
	DidYouKnow *domain.Localized `json:"didYouKnow"`
	FAQs       *[]domain.FAQ     `json:"faqs"`
	Topics     *[]string         `json:"topics"`
	Category   *string           `json:"category"`
	Status     *string           `json:"status"`
	CoverImage *string           `json:"coverImage"`
}

func (h *Handler) handleUpdateContent(c echo.Context) error {
	ctx := c.Request().Context()

	req := requester(c)
	if req.ID == "" {
		return presenter.Forbidden(c, "authentication required")
	}

	var body updateContentRequest
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}

	content, err := h.contents.Update(ctx, req, c.Param("id"), usecase.UpdateContentInput{
		Title:      body.Title,
		Body:       body.Body,
		Summary:    body.Summary,
		DidYouKnow: body.DidYouKnow,
		FAQs:       body.FAQs,
		Topics:     body.Topics,
		Category:   body.Category,
		Status:     body.Status,
		CoverImage: body.CoverImage,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, content)
}

func (h *Handler) handleDeleteContent(c echo.Context) error {
	ctx := c.Request().Context()

	req := requester(c)
	if req.ID == "" {
		return presenter.Forbidden(c, "authentication required")
	}

	if err := h.contents.Delete(ctx, req, c.Param("id")); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

type toggleRequest struct {
	Action string `json:"action"`
}

func (h *Handler) handleLike(c echo.Context) error {
	return h.handleToggle(c, domain.EngagementLike)
}

func (h *Handler) handleBookmark(c echo.Context) error {
	return h.handleToggle(c, domain.EngagementBookmark)
}

func (h *Handler) handleToggle(c echo.Context, kind domain.EngagementKind) error {
	ctx := c.Request().Context()

	req := requester(c)
	if req.ID == "" {
		return presenter.Forbidden(c, "authentication required")
	}

	var body toggleRequest
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}

	result, err := h.engagement.Toggle(ctx, kind, domain.EngagementAction(body.Action), req.ID, c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, result)
}

func (h *Handler) handleListCollections(c echo.Context) error {
	ctx := c.Request().Context()

	req := requester(c)
	if req.ID == "" {
		return presenter.Forbidden(c, "authentication required")
	}

	collections, err := h.collections.List(ctx, req.ID)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, collections)
}

type collectionRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ContentIDs  []string `json:"contentIds"`
}

func (h *Handler) handleCreateCollection(c echo.Context) error {
	ctx := c.Request().Context()

	req := requester(c)
	if req.ID == "" {
		return presenter.Forbidden(c, "authentication required")
	}

	var body collectionRequest
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}

	id, err := h.collections.Create(ctx, req.ID, usecase.CreateCollectionInput{
		Name:        body.Name,
		Description: body.Description,
		ContentIDs:  body.ContentIDs,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, echo.Map{"id": id})
}

type updateCollectionRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	ContentIDs  *[]string `json:"contentIds"`
}

func (h *Handler) handleUpdateCollection(c echo.Context) error {
	ctx := c.Request().Context()

	req := requester(c)
	if req.ID == "" {
		return presenter.Forbidden(c, "authentication required")
	}

	var body updateCollectionRequest
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}

	err := h.collections.Edit(ctx, req.ID, c.Param("id"), usecase.CollectionPatch{
		Name:        body.Name,
		Description: body.Description,
		ContentIDs:  body.ContentIDs,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleDeleteCollection(c echo.Context) error {
	ctx := c.Request().Context()

	req := requester(c)
	if req.ID == "" {
		return presenter.Forbidden(c, "authentication required")
	}

	if err := h.collections.Delete(ctx, req.ID, c.Param("id")); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleCurationRefresh(c echo.Context) error {
	ctx := c.Request().Context()

	req := requester(c)
	if req.ID == "" {
		return presenter.Forbidden(c, "authentication required")
	}

	result, err := h.curation.Refresh(ctx, req.ID)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, result)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type realtimeRequest struct {
	Type       string   `json:"type"`
	ContentIDs []string `json:"contentIds"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	ctx := c.Request().Context()

	input := make(chan []string)
	defer close(input)
	output := make(chan domain.EngagementEvent)

	go h.signal.Realtime(ctx, input, output)

	quit := make(chan struct{})

	go func() {
		for {
			var req realtimeRequest
			err := ws.ReadJSON(&req)
			if err != nil {

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
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				quit <- struct{}{}
				break
			}

			switch req.Type {
			case "listen":
				input <- req.ContentIDs
				slog.DebugContext(
					ctx, "Socket subscribe",
					slog.Int("contentIds", len(req.ContentIDs)),
					slog.String("module", "socket"),
				)
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			err := ws.WriteJSON(event)
			if err != nil {
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
