package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"MoneyRoutine/internal/domain/models"
	"MoneyRoutine/internal/usecase"
	xhttp "MoneyRoutine/pkg/http"
	xlogger "MoneyRoutine/pkg/logger"
)

// ContentHandler serves dashboards, articles and subscribers.
type ContentHandler struct {
	logger *xlogger.Logger
	svc    *usecase.ContentService
}

func NewContentHandler(logger *xlogger.Logger, svc *usecase.ContentService) *ContentHandler {
	return &ContentHandler{logger: logger, svc: svc}
}

func (h *ContentHandler) Register(g *echo.Group) {
	g.GET("/dashboard/dates", h.DashboardDates)
	g.GET("/dashboard/:date", h.GetDashboard)
	g.POST("/dashboard/:date", h.SaveDashboard)

	g.GET("/routine-articles", h.ListRoutineArticles)
	g.GET("/routine-articles/:id", h.GetRoutineArticle)
	g.POST("/routine-articles", h.CreateRoutineArticle)
	g.PATCH("/routine-articles/:id", h.UpdateRoutineArticle)
	g.DELETE("/routine-articles/:id", h.DeleteRoutineArticle)

	g.GET("/articles/:pageType", h.ListPageArticles)
	g.GET("/articles/:pageType/:id", h.GetPageArticle)
	g.POST("/articles", h.CreatePageArticle)
	g.PATCH("/articles/:id", h.UpdatePageArticle)
	g.DELETE("/articles/:id", h.DeletePageArticle)

	g.GET("/subscribers", h.ListSubscribers)
	g.POST("/subscribe", h.Subscribe)
	g.DELETE("/subscribers/:id", h.Unsubscribe)
}

// --- dashboard ---

func (h *ContentHandler) DashboardDates(c echo.Context) error {
	dates, err := h.svc.DashboardDates(c.Request().Context())
	if err != nil {
		return storeError(c, h.logger, "dashboard", err)
	}
	return xhttp.SuccessResponse(c, dates)
}

func (h *ContentHandler) GetDashboard(c echo.Context) error {
	date, verr := xhttp.PathDate(c, "date")
	if verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}
	d, err := h.svc.Dashboard(c.Request().Context(), date)
	if err != nil {
		return storeError(c, h.logger, "dashboard", err)
	}
	return xhttp.SuccessResponse(c, d)
}

func (h *ContentHandler) SaveDashboard(c echo.Context) error {
	date, verr := xhttp.PathDate(c, "date")
	if verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}
	var body models.DashboardContent
	if err := c.Bind(&body); err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("malformed dashboard body").WithError(err))
	}
	saved, err := h.svc.SaveDashboard(c.Request().Context(), date, body)
	if err != nil {
		return storeError(c, h.logger, "dashboard", err)
	}
	return xhttp.SuccessResponse(c, saved)
}

// --- routine articles ---

func (h *ContentHandler) ListRoutineArticles(c echo.Context) error {
	list, err := h.svc.RoutineArticles(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return storeError(c, h.logger, "article", err)
	}
	return xhttp.SuccessResponse(c, list)
}

func (h *ContentHandler) GetRoutineArticle(c echo.Context) error {
	a, err := h.svc.RoutineArticle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(c, h.logger, "article", err)
	}
	return xhttp.SuccessResponse(c, a)
}

func (h *ContentHandler) CreateRoutineArticle(c echo.Context) error {
	req := &models.CreateRoutineArticleRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}
	a, err := h.svc.CreateRoutineArticle(c.Request().Context(), req.Article())
	if err != nil {
		return storeError(c, h.logger, "article", err)
	}
	return xhttp.CreatedResponse(c, a)
}

func (h *ContentHandler) UpdateRoutineArticle(c echo.Context) error {
	req := &models.UpdateRoutineArticleRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}
	a, err := h.svc.UpdateRoutineArticle(c.Request().Context(), req.ID, req.Patch())
	if err != nil {
		return storeError(c, h.logger, "article", err)
	}
	return xhttp.SuccessResponse(c, a)
}

func (h *ContentHandler) DeleteRoutineArticle(c echo.Context) error {
	ok, err := h.svc.DeleteRoutineArticle(c.Request().Context(), c.Param("id"))
	return h.deleted(c, "article", ok, err)
}

// --- page articles ---

func (h *ContentHandler) ListPageArticles(c echo.Context) error {
	req := &models.ListArticlesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}
	list, err := h.svc.PageArticles(c.Request().Context(), models.PageType(req.PageType), req.Category)
	if err != nil {
		return storeError(c, h.logger, "article", err)
	}
	return xhttp.SuccessResponse(c, list)
}

func (h *ContentHandler) GetPageArticle(c echo.Context) error {
	pt := models.PageType(c.Param("pageType"))
	if !models.IsValidPageType(pt) {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("pageType must be one of: routine, real-estate, invest"))
	}
	a, err := h.svc.PageArticle(c.Request().Context(), pt, c.Param("id"))
	if err != nil {
		return storeError(c, h.logger, "article", err)
	}
	return xhttp.SuccessResponse(c, a)
}

func (h *ContentHandler) CreatePageArticle(c echo.Context) error {
	req := &models.CreatePageArticleRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}
	a, err := h.svc.CreatePageArticle(c.Request().Context(), req.Article())
	if err != nil {
		return storeError(c, h.logger, "article", err)
	}
	return xhttp.CreatedResponse(c, a)
}

func (h *ContentHandler) UpdatePageArticle(c echo.Context) error {
	req := &models.UpdatePageArticleRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}
	a, err := h.svc.UpdatePageArticle(c.Request().Context(), req.ID, req.Patch())
	if err != nil {
		return storeError(c, h.logger, "article", err)
	}
	return xhttp.SuccessResponse(c, a)
}

func (h *ContentHandler) DeletePageArticle(c echo.Context) error {
	ok, err := h.svc.DeletePageArticle(c.Request().Context(), c.Param("id"))
	return h.deleted(c, "article", ok, err)
}

// --- subscribers ---

func (h *ContentHandler) ListSubscribers(c echo.Context) error {
	subs, err := h.svc.Subscribers(c.Request().Context())
	if err != nil {
		return storeError(c, h.logger, "subscriber", err)
	}
	return xhttp.SuccessResponse(c, subs)
}

// Subscribe answers 201 for a new address and 200 when it was already known.
func (h *ContentHandler) Subscribe(c echo.Context) error {
	req := &models.SubscribeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}
	sub, created, err := h.svc.Subscribe(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		return storeError(c, h.logger, "subscriber", err)
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return xhttp.DataResponse(c, status, sub)
}

func (h *ContentHandler) Unsubscribe(c echo.Context) error {
	ok, err := h.svc.Unsubscribe(c.Request().Context(), c.Param("id"))
	return h.deleted(c, "subscriber", ok, err)
}

func (h *ContentHandler) deleted(c echo.Context, what string, ok bool, err error) error {
	if err != nil {
		return storeError(c, h.logger, what, err)
	}
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("%s not found", what))
	}
	return xhttp.DeletedResponse(c)
}
