package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"MoneyRoutine/internal/domain/models"
	"MoneyRoutine/internal/repository/memory"
	"MoneyRoutine/internal/service/auth"
	"MoneyRoutine/internal/service/render"
	"MoneyRoutine/internal/usecase"
	xhttp "MoneyRoutine/pkg/http"
	xlogger "MoneyRoutine/pkg/logger"
)

type stubAggregator struct {
	err error
}

func (a stubAggregator) Aggregate(context.Context) (models.MarketData, error) {
	if a.err != nil {
		return models.MarketData{}, a.err
	}
	return models.FallbackMarketData(), nil
}

func newTestEcho(t *testing.T, agg usecase.Aggregator) *echo.Echo {
	t.Helper()
	log := xlogger.Nop()
	market := usecase.NewMarketService(agg)
	content := usecase.NewContentService(memory.New(), nil, render.NewMarkdown(), log)
	router := NewRouter(
		NewMarketHandler(log, market, 20*time.Millisecond),
		NewContentHandler(log, content),
		NewAdminHandler(log, auth.NewSharedSecret("s3cret")),
	)
	return xhttp.NewServer(router, xhttp.WithLogger(log)).Echo()
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestMarketData(t *testing.T) {
	e := newTestEcho(t, stubAggregator{})

	rec := do(e, http.MethodGet, "/api/market-data", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[models.MarketData](t, rec)
	if got.USDKRW.Value != "1,385.20" || got.FearGreed.Status != "중립" {
		t.Fatalf("unexpected body %+v", got)
	}
}

func TestMarketDataCompositionError(t *testing.T) {
	e := newTestEcho(t, stubAggregator{err: errors.New("slot panicked")})

	rec := do(e, http.MethodGet, "/api/market-data", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decode[xhttp.ErrorBody](t, rec); body.Error == "" || strings.Contains(body.Error, "panicked") {
		t.Fatalf("500 body should be generic, got %q", body.Error)
	}
}

func TestMarketMerge(t *testing.T) {
	e := newTestEcho(t, stubAggregator{})

	rec := do(e, http.MethodPost, "/api/market-data/merge",
		`{"usdkrw":{"enabled":true,"value":"1,500.00","change":1.2},"gold":{"enabled":true,"value":""}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	got := decode[models.MarketData](t, rec)
	if got.USDKRW.Value != "1,500.00" || got.USDKRW.Change != 1.2 {
		t.Fatalf("override not applied: %+v", got.USDKRW)
	}
	if got.Gold.Value != "128,450" {
		t.Fatalf("empty override must pass through, got %+v", got.Gold)
	}
}

func TestMarketHistory(t *testing.T) {
	e := newTestEcho(t, stubAggregator{})

	if rec := do(e, http.MethodGet, "/api/market-data/history?slot=oil", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown slot: status = %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/api/market-data/history?slot=gold", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("disabled history: status = %d", rec.Code)
	}
}

func TestMarketStream(t *testing.T) {
	srv := httptest.NewServer(newTestEcho(t, stubAggregator{}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/market-data/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// first push is immediate, second follows the interval
	for i := 0; i < 2; i++ {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var data models.MarketData
		if err := conn.ReadJSON(&data); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if data.Bitcoin.Value == "" {
			t.Fatalf("push %d missing bitcoin", i)
		}
	}
}

func TestDashboardRoutes(t *testing.T) {
	e := newTestEcho(t, stubAggregator{})

	if rec := do(e, http.MethodGet, "/api/dashboard/2026-01-05", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing dashboard: status = %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/api/dashboard/yesterday", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date: status = %d", rec.Code)
	}

	rec := do(e, http.MethodPost, "/api/dashboard/2026-01-05", `{"date":"1999-01-01","thoughts":"calm"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("save: status = %d body=%s", rec.Code, rec.Body)
	}
	saved := decode[models.DashboardContent](t, rec)
	if saved.Date != "2026-01-05" || saved.Thoughts != "calm" || saved.UpdatedAt.IsZero() {
		t.Fatalf("unexpected saved dashboard %+v", saved)
	}
	do(e, http.MethodPost, "/api/dashboard/2026-01-10", `{}`)

	dates := decode[[]string](t, do(e, http.MethodGet, "/api/dashboard/dates", ""))
	if len(dates) != 2 || dates[0] != "2026-01-10" {
		t.Fatalf("dates = %v", dates)
	}
}

func TestRoutineArticleLifecycle(t *testing.T) {
	e := newTestEcho(t, stubAggregator{})

	if rec := do(e, http.MethodPost, "/api/routine-articles", `{"date":"2026-01-05"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing title: status = %d", rec.Code)
	} else if body := decode[xhttp.ErrorBody](t, rec); body.Error != "title is required" {
		t.Fatalf("error = %q", body.Error)
	}

	rec := do(e, http.MethodPost, "/api/routine-articles", `{"title":"Morning","content":"**bold**","date":"2026-01-05"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d body=%s", rec.Code, rec.Body)
	}
	created := decode[models.RoutineArticle](t, rec)
	if created.ID == "" || created.Category != "general" {
		t.Fatalf("unexpected article %+v", created)
	}

	got := decode[models.RoutineArticle](t, do(e, http.MethodGet, "/api/routine-articles/"+created.ID, ""))
	if !strings.Contains(got.ContentHTML, "<strong>bold</strong>") {
		t.Fatalf("contentHtml = %q", got.ContentHTML)
	}

	rec = do(e, http.MethodPatch, "/api/routine-articles/"+created.ID, `{"title":"Evening"}`)
	if patched := decode[models.RoutineArticle](t, rec); patched.Title != "Evening" || patched.Content != "**bold**" {
		t.Fatalf("patch result %+v", patched)
	}
	if rec := do(e, http.MethodPatch, "/api/routine-articles/nope", `{"title":"x"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("patch missing: status = %d", rec.Code)
	}

	list := decode[[]models.RoutineArticle](t, do(e, http.MethodGet, "/api/routine-articles?category=general", ""))
	if len(list) != 1 {
		t.Fatalf("list = %d", len(list))
	}

	if rec := do(e, http.MethodDelete, "/api/routine-articles/"+created.ID, ""); rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", rec.Code)
	}
	if rec := do(e, http.MethodDelete, "/api/routine-articles/"+created.ID, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: status = %d", rec.Code)
	}
}

func TestPageArticleRoutes(t *testing.T) {
	e := newTestEcho(t, stubAggregator{})

	if rec := do(e, http.MethodGet, "/api/articles/stocks", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad pageType: status = %d", rec.Code)
	}
	if rec := do(e, http.MethodPost, "/api/articles", `{"title":"t","date":"2026-01-05"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing pageType: status = %d", rec.Code)
	}

	for _, body := range []string{
		`{"pageType":"invest","title":"old pinned","date":"2026-01-19","isPinned":false}`,
		`{"pageType":"invest","title":"pinned","date":"2026-01-05","isPinned":true}`,
		`{"pageType":"invest","title":"newer","date":"2026-01-10","isPinned":true}`,
		`{"pageType":"real-estate","title":"elsewhere","date":"2026-01-01"}`,
	} {
		if rec := do(e, http.MethodPost, "/api/articles", body); rec.Code != http.StatusCreated {
			t.Fatalf("create %s: status = %d body=%s", body, rec.Code, rec.Body)
		}
	}

	list := decode[[]models.PageArticle](t, do(e, http.MethodGet, "/api/articles/invest", ""))
	if len(list) != 3 {
		t.Fatalf("invest list = %d", len(list))
	}
	want := []string{"2026-01-10", "2026-01-05", "2026-01-19"}
	for i, a := range list {
		if a.Date != want[i] {
			t.Fatalf("order[%d] = %s, want %s", i, a.Date, want[i])
		}
	}

	id := list[0].ID
	if rec := do(e, http.MethodGet, "/api/articles/invest/"+id, ""); rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/api/articles/routine/"+id, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("get under other pageType: status = %d", rec.Code)
	}
	if rec := do(e, http.MethodPatch, "/api/articles/"+id, `{"pageType":"stocks"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("patch invalid pageType: status = %d", rec.Code)
	}
	if rec := do(e, http.MethodPatch, "/api/articles/"+id, `{"isPinned":false}`); rec.Code != http.StatusOK {
		t.Fatalf("patch: status = %d", rec.Code)
	}
	if rec := do(e, http.MethodDelete, "/api/articles/"+id, ""); rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", rec.Code)
	}
}

func TestSubscribeRoutes(t *testing.T) {
	e := newTestEcho(t, stubAggregator{})

	if rec := do(e, http.MethodPost, "/api/subscribe", `{"name":"kim"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing email: status = %d", rec.Code)
	}
	rec := do(e, http.MethodPost, "/api/subscribe", `{"name":"kim","email":"kim@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("subscribe: status = %d body=%s", rec.Code, rec.Body)
	}
	first := decode[models.Subscriber](t, rec)

	rec = do(e, http.MethodPost, "/api/subscribe", `{"email":"KIM@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat subscribe: status = %d", rec.Code)
	}
	if again := decode[models.Subscriber](t, rec); again.ID != first.ID {
		t.Fatalf("repeat subscribe created a new record")
	}

	subs := decode[[]models.Subscriber](t, do(e, http.MethodGet, "/api/subscribers", ""))
	if len(subs) != 1 {
		t.Fatalf("subscribers = %d", len(subs))
	}
	if rec := do(e, http.MethodDelete, "/api/subscribers/"+first.ID, ""); rec.Code != http.StatusOK {
		t.Fatalf("unsubscribe: status = %d", rec.Code)
	}
	if rec := do(e, http.MethodDelete, "/api/subscribers/"+first.ID, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("second unsubscribe: status = %d", rec.Code)
	}
}

func TestAdminVerify(t *testing.T) {
	e := newTestEcho(t, stubAggregator{})

	rec := do(e, http.MethodPost, "/api/admin/verify", `{"password":"s3cret"}`)
	if rec.Code != http.StatusOK || !decode[xhttp.SuccessBody](t, rec).Success {
		t.Fatalf("match: status = %d body=%s", rec.Code, rec.Body)
	}

	for _, body := range []string{`{"password":"nope"}`, `{}`, `not json`} {
		rec := do(e, http.MethodPost, "/api/admin/verify", body)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d", body, rec.Code)
		}
		got := decode[xhttp.SuccessBody](t, rec)
		if got.Success || got.Error != wrongPasswordMessage {
			t.Fatalf("%s: body = %+v", body, got)
		}
	}
}

func TestHealthz(t *testing.T) {
	e := newTestEcho(t, stubAggregator{})
	rec := do(e, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("healthz: %d %s", rec.Code, rec.Body)
	}
}
