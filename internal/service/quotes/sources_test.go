package quotes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func jsonServer(t *testing.T, status int, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wantClass(t *testing.T, err error, class ErrorType) {
	t.Helper()
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Type != class {
		t.Fatalf("class = %s, want %s (%v)", fe.Type, class, err)
	}
}

func TestYahooSource(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"chart":{"result":[{"meta":{"regularMarketPrice":101.0,"chartPreviousClose":100.0}}]}}`,
		func(r *http.Request) {
			if r.URL.Path != "/v8/finance/chart/^IXIC" {
				t.Errorf("path = %s", r.URL.Path)
			}
			if r.URL.Query().Get("interval") != "1d" {
				t.Errorf("interval = %s", r.URL.Query().Get("interval"))
			}
		})
	q, err := NewYahooSource(srv.URL, "^IXIC", StyleFixed2, nil).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if q.Value != "101.00" || q.Change != 1 {
		t.Fatalf("unexpected quote %+v", q)
	}
}

func TestYahooSourceMissingPrice(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"chart":{"result":[]}}`, nil)
	_, err := NewYahooSource(srv.URL, "SPY", StyleFixed2, nil).Fetch(context.Background())
	wantClass(t, err, ErrorTypeValidation)
}

func TestUpbitSource(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `[{"market":"KRW-BTC","trade_price":143250000,"signed_change_rate":0.0105}]`,
		func(r *http.Request) {
			if r.URL.Query().Get("markets") != "KRW-BTC" {
				t.Errorf("markets = %s", r.URL.Query().Get("markets"))
			}
		})
	q, err := NewUpbitSource(srv.URL, "KRW-BTC", nil).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if q.Value != "143,250,000" || q.Change != 1.05 {
		t.Fatalf("unexpected quote %+v", q)
	}
}

func TestUpbitSourceServerError(t *testing.T) {
	srv := jsonServer(t, http.StatusInternalServerError, `{}`, nil)
	_, err := NewUpbitSource(srv.URL, "KRW-BTC", nil).Fetch(context.Background())
	wantClass(t, err, ErrorTypeStatus)
}

func TestBithumbSource(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"status":"0000","data":{"closing_price":"143000000","fluctate_rate_24H":"-0.5"}}`, nil)
	q, err := NewBithumbSource(srv.URL, "BTC_KRW", nil).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if q.Value != "143,000,000" || q.Change != -0.5 {
		t.Fatalf("unexpected quote %+v", q)
	}
}

func TestBithumbSourceBadStatus(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"status":"5600","data":{}}`, nil)
	_, err := NewBithumbSource(srv.URL, "BTC_KRW", nil).Fetch(context.Background())
	wantClass(t, err, ErrorTypeValidation)
}

func TestNaverSource(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"stockName":"KODEX 200","closePrice":"35,120","fluctuationsRatio":"-0.32"}`,
		func(r *http.Request) {
			if r.URL.Path != "/api/stock/069500/basic" {
				t.Errorf("path = %s", r.URL.Path)
			}
		})
	q, err := NewNaverSource(srv.URL, "069500", nil).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if q.Value != "35,120" || q.Change != -0.32 {
		t.Fatalf("unexpected quote %+v", q)
	}
}

func TestNaverSourceMissingFields(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"stockName":"KODEX 200"}`, nil)
	_, err := NewNaverSource(srv.URL, "069500", nil).Fetch(context.Background())
	wantClass(t, err, ErrorTypeValidation)
}

func TestExchangeRateSourceChangeAcrossDays(t *testing.T) {
	rate := "1300"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"success","rates":{"KRW":` + rate + `}}`))
	}))
	defer srv.Close()

	now := time.Date(2026, 1, 1, 3, 0, 0, 0, time.UTC)
	src := NewExchangeRateSource(srv.URL, "KRW", nil, func() time.Time { return now })

	q, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if q.Value != "1,300.00" || q.Change != 0 {
		t.Fatalf("first observation %+v", q)
	}

	rate = "1313"
	now = now.Add(24 * time.Hour)
	q, err = src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if q.Value != "1,313.00" || q.Change != 1 {
		t.Fatalf("next day observation %+v", q)
	}
}

func TestGoldAPISource(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"price":3110350,"chp":0.35}`, func(r *http.Request) {
		if r.Header.Get("x-access-token") != "key" {
			t.Errorf("missing token header")
		}
		if r.URL.Path != "/api/XAU/KRW" {
			t.Errorf("path = %s", r.URL.Path)
		}
	})
	q, err := NewGoldAPISource(srv.URL, "key", "KRW", nil).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if q.Value != "100,000" || q.Change != 0.35 {
		t.Fatalf("unexpected quote %+v", q)
	}
}

func TestGoldAPISourceWithoutKey(t *testing.T) {
	_, err := NewGoldAPISource("http://127.0.0.1:1", "", "KRW", nil).Fetch(context.Background())
	wantClass(t, err, ErrorTypeValidation)
}

func TestFearGreedSource(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"data":[{"value":"25","value_classification":"Extreme Fear"}]}`, nil)
	q, err := NewFearGreedSource(srv.URL, nil).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if q.Value != "25" || q.Status != "극단적 공포" {
		t.Fatalf("unexpected quote %+v", q)
	}
}

func TestSourceTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewFearGreedSource(srv.URL, nil).Fetch(ctx)
	wantClass(t, err, ErrorTypeTimeout)
}
