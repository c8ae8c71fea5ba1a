package coincap

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCoinCap_Name(t *testing.T) {
	c := New()
	if c.Name() != "coincap" {
		t.Errorf("expected 'coincap', got '%s'", c.Name())
	}
}

func TestCoinCap_FetchQuotes_ParsesStringNumerics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[
			{"id":"bitcoin","name":"Bitcoin","symbol":"BTC","priceUsd":"41250.50","changePercent24Hr":"2.5","marketCapUsd":"800000000000","volumeUsd24Hr":"25000000000"},
			{"id":"dogecoin","name":"Dogecoin","symbol":"DOGE","priceUsd":"0.078","changePercent24Hr":"not-a-number","marketCapUsd":"","volumeUsd24Hr":"11000000"}
		]}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL)
	quotes, err := c.FetchQuotes([]string{"bitcoin", "dogecoin"})
	if err != nil {
		t.Fatalf("FetchQuotes failed: %v", err)
	}

	btc := quotes["bitcoin"]
	if btc.PriceUSD != 41250.50 {
		t.Errorf("expected bitcoin price 41250.50, got %v", btc.PriceUSD)
	}
	if btc.MarketCapUSD != 800000000000 {
		t.Errorf("expected parsed market cap, got %v", btc.MarketCapUSD)
	}
	if btc.Source != "coincap" {
		t.Errorf("expected source coincap, got %s", btc.Source)
	}

	// Malformed or empty numeric fields default to 0, not an error
	doge := quotes["dogecoin"]
	if doge.Change24hPct != 0 {
		t.Errorf("expected malformed change to parse as 0, got %v", doge.Change24hPct)
	}
	if doge.MarketCapUSD != 0 {
		t.Errorf("expected empty market cap to parse as 0, got %v", doge.MarketCapUSD)
	}
	if doge.PriceUSD != 0.078 {
		t.Errorf("expected dogecoin price 0.078, got %v", doge.PriceUSD)
	}
}

func TestCoinCap_UnknownIDsDropped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"tether","name":"Tether","symbol":"USDT","priceUsd":"1.0","changePercent24Hr":"0","marketCapUsd":"0","volumeUsd24Hr":"0"}]}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL)
	quotes, err := c.FetchQuotes([]string{"bitcoin"})
	if err != nil {
		t.Fatalf("FetchQuotes failed: %v", err)
	}
	if len(quotes) != 0 {
		t.Errorf("expected unknown asset keys to be dropped, got %d quotes", len(quotes))
	}
}

func TestCoinCap_FetchQuotes_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL)
	if _, err := c.FetchQuotes([]string{"bitcoin"}); err == nil {
		t.Fatal("expected error for 502 response")
	}
}
