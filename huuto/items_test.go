package huuto

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAuction() ItemParams {
	return ItemParams{
		Title:         String("Fender Stratocaster"),
		CategoryID:    Int64(344),
		SaleMethod:    String("auction"),
		StartingPrice: Float(50),
		OpenDays:      Int(7),
		PostalCode:    String("00100"),
	}
}

func TestItemParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ItemParams)
		wantErr string
	}{
		{
			name:   "valid auction",
			mutate: func(p *ItemParams) {},
		},
		{
			name: "valid buy-now with explicit window",
			mutate: func(p *ItemParams) {
				p.SaleMethod = String("buy-now")
				p.StartingPrice = nil
				p.BuyNowPrice = Float(120)
				p.OpenDays = nil
				p.ListTime = String("2026-09-01 12:00:00")
				p.ClosingTime = String("2026-09-08 12:00:00")
			},
		},
		{
			name:    "unknown condition",
			mutate:  func(p *ItemParams) { p.Condition = String("mint") },
			wantErr: "condition",
		},
		{
			name:    "unknown delivery method",
			mutate:  func(p *ItemParams) { p.DeliveryMethods = []string{"carrier-pigeon"} },
			wantErr: "delivery method",
		},
		{
			name:    "unknown payment method",
			mutate:  func(p *ItemParams) { p.PaymentMethods = []string{"gold"} },
			wantErr: "payment method",
		},
		{
			name: "bad listTime format",
			mutate: func(p *ItemParams) {
				p.OpenDays = nil
				p.ListTime = String("2026-09-01T12:00:00Z")
				p.ClosingTime = String("2026-09-08 12:00:00")
			},
			wantErr: "listTime",
		},
		{
			name: "listTime without closingTime",
			mutate: func(p *ItemParams) {
				p.OpenDays = nil
				p.ListTime = String("2026-09-01 12:00:00")
			},
			wantErr: "set together",
		},
		{
			name: "both openDays and explicit window",
			mutate: func(p *ItemParams) {
				p.ListTime = String("2026-09-01 12:00:00")
				p.ClosingTime = String("2026-09-08 12:00:00")
			},
			wantErr: "openDays",
		},
		{
			name:    "neither openDays nor window",
			mutate:  func(p *ItemParams) { p.OpenDays = nil },
			wantErr: "openDays",
		},
		{
			name: "domestic item without postal code",
			mutate: func(p *ItemParams) {
				p.IsLocationAbroad = Bool(false)
				p.PostalCode = nil
			},
			wantErr: "postalCode",
		},
		{
			name:    "missing sale method",
			mutate:  func(p *ItemParams) { p.SaleMethod = nil },
			wantErr: "saleMethod is required",
		},
		{
			name:    "unknown sale method",
			mutate:  func(p *ItemParams) { p.SaleMethod = String("raffle") },
			wantErr: "auction or buy-now",
		},
		{
			name: "buy-now without price",
			mutate: func(p *ItemParams) {
				p.SaleMethod = String("buy-now")
				p.BuyNowPrice = nil
			},
			wantErr: "buyNowPrice",
		},
		{
			name: "minimum increase on buy-now",
			mutate: func(p *ItemParams) {
				p.SaleMethod = String("buy-now")
				p.BuyNowPrice = Float(120)
				p.MinimumIncrease = Float(5)
			},
			wantErr: "minimumIncrease",
		},
		{
			name:    "auction without starting price",
			mutate:  func(p *ItemParams) { p.StartingPrice = nil },
			wantErr: "startingPrice",
		},
		{
			name:    "published is not a creation status",
			mutate:  func(p *ItemParams) { p.Status = String("published") },
			wantErr: "status",
		},
		{
			name:    "vat out of range",
			mutate:  func(p *ItemParams) { p.VAT = Int(125) },
			wantErr: "vat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validAuction()
			tt.mutate(&params)
			err := params.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateItem(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":450185678,"title":"Fender Stratocaster","status":"preview"}`)
	}))
	defer server.Close()

	expiry := "2030-01-01T00:00:00Z"
	credFile := writeCredFile(t, fmt.Sprintf(
		"username = someone\npassword = hunter2\ntoken = cached\ntoken_expiry = %s\n", expiry))
	client := newTestClient(t, server.URL, credFile)

	params := validAuction()
	params.PaymentMethods = []string{"wire-transfer", "mobile-pay"}
	params.OffersAllowed = Bool(true)

	item, err := client.CreateItem(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(450185678), item.ID)
	assert.Equal(t, "preview", item.Status)

	// Lists go as JSON arrays in the body, booleans as 0/1 integers, and
	// unset fields do not appear at all.
	assert.Equal(t, []any{"wire-transfer", "mobile-pay"}, body["paymentMethods"])
	assert.Equal(t, float64(1), body["offersAllowed"])
	assert.NotContains(t, body, "buyNowPrice")
	assert.NotContains(t, body, "description")
}

func TestCreateItemInvalidParamsSkipNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for invalid parameters")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, writeCredFile(t, "username = someone\npassword = hunter2\n"))

	params := validAuction()
	params.StartingPrice = nil
	_, err := client.CreateItem(context.Background(), params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "startingPrice")
}

func TestItemStatusTransitions(t *testing.T) {
	var gotStatus string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/items/42/", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotStatus = r.PostFormValue("status")
		fmt.Fprintf(w, `{"id":42,"status":%q}`, gotStatus)
	}))
	defer server.Close()

	credFile := writeCredFile(t,
		"username = someone\npassword = hunter2\ntoken = cached\ntoken_expiry = 2030-01-01T00:00:00Z\n")
	client := newTestClient(t, server.URL, credFile)

	item, err := client.PreviewItem(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "preview", gotStatus)
	assert.Equal(t, "preview", item.Status)

	_, err = client.PublishItem(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "published", gotStatus)

	_, err = client.CloseItem(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "closed", gotStatus)
}

func TestDeleteItem(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	credFile := writeCredFile(t,
		"username = someone\npassword = hunter2\ntoken = cached\ntoken_expiry = 2030-01-01T00:00:00Z\n")
	client := newTestClient(t, server.URL, credFile)

	require.NoError(t, client.DeleteItem(context.Background(), 42))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/items/42/", path)
}

func TestItemsByID(t *testing.T) {
	t.Run("preserves input order", func(t *testing.T) {
		var requests int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requests, 1)
			id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/items/"), "/")
			fmt.Fprintf(w, `{"id":%s,"title":"item %s"}`, id, id)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, writeCredFile(t, "username = someone\npassword = hunter2\n"))

		ids := []int64{5, 3, 8, 1}
		items, err := client.ItemsByID(context.Background(), ids)
		require.NoError(t, err)
		require.Len(t, items, len(ids))
		for i, id := range ids {
			assert.Equal(t, id, items[i].ID)
			assert.Equal(t, "item "+strconv.FormatInt(id, 10), items[i].Title)
		}
		assert.Equal(t, int32(len(ids)), atomic.LoadInt32(&requests))
	})

	t.Run("first failure wins", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.Contains(r.URL.Path, "/404") {
				http.Error(w, `{}`, http.StatusNotFound)
				return
			}
			fmt.Fprint(w, `{"id":1}`)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, writeCredFile(t, "username = someone\npassword = hunter2\n"))

		_, err := client.ItemsByID(context.Background(), []int64{1, 404, 2})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.IsNotFound())
	})

	t.Run("empty input", func(t *testing.T) {
		client := newTestClient(t, "http://127.0.0.1:1", writeCredFile(t, "username = someone\npassword = hunter2\n"))
		items, err := client.ItemsByID(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
