package akahu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentlite/internal/domain/bank"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts", r.URL.Path)
		assert.Equal(t, "Bearer user_token_xyz", r.Header.Get("Authorization"))
		assert.Equal(t, "app_token_abc", r.Header.Get("X-Akahu-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"_id":"acc_1","name":"Everyday","type":"CHECKING"},
			{"_id":"acc_2","name":"Savings","type":"SAVINGS"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "app_token_abc", "user_token_xyz")
	accounts, err := client.Accounts(context.Background())

	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, bank.Account{ID: "acc_1", Name: "Everyday", Type: "CHECKING"}, accounts[0])
	assert.Equal(t, "acc_2", accounts[1].ID)
}

func TestTransactions(t *testing.T) {
	start := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 16, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/acc_1/transactions", r.URL.Path)
		assert.Equal(t, start.Format(time.RFC3339), r.URL.Query().Get("start"))
		assert.Equal(t, end.Format(time.RFC3339), r.URL.Query().Get("end"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"_id":"tx_1","_account":"acc_1","date":"2026-01-09T14:00:00Z","description":"TRANSFER RENT WALLABY","amount":650.00}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "app_token_abc", "user_token_xyz")
	transactions, err := client.Transactions(context.Background(), "acc_1", start, end)

	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "tx_1", transactions[0].ID)
	assert.Equal(t, "acc_1", transactions[0].AccountID)
	assert.Equal(t, "TRANSFER RENT WALLABY", transactions[0].Description)
	assert.True(t, transactions[0].Amount.Equal(decimal.RequireFromString("650")))
}

func TestErrorClassification(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		expected error
	}{
		{name: "401 maps to unauthorized", status: http.StatusUnauthorized, expected: bank.ErrUnauthorized},
		{name: "403 maps to forbidden", status: http.StatusForbidden, expected: bank.ErrForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			client := NewClient(server.URL, "app", "user")
			_, err := client.Accounts(context.Background())
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestUnreachableHost(t *testing.T) {
	// A server that is immediately closed leaves a port nothing listens on.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "app", "user")
	_, err := client.Accounts(context.Background())
	assert.ErrorIs(t, err, bank.ErrUnreachable)
}

func TestUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "app", "user")
	_, err := client.Accounts(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "app_token_abc", sanitizeToken(" app_token_abc\n"))
	assert.Equal(t, "usertoken", sanitizeToken("user\ttoken\r\n"))
	assert.Equal(t, "plain", sanitizeToken("plain"))
}
