// internal/infra/akahu/client.go
package akahu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rentlite/internal/domain/bank"

	"github.com/shopspring/decimal"
)

const (
	accountsTimeout     = 10 * time.Second
	transactionsTimeout = 15 * time.Second
)

// Client is a read-only client for the Akahu bank-data aggregator API,
// scoped to one user's tokens. One plain HTTP client per call kind with
// its own timeout; TLS verification is standard and upstream failures
// are classified into the bank error kinds instead of retried against
// alternative transport settings.
type Client struct {
	baseURL            string
	appToken           string
	userToken          string
	accountsClient     *http.Client
	transactionsClient *http.Client
}

func NewClient(baseURL, appToken, userToken string) *Client {
	return &Client{
		baseURL:            strings.TrimRight(baseURL, "/"),
		appToken:           sanitizeToken(appToken),
		userToken:          sanitizeToken(userToken),
		accountsClient:     &http.Client{Timeout: accountsTimeout},
		transactionsClient: &http.Client{Timeout: transactionsTimeout},
	}
}

// sanitizeToken strips characters that would corrupt an HTTP header.
// Tokens pasted into the settings form occasionally carry them.
func sanitizeToken(token string) string {
	token = strings.TrimSpace(token)
	return strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', '\t':
			return -1
		}
		return r
	}, token)
}

type apiAccount struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type apiTransaction struct {
	ID          string          `json:"_id"`
	Account     string          `json:"_account"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type accountsResponse struct {
	Items []apiAccount `json:"items"`
}

type transactionsResponse struct {
	Items []apiTransaction `json:"items"`
}

func (c *Client) Accounts(ctx context.Context) ([]bank.Account, error) {
	var envelope accountsResponse
	if err := c.get(ctx, c.accountsClient, c.baseURL+"/accounts", &envelope); err != nil {
		return nil, err
	}

	accounts := make([]bank.Account, 0, len(envelope.Items))
	for _, item := range envelope.Items {
		accounts = append(accounts, bank.Account{ID: item.ID, Name: item.Name, Type: item.Type})
	}
	return accounts, nil
}

func (c *Client) Transactions(ctx context.Context, accountID string, start, end time.Time) ([]bank.Transaction, error) {
	params := url.Values{}
	params.Set("start", start.Format(time.RFC3339))
	params.Set("end", end.Format(time.RFC3339))
	endpoint := fmt.Sprintf("%s/accounts/%s/transactions?%s", c.baseURL, url.PathEscape(accountID), params.Encode())

	var envelope transactionsResponse
	if err := c.get(ctx, c.transactionsClient, endpoint, &envelope); err != nil {
		return nil, err
	}

	transactions := make([]bank.Transaction, 0, len(envelope.Items))
	for _, item := range envelope.Items {
		transactions = append(transactions, bank.Transaction{
			ID:          item.ID,
			AccountID:   item.Account,
			Date:        item.Date,
			Description: item.Description,
			Amount:      item.Amount,
		})
	}
	return transactions, nil
}

func (c *Client) get(ctx context.Context, httpClient *http.Client, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("error building aggregator request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.userToken)
	req.Header.Set("X-Akahu-ID", c.appToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "RentLite/1.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", bank.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: check the app and user tokens", bank.ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: check the token permissions", bank.ErrForbidden)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("aggregator returned unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding aggregator response: %w", err)
	}
	return nil
}
