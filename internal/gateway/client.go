// Package gateway is the thin HTTP adapter between the client-side
// ledger model and the collections backend. It owns transport
// mechanics only; merge and reconciliation semantics live in the
// ledger and reconcile packages.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/pream14/FinanceFrontend/internal/ledger"
	"github.com/pream14/FinanceFrontend/internal/reconcile"
	"github.com/pream14/FinanceFrontend/internal/roster"
)

// Credentials is the result of a successful login.
type Credentials struct {
	// UserID is the worker id the credentials were issued for. The
	// backend does not echo it, so Login fills it in client-side.
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	Username    string `json:"username"`
}

// Worker is one collection worker as listed by the backend.
type Worker struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// WorkerEntry is one row of a worker's submitted entries for a day.
type WorkerEntry struct {
	CustomerID    string               `json:"customer_id"`
	CustomerName  string               `json:"customer_name"`
	AmountPaid    int64                `json:"amount_paid"`
	PaymentStatus ledger.PaymentStatus `json:"payment_status"`
}

// WorkerEntries bundles a worker's rows with the server-side total.
type WorkerEntries struct {
	Payments []WorkerEntry `json:"payments"`
	Total    int64         `json:"total_amount_paid"`
}

// HistoryRecord is one dated payment in a customer's history.
type HistoryRecord struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	PaymentDate  string `json:"payment_date"`
	AmountPaid   int64  `json:"amount_paid"`
	LoanAmount   int64  `json:"loan_amount"`
	Balance      int64  `json:"balance"`
}

type Client struct {
	baseURL string
	httpc   *http.Client
	token   string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token sent on authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Login(ctx context.Context, userID, password string) (Credentials, error) {
	body := map[string]string{"user_id": userID, "password": password}

	var creds Credentials
	if err := c.do(ctx, "login", http.MethodPost, "/login", nil, body, &creds); err != nil {
		return Credentials{}, err
	}

	creds.UserID = userID

	return creds, nil
}

type customerResponse struct {
	CustomerID    string `json:"customer_id"`
	ContactNumber string `json:"contact_number"`
	Name          string `json:"name"`
	Location      string `json:"location"`
}

func (c *Client) FetchRoster(ctx context.Context) ([]roster.Customer, error) {
	var resp []customerResponse
	if err := c.do(ctx, "fetch roster", http.MethodGet, "/get_customers", nil, nil, &resp); err != nil {
		return nil, err
	}

	customers := make([]roster.Customer, 0, len(resp))

	for _, r := range resp {
		// Older backends key customers by contact number only.
		id := r.CustomerID
		if id == "" {
			id = r.ContactNumber
		}

		customers = append(customers, roster.Customer{
			ID:       id,
			Name:     r.Name,
			Contact:  r.ContactNumber,
			Location: r.Location,
		})
	}

	return customers, nil
}

type priorPaymentsResponse struct {
	Payments []struct {
		CustomerID string  `json:"customer_id"`
		AmountPaid float64 `json:"amount_paid"`
	} `json:"payments"`
}

// FetchPriorPayments returns the payments the backend already knows
// for one customer and day. Fractional amounts are rounded to whole
// units, matching what the entry screen displays.
func (c *Client) FetchPriorPayments(ctx context.Context, customerID, day string) ([]ledger.ServerPayment, error) {
	q := url.Values{}
	q.Set("customer_id", customerID)
	q.Set("payment_date", day)

	var resp priorPaymentsResponse
	if err := c.do(ctx, "fetch prior payments", http.MethodGet, "/get_payment_by_date", q, nil, &resp); err != nil {
		return nil, err
	}

	records := make([]ledger.ServerPayment, 0, len(resp.Payments))

	for _, p := range resp.Payments {
		records = append(records, ledger.ServerPayment{
			CustomerID: p.CustomerID,
			AmountPaid: int64(math.Round(p.AmountPaid)),
		})
	}

	return records, nil
}

// FetchPreviousAmount satisfies ledger.PreviousAmountFetcher.
func (c *Client) FetchPreviousAmount(ctx context.Context, customerID, day string) (int64, error) {
	q := url.Values{}
	q.Set("customer_id", customerID)
	q.Set("payment_date", day)

	var resp struct {
		PreviousAmount int64 `json:"previous_amount"`
	}

	if err := c.do(ctx, "fetch previous amount", http.MethodGet, "/get_previous_amount", q, nil, &resp); err != nil {
		return 0, err
	}

	return resp.PreviousAmount, nil
}

// SubmitBatch posts the batch update and returns the backend's
// confirmation message.
func (c *Client) SubmitBatch(ctx context.Context, updates []reconcile.UpdateRequest) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}

	if err := c.do(ctx, "submit batch", http.MethodPost, "/update_payment", nil, updates, &resp); err != nil {
		return "", err
	}

	return resp.Message, nil
}

func (c *Client) FetchWorkers(ctx context.Context) ([]Worker, error) {
	var workers []Worker
	if err := c.do(ctx, "fetch workers", http.MethodGet, "/get_workers", nil, nil, &workers); err != nil {
		return nil, err
	}

	return workers, nil
}

// FetchWorkerEntries lists the entries submitted for a day. An empty
// workerID asks for every worker's entries.
func (c *Client) FetchWorkerEntries(ctx context.Context, workerID, day string) (WorkerEntries, error) {
	q := url.Values{}
	q.Set("payment_date", day)

	if workerID != "" {
		q.Set("worker_id", workerID)
	}

	var resp WorkerEntries
	if err := c.do(ctx, "fetch worker entries", http.MethodGet, "/get_entries_by_worker", q, nil, &resp); err != nil {
		return WorkerEntries{}, err
	}

	return resp, nil
}

// FetchPaymentHistory looks up a customer's dated payments by id or
// name; at least one must be given.
func (c *Client) FetchPaymentHistory(ctx context.Context, customerID, customerName string) ([]HistoryRecord, error) {
	if customerID == "" && customerName == "" {
		return nil, fmt.Errorf("fetch payment history: customer id or name required")
	}

	q := url.Values{}

	if customerID != "" {
		q.Set("customer_id", customerID)
	}

	if customerName != "" {
		q.Set("customer_name", customerName)
	}

	var resp struct {
		Payments []HistoryRecord `json:"payments"`
	}

	if err := c.do(ctx, "fetch payment history", http.MethodGet, "/get_customer_payment_history", q, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Payments, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encoding request: %w", op, err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", op, err)
	}

	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerError{Op: op, Status: resp.StatusCode, Message: serverMessage(data)}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}

	return nil
}

// serverMessage pulls the backend's error field out of a failure body,
// falling back to the raw body.
func serverMessage(data []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}

		if payload.Message != "" {
			return payload.Message
		}
	}

	const maxLen = 200
	if len(data) > maxLen {
		data = data[:maxLen]
	}

	return string(bytes.TrimSpace(data))
}
