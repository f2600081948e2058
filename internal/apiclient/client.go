// Package apiclient talks to the ledger HTTP API on behalf of the operator CLI.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ledger-backend/internal/logger"
	"ledger-backend/internal/models"
	"ledger-backend/internal/repositories"
)

// Error is a non-2xx response. Message is the server's body, trimmed.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) request(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	logger.Log.Debugw("[API] "+method+" "+path, "status", resp.StatusCode, "duration", time.Since(start))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, readError(resp)
	}
	return resp, nil
}

// readError prefers an {"error": ...} body and falls back to plain text.
func readError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	msg := strings.TrimSpace(string(data))

	var wrapped struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &wrapped) == nil && wrapped.Error != "" {
		msg = wrapped.Error
	}
	return &Error{Status: resp.StatusCode, Message: msg}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.request(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) Login(ctx context.Context, username string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", models.LoginRequest{Username: username}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListClients(ctx context.Context, query string) ([]models.Client, error) {
	path := "/api/clients"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	var clients []models.Client
	if err := c.do(ctx, http.MethodGet, path, nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *Client) GetClient(ctx context.Context, id int) (*models.ClientDetail, error) {
	var d models.ClientDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/clients/%d", id), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) CreateClient(ctx context.Context, req *models.CreateClientRequest) (*models.Client, error) {
	var client models.Client
	if err := c.do(ctx, http.MethodPost, "/api/clients", req, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *Client) UpdateClient(ctx context.Context, id int, req *models.UpdateClientRequest) (*models.Client, error) {
	var client models.Client
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/clients/%d", id), req, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *Client) DeleteClient(ctx context.Context, id int) (repositories.CascadeResult, error) {
	var res repositories.CascadeResult
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/clients/%d", id), nil, &res)
	return res, err
}

func (c *Client) CreatePayment(ctx context.Context, clientID int, req *models.PaymentRequest) (*models.Payment, error) {
	var p models.Payment
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/clients/%d/payments", clientID), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdatePayment(ctx context.Context, id int, req *models.PaymentRequest) (*models.Payment, error) {
	var p models.Payment
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/payments/%d", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeletePayment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/payments/%d", id), nil, nil)
}

func (c *Client) CreatePurchase(ctx context.Context, clientID int, req *models.PurchaseRequest) (*models.Purchase, error) {
	var p models.Purchase
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/clients/%d/purchases", clientID), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdatePurchase(ctx context.Context, id int, req *models.PurchaseRequest) (*models.Purchase, error) {
	var p models.Purchase
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/purchases/%d", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeletePurchase(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/purchases/%d", id), nil, nil)
}

func labelPath(kind models.LabelKind) string {
	if kind == models.LabelClass {
		return "/api/labels/classes"
	}
	return "/api/labels/types"
}

func (c *Client) Labels(ctx context.Context, kind models.LabelKind) ([]models.Label, error) {
	var labels []models.Label
	if err := c.do(ctx, http.MethodGet, labelPath(kind), nil, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

func (c *Client) CreateLabel(ctx context.Context, kind models.LabelKind, name string) (*models.Label, error) {
	var l models.Label
	if err := c.do(ctx, http.MethodPost, labelPath(kind), models.CreateLabelRequest{Name: name}, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) PaymentsHistory(ctx context.Context, page int) (*models.Page[models.Payment], error) {
	var p models.Page[models.Payment]
	if err := c.do(ctx, http.MethodGet, "/api/history/payments?page="+strconv.Itoa(page), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) PurchasesHistory(ctx context.Context, page int) (*models.Page[models.Purchase], error) {
	var p models.Page[models.Purchase]
	if err := c.do(ctx, http.MethodGet, "/api/history/purchases?page="+strconv.Itoa(page), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Summary(ctx context.Context) (*models.Summary, error) {
	var s models.Summary
	if err := c.do(ctx, http.MethodGet, "/api/summary", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Report downloads a client's PDF and the file name the server chose.
func (c *Client) Report(ctx context.Context, clientID int, archive bool) (string, []byte, error) {
	path := fmt.Sprintf("/api/clients/%d/report", clientID)
	if archive {
		path += "?archive=1"
	}
	resp, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}

	name := fmt.Sprintf("client_%d_rapport.pdf", clientID)
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return name, data, nil
}
