// Package api содержит HTTP-клиент сервера FileKeeper для CLI.
package api

import (
	"FileKeeper/internal/model"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// TokenHeader заголовок с токеном сессии.
const TokenHeader = "X-Token"

// Error ответ сервера с кодом не 2xx.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server status %d", e.Status)
	}
	return fmt.Sprintf("server status %d: %s", e.Status, e.Message)
}

// IsStatus сообщает, что err — ответ сервера с данным кодом.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client обращается к серверу от имени одной сессии.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New создаёт клиента. token может быть пустым до входа.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

type Status struct {
	Cache bool `json:"cache"`
	DB    bool `json:"db"`
}

type Stats struct {
	Users             int64  `json:"users"`
	Files             int64  `json:"files"`
	ThumbnailRejected uint64 `json:"thumbnailRejected"`
}

// NewFile параметры создания файла или папки.
type NewFile struct {
	Name     string
	Type     model.FileType
	ParentID string // пусто — корень
	IsPublic bool
	Data     []byte
}

type createFileBody struct {
	Name     string         `json:"name"`
	Type     model.FileType `json:"type"`
	ParentID string         `json:"parentId,omitempty"`
	IsPublic bool           `json:"isPublic"`
	Data     string         `json:"data,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, header http.Header) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(TokenHeader, c.token)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, data, decodeError(resp.StatusCode, data)
	}
	return resp, data, nil
}

func decodeError(status int, body []byte) error {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return &Error{Status: status, Message: e.Error}
	}
	return &Error{Status: status, Message: strings.TrimSpace(string(body))}
}

// doJSON выполняет запрос и декодирует тело ответа в out.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload, out any, header http.Header) error {
	_, data, err := c.do(ctx, method, path, query, payload, header)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func (c *Client) Status(ctx context.Context) (Status, error) {
	var st Status
	err := c.doJSON(ctx, http.MethodGet, "/status", nil, nil, &st, nil)
	return st, err
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := c.doJSON(ctx, http.MethodGet, "/stats", nil, nil, &st, nil)
	return st, err
}

func (c *Client) Register(ctx context.Context, email, password string) (*model.UserView, error) {
	var u model.UserView
	payload := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/users", nil, payload, &u, nil); err != nil {
		return nil, err
	}
	return &u, nil
}

// Connect выполняет вход и запоминает токен в клиенте.
func (c *Client) Connect(ctx context.Context, email, password string) (string, error) {
	h := http.Header{}
	h.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(email+":"+password)))
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/connect", nil, nil, &resp, h); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New("empty token in response")
	}
	c.token = resp.Token
	return resp.Token, nil
}

func (c *Client) Disconnect(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/disconnect", nil, nil, nil, nil)
}

func (c *Client) Me(ctx context.Context) (*model.UserView, error) {
	var u model.UserView
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, nil, &u, nil); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) CreateFile(ctx context.Context, f NewFile) (*model.FileView, error) {
	body := createFileBody{Name: f.Name, Type: f.Type, ParentID: f.ParentID, IsPublic: f.IsPublic}
	if f.Type != model.TypeFolder {
		body.Data = base64.StdEncoding.EncodeToString(f.Data)
	}
	var v model.FileView
	if err := c.doJSON(ctx, http.MethodPost, "/files", nil, body, &v, nil); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) GetFile(ctx context.Context, id string) (*model.FileView, error) {
	var v model.FileView
	if err := c.doJSON(ctx, http.MethodGet, "/files/"+url.PathEscape(id), nil, nil, &v, nil); err != nil {
		return nil, err
	}
	return &v, nil
}

// ListFiles страница дочерних записей; parentID пусто — корень.
func (c *Client) ListFiles(ctx context.Context, parentID string, page int) ([]model.FileView, error) {
	q := url.Values{}
	if parentID != "" {
		q.Set("parentId", parentID)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	var out []model.FileView
	if err := c.doJSON(ctx, http.MethodGet, "/files", q, nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SetVisibility(ctx context.Context, id string, public bool) (*model.FileView, error) {
	action := "unpublish"
	if public {
		action = "publish"
	}
	var v model.FileView
	if err := c.doJSON(ctx, http.MethodPut, "/files/"+url.PathEscape(id)+"/"+action, nil, nil, &v, nil); err != nil {
		return nil, err
	}
	return &v, nil
}

// Download возвращает содержимое файла и его Content-Type; size — "", "500", "250" или "100".
func (c *Client) Download(ctx context.Context, id, size string) ([]byte, string, error) {
	q := url.Values{}
	if size != "" {
		q.Set("size", size)
	}
	resp, data, err := c.do(ctx, http.MethodGet, "/files/"+url.PathEscape(id)+"/data", q, nil, nil)
	if err != nil {
		return nil, "", err
	}
	return data, resp.Header.Get("Content-Type"), nil
}
