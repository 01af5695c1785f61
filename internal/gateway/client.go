package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"searchbyimage/internal/domain"
)

// HTTPClient talks to a chat gateway over JSON/HTTP.
type HTTPClient struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns a client for the gateway at base. A nil hc uses
// http.DefaultClient.
func NewHTTP(base string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

// RegisterPlugin announces the bot to the gateway.
func (c *HTTPClient) RegisterPlugin(ctx context.Context, d domain.PluginDescriptor) error {
	return c.post(ctx, "/plugins", d, nil)
}

// FetchEvents returns up to limit queued events for bot. limit <= 0 fetches all.
func (c *HTTPClient) FetchEvents(ctx context.Context, bot domain.UserID, limit int) ([]domain.GroupMessageEvent, error) {
	path := "/events/" + url.PathEscape(bot.String())
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var evs []domain.GroupMessageEvent
	if err := c.get(ctx, path, &evs); err != nil {
		return nil, err
	}
	return evs, nil
}

// AckEvents drops the first count queued events for bot.
func (c *HTTPClient) AckEvents(ctx context.Context, bot domain.UserID, count int) error {
	return c.post(ctx, "/events/"+url.PathEscape(bot.String())+"/ack", ackRequest{Count: count}, nil)
}

// SendGroupMessage posts chain to group.
func (c *HTTPClient) SendGroupMessage(ctx context.Context, group domain.GroupID, chain domain.MessageChain) error {
	return c.post(ctx, "/groups/"+url.PathEscape(group.String())+"/messages", chain, nil)
}

// QueryImageURL resolves an image id to a downloadable URL.
func (c *HTTPClient) QueryImageURL(ctx context.Context, id domain.ImageID) (string, error) {
	var out imageResponse
	if err := c.get(ctx, "/images/"+url.PathEscape(id.String()), &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", fmt.Errorf("gateway: image %s has no url", id)
	}
	return out.URL, nil
}

// ListGroupMessages returns the chains posted to group so far. Only the
// development gateway serves this.
func (c *HTTPClient) ListGroupMessages(ctx context.Context, group domain.GroupID) ([]domain.MessageChain, error) {
	var out []domain.MessageChain
	if err := c.get(ctx, "/groups/"+url.PathEscape(group.String())+"/messages", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PostEvent enqueues ev for ev.BotID. Only the development gateway serves this.
func (c *HTTPClient) PostEvent(ctx context.Context, ev domain.GroupMessageEvent) (domain.GroupMessageEvent, error) {
	var out domain.GroupMessageEvent
	err := c.post(ctx, "/events/"+url.PathEscape(ev.BotID.String()), ev, &out)
	return out, err
}

func (c *HTTPClient) post(ctx context.Context, path string, in, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway %s %s: %s: %s",
			req.Method, req.URL.Path, resp.Status, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ domain.GatewayClient = (*HTTPClient)(nil)
