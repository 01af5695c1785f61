package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchbyimage/internal/domain"
)

func newPair(t *testing.T) (*Server, *HTTPClient) {
	t.Helper()
	srv := NewServer()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, NewHTTP(ts.URL+"/", ts.Client())
}

func event(group domain.GroupID, text string) domain.GroupMessageEvent {
	return domain.GroupMessageEvent{
		BotID:    7,
		GroupID:  group,
		SenderID: 100,
		Message: domain.MessageChain{
			domain.Plain(text),
			domain.Image("img-1", "http://img.example/1.png"),
		},
	}
}

func TestGateway_EventQueue(t *testing.T) {
	ctx := context.Background()
	_, c := newPair(t)

	for i, text := range []string{"a", "b", "c"} {
		ev, err := c.PostEvent(ctx, event(domain.GroupID(i+1), text))
		require.NoError(t, err)
		assert.NotEmpty(t, ev.ID)
		assert.NotZero(t, ev.Time)
	}

	evs, err := c.FetchEvents(ctx, 7, 2)
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, "a"+domain.ImagePlaceholder, evs[0].Message.ContentString())

	all, err := c.FetchEvents(ctx, 7, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, c.AckEvents(ctx, 7, 2))
	evs, err = c.FetchEvents(ctx, 7, 10)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, domain.GroupID(3), evs[0].GroupID)

	require.NoError(t, c.AckEvents(ctx, 7, 5))
	evs, err = c.FetchEvents(ctx, 7, 10)
	require.NoError(t, err)
	assert.Empty(t, evs)

	evs, err = c.FetchEvents(ctx, 8, 10)
	require.NoError(t, err)
	assert.Empty(t, evs)
}

func TestGateway_GroupMessages(t *testing.T) {
	ctx := context.Background()
	_, c := newPair(t)

	chain := domain.MessageChain{
		domain.Quote("ev-1"),
		domain.Image("img-2", "http://img.example/2.png"),
		domain.Plain("hello"),
	}
	require.NoError(t, c.SendGroupMessage(ctx, 42, chain))

	got, err := c.ListGroupMessages(ctx, 42)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, chain, got[0])

	empty, err := c.ListGroupMessages(ctx, 43)
	require.NoError(t, err)
	assert.Empty(t, empty)

	err = c.SendGroupMessage(ctx, 42, nil)
	assert.Error(t, err)
}

func TestGateway_QueryImageURL(t *testing.T) {
	ctx := context.Background()
	_, c := newPair(t)

	_, err := c.QueryImageURL(ctx, "img-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	_, err = c.PostEvent(ctx, event(1, "x"))
	require.NoError(t, err)

	u, err := c.QueryImageURL(ctx, "img-1")
	require.NoError(t, err)
	assert.Equal(t, "http://img.example/1.png", u)
}

func TestGateway_RegisterPlugin(t *testing.T) {
	ctx := context.Background()
	srv, c := newPair(t)

	require.NoError(t, c.RegisterPlugin(ctx, domain.PluginDescriptor{ID: "p", Name: "n", Version: "1"}))
	assert.Equal(t, []domain.PluginDescriptor{{ID: "p", Name: "n", Version: "1"}}, srv.Plugins())

	assert.Error(t, c.RegisterPlugin(ctx, domain.PluginDescriptor{}))
}

func TestServer_BadRequests(t *testing.T) {
	h := NewServer().Handler()

	uu := map[string]struct {
		method, path, body string
		status             int
	}{
		"bad bot":     {method: http.MethodGet, path: "/events/abc", status: http.StatusBadRequest},
		"bad limit":   {method: http.MethodGet, path: "/events/1?limit=x", status: http.StatusBadRequest},
		"bad json":    {method: http.MethodPost, path: "/events/1", body: "{", status: http.StatusBadRequest},
		"neg ack":     {method: http.MethodPost, path: "/events/1/ack", body: `{"count":-1}`, status: http.StatusBadRequest},
		"bad group":   {method: http.MethodPost, path: "/groups/g/messages", body: "[]", status: http.StatusBadRequest},
		"wrong verb":  {method: http.MethodDelete, path: "/events/1", status: http.StatusMethodNotAllowed},
		"fetch empty": {method: http.MethodGet, path: "/events/1", status: http.StatusOK},
	}

	for k, u := range uu {
		t.Run(k, func(t *testing.T) {
			req := httptest.NewRequest(u.method, u.path, strings.NewReader(u.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, u.status, rec.Code)
		})
	}
}
