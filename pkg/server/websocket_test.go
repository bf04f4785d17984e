package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/vango-ssr/pkg/middleware"
)

func dial(t *testing.T, ts *httptest.Server, query string, header http.Header) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("Dial(%s) error = %v", url, err)
	}
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, messageType int, msg string) socketReply {
	t.Helper()
	if err := conn.WriteMessage(messageType, []byte(msg)); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var reply socketReply
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return reply
}

func TestWebSocketRender(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).Handler())
	defer ts.Close()
	conn := dial(t, ts, "", nil)

	tests := []struct {
		name string
		msg  string
		html string
		code string
	}{
		{
			name: "element",
			msg:  `{"type": "p", "props": {"children": ["a", "b"]}}`,
			html: `<p data-ssr-root="">a<!-- -->b</p>`,
		},
		{
			name: "component",
			msg:  `{"type": "Counter", "props": {"count": 2}}`,
			html: "",
		},
		{
			name: "empty document",
			msg:  "null",
			html: "",
		},
		{
			name: "decode error",
			msg:  `{"type": "Nope"}`,
			code: "E041",
		},
		{
			name: "render error",
			msg:  `{"type": "img", "props": {"children": "x"}}`,
			code: "E002",
		},
	}

	// Errors leave the connection usable, so every case shares one socket.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := roundTrip(t, conn, websocket.TextMessage, tt.msg)
			if tt.code != "" {
				if reply.Error == nil {
					t.Fatalf("reply = %+v, want error %s", reply, tt.code)
				}
				if reply.Error.Code != tt.code {
					t.Errorf("error code = %q, want %q", reply.Error.Code, tt.code)
				}
				if reply.HTML != nil {
					t.Errorf("error reply also carries html %q", *reply.HTML)
				}
				return
			}
			if reply.Error != nil {
				t.Fatalf("unexpected error reply: %+v", reply.Error)
			}
			if reply.HTML == nil {
				t.Fatal("reply has no html")
			}
			if tt.html != "" && *reply.HTML != tt.html {
				t.Errorf("html = %q, want %q", *reply.HTML, tt.html)
			}
		})
	}
}

func TestWebSocketStatic(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).Handler())
	defer ts.Close()
	conn := dial(t, ts, "?static=1", nil)

	reply := roundTrip(t, conn, websocket.TextMessage, `{"type": "Greeting", "props": {"name": "Sam"}}`)
	if reply.HTML == nil {
		t.Fatalf("reply = %+v, want html", reply)
	}
	if want := `<h1 class="greeting">Hello, Sam!</h1>`; *reply.HTML != want {
		t.Errorf("html = %q, want %q", *reply.HTML, want)
	}
}

func TestWebSocketBinaryMessage(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).Handler())
	defer ts.Close()
	conn := dial(t, ts, "", nil)

	reply := roundTrip(t, conn, websocket.BinaryMessage, `{"type": "p"}`)
	if reply.Error == nil || reply.Error.Code != "E152" {
		t.Errorf("reply = %+v, want E152", reply)
	}
}

func TestWebSocketCrossOrigin(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		t.Fatal("Dial() succeeded for a foreign origin")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("response = %v, want 403", resp)
	}
}

func TestWebSocketMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := middleware.NewMetrics(middleware.WithRegistry(reg))
	ts := httptest.NewServer(newTestServer(t, WithMetrics(m, reg)).Handler())
	defer ts.Close()

	conn := dial(t, ts, "", nil)
	roundTrip(t, conn, websocket.TextMessage, `{"type": "b"}`)
	roundTrip(t, conn, websocket.TextMessage, `{"type": "b"`)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	counts := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "vango_ssr_websocket_messages_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "status" {
					counts[label.GetValue()] = metric.GetCounter().GetValue()
				}
			}
		}
	}
	if counts["success"] != 1 || counts["error"] != 1 {
		t.Errorf("websocket message counts = %v, want one success and one error", counts)
	}
}
