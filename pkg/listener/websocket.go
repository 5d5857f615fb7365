package listener

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"pathctx/pkg/conf"
)

// HandshakeTimeout bounds websocket upgrades and dials
const HandshakeTimeout = 10 * time.Second

var DefaultWebSocketDialer = &websocket.Dialer{
	HandshakeTimeout: HandshakeTimeout,
	Subprotocols:     []string{conf.ProtoVersion},
}

func newUpgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		HandshakeTimeout: HandshakeTimeout,
		Subprotocols:     []string{conf.ProtoVersion},
	}
}

func FormatToWS(u *url.URL) (*url.URL, error) {
	// Create a copy of the URL to avoid modifying the original
	newU := *u
	switch newU.Scheme {
	case "http":
		newU.Scheme = "ws"
	case "https":
		newU.Scheme = "wss"
	case "":
		newU.Scheme = "ws"
	default:
		return u, fmt.Errorf("unknown client url scheme \"%s\"", newU.Scheme)
	}
	return &newU, nil
}

func ResolveURL(rawURL string) (*url.URL, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("empty URL")
	}
	// url.Parse will return an error if there is no scheme, but we want to assume that's HTTP
	miniParse := strings.Split(rawURL, "://")
	if len(miniParse) == 1 {
		rawURL = fmt.Sprintf("http://%s", rawURL)
	}
	u, pErr := url.Parse(rawURL)
	if pErr != nil {
		return nil, fmt.Errorf("failed to parse URL: %v", pErr)
	}
	if u.Scheme == "" {
		u.Scheme = "http"
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return nil, fmt.Errorf("host must be specified")
	}

	return u, nil
}

// WebSocketURL turns a server address into its completion endpoint URL
func WebSocketURL(rawURL string) (string, error) {
	u, err := ResolveURL(rawURL)
	if err != nil {
		return "", err
	}
	wsURL, err := FormatToWS(u)
	if err != nil {
		return "", err
	}
	wsURL.Path = WsPath
	return wsURL.String(), nil
}
