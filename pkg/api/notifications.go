package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sduikit/sdui/internal/logging"
)

// UpdateHandler receives page updates pushed by the server.
type UpdateHandler func(Update)

// Notifications is a websocket listener for page update events.
type Notifications struct {
	url  string
	conn *websocket.Conn
	done chan struct{}
	exit chan struct{}

	mx  sync.Mutex
	hdl UpdateHandler
}

func newNotifications(url string) *Notifications {
	return &Notifications{
		url:  url,
		done: make(chan struct{}),
		exit: make(chan struct{}),
	}
}

// Connect opens the websocket connection and starts listening.
func (n *Notifications) Connect() error {
	logging.Info("connecting to update service at %q", n.url)

	conn, _, err := websocket.DefaultDialer.Dial(n.url, nil)
	if err != nil {
		return fmt.Errorf("websocket connection failed: %v", err)
	}

	n.conn = conn
	n.done = make(chan struct{})
	n.exit = make(chan struct{})

	go n.loop()
	go n.read()

	return nil
}

// Disconnect asks the server to close the connection.
func (n *Notifications) Disconnect() {
	close(n.exit)
}

// OnUpdate registers the handler for incoming updates.
func (n *Notifications) OnUpdate(f UpdateHandler) {
	n.mx.Lock()
	defer n.mx.Unlock()
	n.hdl = f
}

func (n *Notifications) onDisconnected() {
	logging.Info("update service disconnected")
	if n.conn != nil {
		n.conn.Close()
		n.conn = nil
	}
}

func (n *Notifications) loop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	defer n.onDisconnected()

	for {
		select {
		case <-n.done:
			return
		case <-n.exit:
			// close the connection by sending a close message
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			err := n.conn.WriteMessage(websocket.CloseMessage, msg)
			if err != nil {
				logging.Warning("write close: %v", err)
				return
			}
			// wait for the server to close the connection (or timeout)
			select {
			case <-n.done:
			case <-time.After(time.Second):
			}
			return
		case <-ticker.C:
			err := n.conn.WriteMessage(websocket.PingMessage, nil)
			if err != nil {
				logging.Warning("ping failed: %v", err)
				return
			}
		}
	}
}

func (n *Notifications) read() {
	defer close(n.done)
	for {
		_, msg, err := n.conn.ReadMessage()
		if err != nil {
			// server closed the connection
			logging.Debug("read loop ends: %v", err)
			return
		}
		n.onMessage(msg)
	}
}

func (n *Notifications) onMessage(msg []byte) {
	u, err := parseUpdate(msg)
	if err != nil {
		logging.Warning("ignore invalid update message: %v", err)
		return
	}

	n.mx.Lock()
	hdl := n.hdl
	n.mx.Unlock()

	if hdl != nil {
		hdl(u)
	}
}
