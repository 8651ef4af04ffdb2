package transport

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kc3vo/civctl/internal/logging"
)

// WebSocket is a Transport over a WebSocket connection to a remote
// CI-V bridge. Binary messages in each direction carry raw CI-V bytes.
//
// WebSocket delivers whole messages while the session wants a byte
// stream, so leftover bytes from a message larger than the caller's
// buffer are kept and served by later Read calls.
type WebSocket struct {
	conn        *websocket.Conn
	pending     []byte
	readTimeout time.Duration
}

// DialWebSocket connects to a CI-V bridge at the given URL
// (e.g. "ws://bridge.local:8080/civ").
func DialWebSocket(url string) (*WebSocket, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}

	logging.Info("WebSocket bridge connected", zap.String("url", url))

	return &WebSocket{conn: conn}, nil
}

// Write sends p as one binary message.
func (w *WebSocket) Write(p []byte) error {
	if err := w.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return fmt.Errorf("websocket write failed: %w", err)
	}
	return nil
}

// Flush is a no-op; WriteMessage hands the frame to the network stack.
func (w *WebSocket) Flush() error {
	return nil
}

// Read fills p from the pending buffer, receiving the next binary
// message first if the buffer is empty. A timeout yields (0, nil) to
// match serial port semantics.
func (w *WebSocket) Read(p []byte) (int, error) {
	if len(w.pending) == 0 {
		if w.readTimeout > 0 {
			if err := w.conn.SetReadDeadline(time.Now().Add(w.readTimeout)); err != nil {
				return 0, err
			}
		}
		msgType, data, err := w.conn.ReadMessage()
		if err != nil {
			if isTimeout(err) {
				return 0, nil
			}
			return 0, fmt.Errorf("websocket read failed: %w", err)
		}
		if msgType != websocket.BinaryMessage {
			logging.Warn("Ignoring non-binary websocket message",
				zap.Int("message_type", msgType),
			)
			return 0, nil
		}
		w.pending = data
	}

	n := copy(p, w.pending)
	w.pending = w.pending[n:]
	return n, nil
}

// SetReadTimeout bounds each subsequent Read call.
func (w *WebSocket) SetReadTimeout(d time.Duration) error {
	w.readTimeout = d
	return nil
}

// Close sends a close frame and releases the connection.
func (w *WebSocket) Close() error {
	_ = w.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return w.conn.Close()
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
