package bridge

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kc3vo/civctl/internal/logging"
	"github.com/kc3vo/civctl/internal/transport"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Serial reads poll on this slice so a client disconnect is
	// noticed promptly.
	serialSlice = 100 * time.Millisecond
)

// Server pumps bytes between one serial transport and one WebSocket
// client at a time.
type Server struct {
	port     transport.Transport
	upgrader websocket.Upgrader
	busy     atomic.Bool
}

// New returns a bridge server for the given serial side.
func New(port transport.Transport) *Server {
	return &Server{
		port: port,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The bridge has no same-origin notion; access control
			// is the network it listens on.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP handler exposing the bridge at /serial.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/serial", s.handle)
	return mux
}

// ListenAndServe serves the bridge on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	logging.Info("Serial bridge listening",
		zap.String("addr", addr),
		zap.String("path", "/serial"),
	)
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.ListenAndServe()
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if !s.busy.CompareAndSwap(false, true) {
		http.Error(w, "bridge already in use", http.StatusConflict)
		return
	}
	defer s.busy.Store(false)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}
	defer conn.Close()

	logging.Info("Bridge client connected", zap.String("remote", r.RemoteAddr))

	stop := make(chan struct{})
	serialDone := make(chan struct{})
	go func() {
		defer close(serialDone)
		s.pumpSerial(conn, stop)
	}()

	s.pumpClient(conn)
	close(stop)
	<-serialDone

	logging.Info("Bridge client disconnected", zap.String("remote", r.RemoteAddr))
}

// pumpClient forwards client messages to the serial port. Returns
// when the client goes away or the port rejects a write.
func (s *Server) pumpClient(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Debug("Bridge client read ended", zap.Error(err))
			}
			return
		}
		if len(data) == 0 {
			continue
		}
		logging.LogRawBytes("bridge to serial", data)
		if err := s.port.Write(data); err != nil {
			logging.Warn("Serial write failed", zap.Error(err))
			return
		}
		if err := s.port.Flush(); err != nil {
			logging.Warn("Serial flush failed", zap.Error(err))
			return
		}
	}
}

// pumpSerial forwards serial bytes to the client until stop closes.
// A serial failure closes the connection, which unblocks pumpClient.
func (s *Server) pumpSerial(conn *websocket.Conn, stop <-chan struct{}) {
	buf := make([]byte, 256)
	for {
		select {
		case <-stop:
			return
		default:
		}

		if err := s.port.SetReadTimeout(serialSlice); err != nil {
			logging.Warn("Serial timeout configuration failed", zap.Error(err))
			conn.Close()
			return
		}
		n, err := s.port.Read(buf)
		if err != nil {
			logging.Warn("Serial read failed", zap.Error(err))
			conn.Close()
			return
		}
		if n == 0 {
			continue
		}

		logging.LogRawBytes("bridge to client", buf[:n])
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); err != nil {
			logging.Debug("Bridge client write ended", zap.Error(err))
			return
		}
	}
}
