package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"cooktime/calculator"
	"cooktime/model"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	calc     *calculator.Calculator
	executor *calculator.Executor
}

func NewServer(addr string, upgrader websocket.Upgrader, calc *calculator.Calculator, executor *calculator.Executor) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		calc:     calc,
		executor: executor,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	hub := NewHub(s.calc, s.executor)
	hub.conn = conn
	go hub.handleRequest()
	go hub.handleResponse()
	defer hub.close()

	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("read message failed")
			}
			return
		}
		select {
		case hub.msg <- msg:
		case <-hub.done:
			return
		}
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("启动服务")
	return http.ListenAndServe(s.addr, s.Handler())
}
