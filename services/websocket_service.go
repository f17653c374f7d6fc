package services

import (
	"log"
	"net/http"
	"sync"

	"organizely/organizer/broker"
	"organizely/organizer/config"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WebSocketServiceInterface interface {
	Start(cfg config.Config)
	Stop()
	HandleConnection(c *gin.Context)
	Broadcast(message []byte)
}

// WebSocketService forwards broker events to connected clients so open tabs
// see task and project changes without polling.
type WebSocketService struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool

	consumer *broker.Consumer
	done     chan struct{}
}

func NewWebSocketService() *WebSocketService {
	return &WebSocketService{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
		done:    make(chan struct{}),
	}
}

func (s *WebSocketService) Start(cfg config.Config) {
	subjects := []string{
		broker.ProjectSubject,
		broker.TaskSubject,
		broker.SubtaskSubject,
	}

	consumer, err := broker.InitConsumer(cfg, subjects, "websocket-service")
	if err != nil {
		log.Printf("Warning: Failed to initialize websocket consumer: %v", err)
		return
	}
	s.consumer = consumer

	go s.forwardEvents()
	log.Println("WebSocket service started")
}

func (s *WebSocketService) Stop() {
	close(s.done)
	if s.consumer != nil {
		s.consumer.Close()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
}

func (s *WebSocketService) HandleConnection(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket connection: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	// Clients only listen; the read loop just detects disconnects.
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *WebSocketService) Broadcast(message []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("Failed to write to websocket client: %v", err)
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

func (s *WebSocketService) forwardEvents() {
	messages := s.consumer.GetMessageChannel()
	for {
		select {
		case <-s.done:
			return
		case msg := <-messages:
			s.Broadcast(msg.Data)
		}
	}
}

var WebSocketServiceInstance WebSocketServiceInterface
