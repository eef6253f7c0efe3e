package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/atharvakonge/crypto-portfolio-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = 10 * time.Second

// PriceLister is the price read the stream pushes.
type PriceLister interface {
	List(ctx context.Context) ([]models.PriceQuote, error)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// PriceStream pushes the price table to websocket clients on a fixed interval.
type PriceStream struct {
	prices   PriceLister
	interval time.Duration
	log      *logrus.Logger

	// mu orders wg.Add against Close so Wait never misses a stream.
	mu     sync.Mutex
	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

func NewPriceStream(prices PriceLister, interval time.Duration, log *logrus.Logger) *PriceStream {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &PriceStream{
		prices:   prices,
		interval: interval,
		log:      log,
		done:     make(chan struct{}),
	}
}

// Close ends every open stream and waits for them to return.
func (s *PriceStream) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.done)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// acquire registers a stream unless Close has already run.
func (s *PriceStream) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.wg.Add(1)
	return true
}

// Handle handles GET /ws/prices
func (s *PriceStream) Handle(c *gin.Context) {
	if !s.acquire() {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "server shutting down"})
		return
	}
	defer s.wg.Done()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.WithFields(requestFields(c)).WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	entry := s.log.WithFields(requestFields(c))
	entry.Info("price stream opened")

	gone := make(chan struct{})
	go readPump(conn, gone)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.push(conn); err != nil {
			entry.WithError(err).Warn("price stream write failed")
			return
		}

		select {
		case <-ticker.C:
		case <-gone:
			entry.Info("price stream closed by client")
			return
		case <-s.done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			entry.Info("price stream closed by server")
			return
		}
	}
}

func (s *PriceStream) push(conn *websocket.Conn) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()

	quotes, err := s.prices.List(ctx)
	if err != nil {
		return err
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(quotes)
}

// readPump discards client messages and reports when the peer goes away.
func readPump(conn *websocket.Conn, gone chan<- struct{}) {
	defer close(gone)
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}
