// Package httpapi exposes the search driver over gin: a streaming NDJSON
// search endpoint and a health check, following the same
// gin.New/Recovery/route-group/graceful-shutdown shape the driver host's
// REST API used.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"seedsearch/pkg/seedsearch/search"
)

// Server wraps the gin engine and tracks how many searches have been
// served, for the health endpoint.
type Server struct {
	router      *gin.Engine
	startTime   time.Time
	searchCount atomic.Int64
}

// NewServer builds the route table: POST /api/v1/search streams NDJSON
// event frames as the search runs; GET /api/v1/health reports uptime and
// request count.
func NewServer() *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{router: router, startTime: time.Now()}

	api := router.Group("/api/v1")
	{
		api.POST("/search", s.handleSearch)
		api.GET("/health", s.handleHealth)
	}

	return s
}

// Run starts the server on addr and blocks until SIGINT/SIGTERM, then
// shuts down gracefully with a 5-second drain window.
func (s *Server) Run(addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	go func() {
		log.Printf("seedsearch http api listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http api server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down http api server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

type healthResponse struct {
	Status      string `json:"status"`
	Uptime      string `json:"uptime"`
	SearchCount int64  `json:"searchCount"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:      "healthy",
		Uptime:      time.Since(s.startTime).String(),
		SearchCount: s.searchCount.Load(),
	})
}

// handleSearch reads the section-6 JSON request body, validates it, and
// streams one NDJSON frame per Sink callback directly to the response
// writer as the search proceeds. A validation failure is reported as a
// normal JSON 400, since no streaming has started yet at that point.
func (s *Server) handleSearch(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	req, err := search.ParseRequest(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := search.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "application/x-ndjson")
	c.Status(http.StatusOK)
	flusher, canFlush := c.Writer.(http.Flusher)

	enc := json.NewEncoder(c.Writer)
	sink := search.EventSink{Emit: func(ev search.Event) {
		if err := enc.Encode(ev); err != nil {
			return
		}
		if canFlush {
			flusher.Flush()
		}
	}}

	s.searchCount.Add(1)
	if _, err := search.Search(c.Request.Context(), req, sink); err != nil {
		fmt.Fprintf(c.Writer, `{"type":"error","message":%q}`+"\n", err.Error())
	}
}
