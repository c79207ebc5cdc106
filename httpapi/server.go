// Package httpapi exposes a read-only view of a kernel.Kernel over HTTP,
// grounded on the pack's gin usage for a JSON request/response surface
// rather than hand-rolling one on top of net/http.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jtomasevic/synar/kernel"
)

// Server wraps a *kernel.Kernel with a gin.Engine exposing query(), ask(),
// and belief-lookup over JSON, matching spec §6's surface operations.
type Server struct {
	k      *kernel.Kernel
	engine *gin.Engine
}

// New builds a Server ready to Run. Routes are registered eagerly so tests
// can hit Engine() directly with httptest without starting a listener.
func New(k *kernel.Kernel) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{k: k, engine: gin.New()}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

// Engine exposes the underlying gin.Engine for tests and for embedding in a
// larger mux.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Run starts the HTTP server on addr, blocking until it returns an error.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) routes() {
	s.engine.GET("/health", healthCheck)
	s.engine.GET("/edges/:id", s.getEdge)
	s.engine.GET("/edges/:id/beliefs", s.getBeliefs)
	s.engine.POST("/query", s.query)
	s.engine.POST("/ask", s.ask)
}

func (s *Server) getEdge(c *gin.Context) {
	edge, ok := s.k.GetEdge(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "edge not found"})
		return
	}
	c.JSON(http.StatusOK, edge)
}

func (s *Server) getBeliefs(c *gin.Context) {
	beliefs := s.k.GetBeliefs(c.Param("id"))
	if beliefs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "edge not found"})
		return
	}
	c.JSON(http.StatusOK, beliefs)
}

// queryRequest mirrors kernel.Pattern/kernel.QueryOptions closely enough for
// a JSON caller to build ad hoc queries without importing the kernel
// package's Go types.
type queryRequest struct {
	Type           string  `json:"type"`
	Args           []EdgeRef `json:"args"`
	Limit          int     `json:"limit"`
	MinExpectation float64 `json:"minExpectation"`
	SortBy         string  `json:"sortBy"`
}

// EdgeRef is a leaf reference in a JSON query: either a literal edge id or a
// variable name to bind.
type EdgeRef struct {
	Term     string `json:"term"`
	Variable string `json:"variable"`
}

func (r EdgeRef) toPattern() *kernel.Pattern {
	if r.Variable != "" {
		return kernel.VariablePattern(r.Variable, nil)
	}
	return kernel.TermPattern(r.Term)
}

func (s *Server) query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	args := make([]*kernel.Pattern, len(req.Args))
	for i, a := range req.Args {
		args[i] = a.toPattern()
	}
	p := kernel.CompoundPattern(req.Type, args...)
	results := s.k.Query(p, kernel.QueryOptions{
		Limit:          req.Limit,
		MinExpectation: req.MinExpectation,
		SortBy:         req.SortBy,
	})
	c.JSON(http.StatusOK, results)
}

type askRequest struct {
	EdgeID         string  `json:"edgeId"`
	MinExpectation float64 `json:"minExpectation"`
	TimeoutMs      int     `json:"timeoutMs"`
}

func (s *Server) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	future := s.k.Ask(kernel.EdgeID(req.EdgeID), kernel.AskOptions{
		MinExpectation: req.MinExpectation,
		TimeoutMs:      req.TimeoutMs,
	})
	answer, err := future.Wait()
	if err != nil {
		status := http.StatusRequestTimeout
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, answer)
}

// healthCheck is a tiny liveness probe, registered by routes() alongside
// the other endpoints.
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}
