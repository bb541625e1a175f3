// Package web is the HTTP adapter: it translates REST requests into
// primary-port calls and maps service errors onto status codes.
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/tpc/internal/ports/primary"
)

// Server wires the gin router to the primary-port services.
type Server struct {
	plans    primary.PlanService
	thoughts primary.ThoughtService
	search   primary.SearchService
	snapshot primary.ContextService
	dbPath   string
	devMode  bool
	router   *gin.Engine
}

// Options configures the HTTP server.
type Options struct {
	DBPath    string // served raw at GET /tpc.db
	StaticDir string // browser UI assets, empty disables
	DevMode   bool   // verbose error payloads and gin debug mode
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(
	plans primary.PlanService,
	thoughts primary.ThoughtService,
	search primary.SearchService,
	snapshot primary.ContextService,
	opts Options,
) *Server {
	if !opts.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(requestID(), gin.Logger(), gin.Recovery())

	s := &Server{
		plans:    plans,
		thoughts: thoughts,
		search:   search,
		snapshot: snapshot,
		dbPath:   opts.DBPath,
		devMode:  opts.DevMode,
		router:   router,
	}

	router.POST("/plans", s.handleCreatePlan)
	router.GET("/plans", s.handleListPlans)
	router.GET("/plans/:id", s.handleGetPlan)
	router.PATCH("/plans/:id", s.handleUpdatePlan)
	router.PUT("/plans/:id", s.handleEditPlan)
	router.PATCH("/plans/:id/changelog", s.handleAppendChangelog)
	router.PATCH("/plans/:id/tags", s.handleMutateTags)
	router.GET("/plans/:id/thoughts", s.handlePlanThoughts)

	router.POST("/thoughts", s.handleCreateThought)
	router.GET("/thoughts", s.handleListThoughts)

	router.GET("/context", s.handleContext)
	router.GET("/search", s.handleSearch)

	// Debug/export escape hatch: the raw database file.
	router.GET("/tpc.db", s.handleExportDB)

	if opts.StaticDir != "" {
		router.Static("/ui", opts.StaticDir)
	}

	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) handleExportDB(c *gin.Context) {
	c.File(s.dbPath)
}
