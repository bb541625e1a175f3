package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/tpc/internal/ports/primary"
)

func (s *Server) handleSearch(c *gin.Context) {
	req := primary.SearchRequest{
		Query: c.Query("q"),
		Type:  c.Query("type"),
		Tags:  c.Query("tags"),
		Limit: c.Query("limit"),
	}

	results, err := s.search.Search(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) handleContext(c *gin.Context) {
	snapshot, err := s.snapshot.GetContext(c.Request.Context(), c.Query("search"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
