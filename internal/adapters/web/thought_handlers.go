package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/tpc/internal/ports/primary"
)

func (s *Server) handleCreateThought(c *gin.Context) {
	var req primary.CreateThoughtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	thought, err := s.thoughts.CreateThought(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, thought)
}

func (s *Server) handleListThoughts(c *gin.Context) {
	req := primary.ListThoughtsRequest{
		Since: c.Query("since"),
		Limit: c.Query("limit"),
		Tags:  c.Query("tags"),
	}

	thoughts, err := s.thoughts.ListThoughts(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, thoughts)
}
