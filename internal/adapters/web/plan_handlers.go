package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/tpc/internal/ports/primary"
)

func (s *Server) handleCreatePlan(c *gin.Context) {
	var req primary.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	summary, err := s.plans.CreatePlan(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

func (s *Server) handleListPlans(c *gin.Context) {
	req := primary.ListPlansRequest{
		Status:      c.Query("status"),
		NeedsReview: c.Query("needs_review"),
		Since:       c.Query("since"),
		Tags:        c.Query("tags"),
	}

	plans, err := s.plans.ListPlans(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (s *Server) handleGetPlan(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}

	plan, err := s.plans.GetPlan(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) handleUpdatePlan(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}

	var req primary.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	resp, err := s.plans.UpdatePlan(c.Request.Context(), id, req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	// Historical response-shape asymmetry: bare {status} unless the
	// caller supplied needs_review explicitly.
	if resp.StatusOnly {
		c.JSON(http.StatusOK, gin.H{"status": resp.Plan.Status})
		return
	}
	c.JSON(http.StatusOK, resp.Plan)
}

func (s *Server) handleEditPlan(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}

	var req primary.EditPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	plan, err := s.plans.EditPlan(c.Request.Context(), id, req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) handleAppendChangelog(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}

	var req primary.AppendChangelogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	plan, err := s.plans.AppendChangelog(c.Request.Context(), id, req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) handleMutateTags(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}

	var req primary.MutateTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	resp, err := s.plans.MutateTags(c.Request.Context(), id, req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePlanThoughts(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}

	thoughts, err := s.thoughts.ListThoughtsForPlan(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, thoughts)
}
