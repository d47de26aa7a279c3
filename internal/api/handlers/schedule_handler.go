package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"johnsonShop/internal/api/response"
	"johnsonShop/internal/config"
	"johnsonShop/internal/flowshop"
	"johnsonShop/internal/johnson"
	"johnsonShop/internal/planner"
)

// ScheduleRequest is the task table: one row per task, in input order.
type ScheduleRequest struct {
	Tasks []flowshop.Task `json:"tasks"`
}

// SequenceResponse is the answer of the sequence-only endpoint.
type SequenceResponse struct {
	Sequence []int    `json:"sequence"`
	Labels   []string `json:"labels"`
}

type ScheduleHandler struct {
	planner *planner.Planner
	limits  config.Limits
}

func NewScheduleHandler(p *planner.Planner, limits config.Limits) *ScheduleHandler {
	return &ScheduleHandler{planner: p, limits: limits}
}

// Schedule computes sequence, timing and metrics.
// POST /api/v1/schedule
func (h *ScheduleHandler) Schedule(c *gin.Context) {
	inst, ok := h.bind(c)
	if !ok {
		return
	}
	rep, err := h.planner.Plan(c.Request.Context(), inst)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, rep)
}

// Sequence returns the Johnson order only.
// POST /api/v1/sequence
func (h *ScheduleHandler) Sequence(c *gin.Context) {
	inst, ok := h.bind(c)
	if !ok {
		return
	}
	if err := inst.Validate(); err != nil {
		fail(c, err)
		return
	}
	seq, err := johnson.SequenceWith(johnson.Config{Strategy: johnson.Strategy(h.planner.Strategy())}, inst.Tasks)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, SequenceResponse{Sequence: seq, Labels: flowshop.SequenceLabels(seq)})
}

// Default returns the starting table for n rows: the example data for ten, zeros otherwise.
// GET /api/v1/default?n=10
func (h *ScheduleHandler) Default(c *gin.Context) {
	n := flowshop.DefaultTaskCount
	if raw := c.Query("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, response.VALIDATION_ERROR, "n must be an integer")
			return
		}
		n = v
	}
	if err := h.limits.Check(n); err != nil {
		response.Error(c, response.VALIDATION_ERROR, err.Error())
		return
	}
	response.Success(c, ScheduleRequest{Tasks: flowshop.BlankInstance(n).Tasks})
}

func (h *ScheduleHandler) bind(c *gin.Context) (*flowshop.Instance, bool) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.VALIDATION_ERROR, err.Error())
		return nil, false
	}
	if err := h.limits.Check(len(req.Tasks)); err != nil {
		response.Error(c, response.VALIDATION_ERROR, err.Error())
		return nil, false
	}
	for i := range req.Tasks {
		if req.Tasks[i].Label == "" {
			req.Tasks[i].Label = flowshop.DefaultLabel(i)
		}
	}
	return &flowshop.Instance{Tasks: req.Tasks}, true
}

func fail(c *gin.Context, err error) {
	var verr *flowshop.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithData(c, response.VALIDATION_ERROR, err.Error(), verr.Rows)
	case errors.Is(err, flowshop.ErrNoTasks), errors.Is(err, flowshop.ErrZeroMakespan):
		response.Error(c, response.UNPROCESSABLE, err.Error())
	default:
		response.Error(c, response.ERROR, err.Error())
	}
}
