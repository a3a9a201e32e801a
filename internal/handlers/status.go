package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moverq1337/hr-core/internal/models"
)

func (h *Handlers) listStatuses(c *gin.Context) {
	statuses, err := h.statuses.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

func (h *Handlers) getStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	status, err := h.statuses.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handlers) createStatus(c *gin.Context) {
	var status models.CandidateStatus
	if err := c.ShouldBindJSON(&status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
		return
	}
	created, err := h.statuses.Create(c.Request.Context(), &status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *Handlers) updateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var status models.CandidateStatus
	if err := c.ShouldBindJSON(&status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
		return
	}
	updated, err := h.statuses.Update(c.Request.Context(), id, &status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handlers) deleteStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.statuses.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
