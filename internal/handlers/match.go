package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moverq1337/hr-core/internal/service"
)

func (h *Handlers) createMatch(c *gin.Context) {
	var dto service.MatchDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
		return
	}
	created, err := h.matches.Create(c.Request.Context(), &dto, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *Handlers) getMatch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	dto, err := h.matches.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *Handlers) listMatches(c *gin.Context) {
	dtos, err := h.matches.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *Handlers) updateMatch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var dto service.MatchDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
		return
	}
	updated, err := h.matches.Update(c.Request.Context(), id, &dto, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handlers) deleteMatch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.matches.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type matchFullRequest struct {
	ResumeID  int `json:"resume_id" binding:"required"`
	VacancyID int `json:"vacancy_id" binding:"required"`
}

// matchFull запускает полное сопоставление пары через внешний скоринг.
func (h *Handlers) matchFull(c *gin.Context) {
	var req matchFullRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат запроса"})
		return
	}
	dto, err := h.matches.MatchFull(c.Request.Context(), req.ResumeID, req.VacancyID, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}
