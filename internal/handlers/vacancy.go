package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moverq1337/hr-core/internal/clients"
	"github.com/moverq1337/hr-core/internal/service"
)

func (h *Handlers) createVacancy(c *gin.Context) {
	var dto service.VacancyDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
		return
	}
	created, err := h.vacancies.Create(c.Request.Context(), &dto, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *Handlers) getVacancy(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	dto, err := h.vacancies.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *Handlers) listVacancies(c *gin.Context) {
	dtos, err := h.vacancies.ListByUser(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *Handlers) updateVacancy(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var dto service.VacancyDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
		return
	}
	updated, err := h.vacancies.Update(c.Request.Context(), id, &dto, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handlers) deleteVacancy(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.vacancies.Delete(c.Request.Context(), id, currentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type parseVacancyRequest struct {
	Source string `json:"source" binding:"required"`
	URL    string `json:"url" binding:"required"`
}

func (h *Handlers) parseVacancy(c *gin.Context) {
	var req parseVacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
		return
	}
	dto, err := h.vacancies.ParseAndSave(c.Request.Context(), req.Source, req.URL, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *Handlers) generateVacancy(c *gin.Context) {
	var req clients.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
		return
	}
	dto, err := h.vacancies.GenerateAndSave(c.Request.Context(), req, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *Handlers) vacancyStats(c *gin.Context) {
	stats, err := h.vacancies.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
