package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moverq1337/hr-core/internal/models"
)

func (h *Handlers) createApplication(c *gin.Context) {
	var app models.JobApplication
	if err := c.ShouldBindJSON(&app); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
		return
	}
	created, err := h.applications.Create(c.Request.Context(), &app)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *Handlers) getApplication(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	app, err := h.applications.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *Handlers) listApplications(c *gin.Context) {
	apps, err := h.applications.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *Handlers) updateApplication(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var app models.JobApplication
	if err := c.ShouldBindJSON(&app); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
		return
	}
	updated, err := h.applications.Update(c.Request.Context(), id, &app)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handlers) deleteApplication(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.applications.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) createOffer(c *gin.Context) {
	var offer models.Offer
	if err := c.ShouldBindJSON(&offer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
		return
	}
	created, err := h.offers.Create(c.Request.Context(), &offer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *Handlers) getOffer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	offer, err := h.offers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *Handlers) listOffers(c *gin.Context) {
	offers, err := h.offers.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (h *Handlers) updateOffer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var offer models.Offer
	if err := c.ShouldBindJSON(&offer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
		return
	}
	updated, err := h.offers.Update(c.Request.Context(), id, &offer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handlers) deleteOffer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.offers.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
