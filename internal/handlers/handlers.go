// Package handlers поднимает HTTP API поверх сервисного слоя.
// Маршруты повторяют контракт исходного core-data-service.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moverq1337/hr-core/internal/auth"
	"github.com/moverq1337/hr-core/internal/clients"
	"github.com/moverq1337/hr-core/internal/models"
	"github.com/moverq1337/hr-core/internal/service"
	"github.com/moverq1337/hr-core/internal/storage"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

type Handlers struct {
	users        *service.UserService
	resumes      *service.ResumeService
	vacancies    *service.VacancyService
	matches      *service.MatchService
	statuses     *service.CandidateStatusService
	applications *service.JobApplicationService
	offers       *service.OfferService
	auth         *auth.Manager
}

func New(
	users *service.UserService,
	resumes *service.ResumeService,
	vacancies *service.VacancyService,
	matches *service.MatchService,
	statuses *service.CandidateStatusService,
	applications *service.JobApplicationService,
	offers *service.OfferService,
	authManager *auth.Manager,
) *Handlers {
	return &Handlers{
		users:        users,
		resumes:      resumes,
		vacancies:    vacancies,
		matches:      matches,
		statuses:     statuses,
		applications: applications,
		offers:       offers,
		auth:         authManager,
	}
}

func (h *Handlers) SetupRoutes(r *gin.Engine) {
	r.Use(requestID())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
	}

	api := r.Group("/api", h.authRequired())
	{
		resumes := api.Group("/resumes")
		{
			resumes.POST("", h.createResume)
			resumes.GET("", h.listResumes)
			resumes.GET("/:id", h.getResume)
			resumes.PUT("/:id", h.updateResume)
			resumes.DELETE("/:id", h.deleteResume)
			resumes.POST("/upload", h.uploadResume)
			resumes.POST("/update-status", h.updateResumeStatus)
		}

		vacancies := api.Group("/vacancies")
		{
			vacancies.POST("", h.createVacancy)
			vacancies.GET("", h.listVacancies)
			vacancies.GET("/stats", h.vacancyStats)
			vacancies.GET("/:id", h.getVacancy)
			vacancies.PUT("/:id", h.updateVacancy)
			vacancies.DELETE("/:id", h.deleteVacancy)
			vacancies.POST("/parse", h.parseVacancy)
			vacancies.POST("/generate", h.generateVacancy)
		}

		matches := api.Group("/resume-vacancy-matches")
		{
			matches.POST("", h.createMatch)
			matches.GET("", h.listMatches)
			matches.GET("/:id", h.getMatch)
			matches.PUT("/:id", h.updateMatch)
			matches.DELETE("/:id", h.deleteMatch)
			matches.POST("/full", h.matchFull)
		}

		statuses := api.Group("/candidate-status")
		{
			statuses.GET("", h.listStatuses)
			statuses.GET("/:id", h.getStatus)
			statuses.POST("", h.createStatus)
			statuses.PUT("/:id", h.updateStatus)
			statuses.DELETE("/:id", h.deleteStatus)
		}

		applications := api.Group("/job-applications")
		{
			applications.POST("", h.createApplication)
			applications.GET("", h.listApplications)
			applications.GET("/:id", h.getApplication)
			applications.PUT("/:id", h.updateApplication)
			applications.DELETE("/:id", h.deleteApplication)
		}

		offers := api.Group("/offers")
		{
			offers.POST("", h.createOffer)
			offers.GET("", h.listOffers)
			offers.GET("/:id", h.getOffer)
			offers.PUT("/:id", h.updateOffer)
			offers.DELETE("/:id", h.deleteOffer)
		}
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// authRequired разбирает Bearer-токен и кладет пользователя в контекст.
func (h *Handlers) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		const prefix = "Bearer "
		header := c.GetHeader("Authorization")
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Требуется авторизация"})
			return
		}
		userID, err := h.auth.ParseToken(header[len(prefix):])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Невалидный токен"})
			return
		}
		user, err := h.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Пользователь не найден"})
			return
		}
		c.Set("user", user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// respondError переводит доменные ошибки в HTTP-статусы.
func respondError(c *gin.Context, err error) {
	var extErr *clients.ExternalError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &extErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrSerialization):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Внутренняя ошибка")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
