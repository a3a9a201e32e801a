package handlers

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/moverq1337/hr-core/internal/service"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный id"})
		return 0, false
	}
	return id, true
}

func (h *Handlers) createResume(c *gin.Context) {
	var dto service.ResumeDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
		return
	}
	created, err := h.resumes.Create(c.Request.Context(), &dto, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *Handlers) getResume(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	dto, err := h.resumes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *Handlers) listResumes(c *gin.Context) {
	dtos, err := h.resumes.ListByUser(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *Handlers) updateResume(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var dto service.ResumeDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
		return
	}
	updated, err := h.resumes.Update(c.Request.Context(), id, &dto, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handlers) deleteResume(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.resumes.Delete(c.Request.Context(), id, currentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// uploadResume принимает PDF и email, проверяет файл и запускает
// оркестрацию загрузки. Если резюме уже записано, а быстрое
// сопоставление упало, это частичный успех: отдаем ошибку вместе с id
// сохраненного резюме.
func (h *Handlers) uploadResume(c *gin.Context) {
	log.Info("Начало загрузки резюме")

	email := c.PostForm("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не указан email"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.WithError(err).Error("Ошибка загрузки файла")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Файл не загружен: " + err.Error()})
		return
	}
	if filepath.Ext(fileHeader.Filename) != ".pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Поддерживается только PDF формат"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не удалось открыть файл"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не удалось прочитать файл"})
		return
	}
	if err := api.Validate(bytes.NewReader(data), nil); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный PDF-файл"})
		return
	}

	resume, err := h.resumes.UploadAndNormalize(c.Request.Context(), email, data, fileHeader.Filename, currentUser(c))
	if err != nil {
		if resume != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":     "Резюме сохранено, но быстрое сопоставление не выполнено: " + err.Error(),
				"resume_id": resume.ID,
			})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resume_id": resume.ID})
}

type updateStatusRequest struct {
	ResumeID int `json:"resume_id" binding:"required"`
	StatusID int `json:"status_id" binding:"required"`
}

func (h *Handlers) updateResumeStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
		return
	}
	if err := h.resumes.UpdateStatus(c.Request.Context(), req.ResumeID, req.StatusID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
