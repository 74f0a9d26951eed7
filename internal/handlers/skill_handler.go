package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stafftrack/skills-backend/internal/database"
	"github.com/stafftrack/skills-backend/internal/models"
	"github.com/stafftrack/skills-backend/internal/services"
)

// SkillHandler handles skill-related HTTP requests
type SkillHandler struct {
	service *services.PeopleManagementService
	logger  *logrus.Logger
}

// NewSkillHandler creates a new SkillHandler
func NewSkillHandler(service *services.PeopleManagementService, logger *logrus.Logger) *SkillHandler {
	return &SkillHandler{service: service, logger: logger}
}

// GetSkill fetches a skill's details by name
// GET /api/skills/:name
func (h *SkillHandler) GetSkill(c *gin.Context) {
	name := c.Param("name")

	skill, err := h.service.FetchSkillByName(name)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if skill == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Skill not found",
		})
		return
	}

	c.JSON(http.StatusOK, skill)
}

// GetSkills fetches all skills
// GET /api/skills
func (h *SkillHandler) GetSkills(c *gin.Context) {
	skills, err := h.service.FetchSkills()
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, skills)
}

// CreateSkill creates a new skill
// POST /api/skills
func (h *SkillHandler) CreateSkill(c *gin.Context) {
	var dto models.SkillDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}

	existing, err := h.service.FetchSkillByName(dto.Name)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "conflict",
			"message": "Skill with provided name already exists",
		})
		return
	}

	if err := h.service.CreateOrUpdateSkill(&dto, false); err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "conflict",
				"message": "Skill with provided name already exists",
			})
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto)
}

// UpdateSkill updates a skill's details
// PUT /api/skills/:name
func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	name := c.Param("name")

	var dto models.SkillDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}

	existing, err := h.service.FetchSkillByName(name)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Skill not found",
		})
		return
	}

	if err := h.service.CreateOrUpdateSkill(&dto, true); err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto)
}

// DeleteSkill deletes a skill and its associations with any person
// DELETE /api/skills/:name
func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	name := c.Param("name")

	skill, err := h.service.FetchSkillByName(name)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if skill == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Skill not found",
		})
		return
	}

	if err := h.service.DeleteSkill(skill); err != nil {
		h.internalError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SkillHandler) internalError(c *gin.Context, err error) {
	h.logger.WithError(err).Error("Error while processing the request")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "internal_error",
		"message": "Error while processing the request",
	})
}
