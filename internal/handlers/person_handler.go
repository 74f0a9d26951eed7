package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stafftrack/skills-backend/internal/database"
	"github.com/stafftrack/skills-backend/internal/models"
	"github.com/stafftrack/skills-backend/internal/services"
)

// PersonHandler handles person-related HTTP requests
type PersonHandler struct {
	service *services.PeopleManagementService
	logger  *logrus.Logger
}

// NewPersonHandler creates a new PersonHandler
func NewPersonHandler(service *services.PeopleManagementService, logger *logrus.Logger) *PersonHandler {
	return &PersonHandler{service: service, logger: logger}
}

// GetPerson fetches a person's details by staff number
// GET /api/people/:staffNumber
func (h *PersonHandler) GetPerson(c *gin.Context) {
	staffNumber := c.Param("staffNumber")

	person, err := h.service.FetchPersonByStaffNumber(staffNumber)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if person == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Person not found",
		})
		return
	}

	c.JSON(http.StatusOK, person)
}

// GetPeople fetches all people with their skills
// GET /api/people
func (h *PersonHandler) GetPeople(c *gin.Context) {
	people, err := h.service.FetchPeople()
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, people)
}

// CreatePerson creates a new person, creating any skills that don't exist yet
// POST /api/people
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var dto models.PersonDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}
	if !validPersonSkills(c, dto.PersonSkills) {
		return
	}

	existing, err := h.service.FetchPersonByStaffNumber(dto.StaffNumber)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "conflict",
			"message": "Person with provided staff number already exists",
		})
		return
	}

	if err := h.service.CreateOrUpdatePersonWithSkills(&dto, false); err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "conflict",
				"message": "Person with provided staff number already exists",
			})
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto)
}

// UpdatePerson updates a person's details and manages their skills
// PUT /api/people/:staffNumber
func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	staffNumber := c.Param("staffNumber")

	var dto models.PersonDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}
	if !validPersonSkills(c, dto.PersonSkills) {
		return
	}

	existing, err := h.service.FetchPersonByStaffNumber(staffNumber)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Person not found",
		})
		return
	}

	if err := h.service.CreateOrUpdatePersonWithSkills(&dto, true); err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto)
}

// DeletePerson deletes a person and their skill associations
// DELETE /api/people/:staffNumber
func (h *PersonHandler) DeletePerson(c *gin.Context) {
	staffNumber := c.Param("staffNumber")

	person, err := h.service.FetchPersonByStaffNumber(staffNumber)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if person == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Person not found",
		})
		return
	}

	if err := h.service.DeletePerson(person); err != nil {
		h.internalError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PersonHandler) internalError(c *gin.Context, err error) {
	h.logger.WithError(err).Error("Error while processing the request")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "internal_error",
		"message": "Error while processing the request",
	})
}

// validPersonSkills rejects entries with a missing skill name or a level
// outside the closed enumeration, writing a 400 response on failure
func validPersonSkills(c *gin.Context, personSkills []models.PersonSkillDTO) bool {
	for _, ps := range personSkills {
		if ps.SkillName == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation_error",
				"message": "Skill name should be present",
			})
			return false
		}
		if !ps.SkillLevel.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation_error",
				"message": "Skill level must be one of NOVICE, PRACTITIONER, EXPERT",
			})
			return false
		}
	}
	return true
}
