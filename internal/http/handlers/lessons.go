package handlers

import (
	"net/http"
	"strconv"

	"driveschool/internal/domain/models"
	"driveschool/internal/repositories"
	"driveschool/internal/schedule"
	"driveschool/internal/utils"

	"github.com/gin-gonic/gin"
)

func lessonRepo() repositories.LessonRepository {
	return repositories.LessonRepository{}
}

// GET /api/lessons?from=YYYY-MM-DD&to=YYYY-MM-DD&driver_id=N
func GetLessons(c *gin.Context) {
	from := utils.TrimOrEmpty(c.Query("from"))
	to := utils.TrimOrEmpty(c.Query("to"))
	if from == "" || to == "" {
		RespondError(c, http.StatusBadRequest, "from and to are required", nil)
		return
	}

	var (
		lessons []models.Lesson
		err     error
	)
	if raw := utils.TrimOrEmpty(c.Query("driver_id")); raw != "" {
		driverID, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil || driverID <= 0 {
			RespondError(c, http.StatusBadRequest, "invalid driver_id", perr)
			return
		}
		lessons, err = lessonRepo().ListByDriverRange(driverID, from, to)
	} else {
		lessons, err = lessonRepo().ListByRange(from, to)
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

// GET /api/lessons/:id
func GetLessonByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	l, err := lessonRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

type lessonRequest struct {
	DriverID  int64  `json:"driverId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (r lessonRequest) validate() (models.Lesson, string) {
	l := models.Lesson{
		DriverID:  r.DriverID,
		Date:      utils.TrimOrEmpty(r.Date),
		StartTime: utils.TrimOrEmpty(r.StartTime),
		EndTime:   utils.TrimOrEmpty(r.EndTime),
	}
	if l.DriverID <= 0 {
		return l, "driverId is required"
	}
	if _, err := utils.ParseDate(l.Date); err != nil {
		return l, "date must be YYYY-MM-DD"
	}
	if _, err := schedule.LessonHours(l.StartTime, l.EndTime); err != nil {
		return l, err.Error()
	}
	return l, ""
}

// POST /api/lessons
func CreateLesson(c *gin.Context) {
	var req lessonRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	l, msg := req.validate()
	if msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	id, err := lessonRepo().Create(l)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/lessons/:id
func UpdateLesson(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req lessonRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	l, msg := req.validate()
	if msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	l.ID = id
	if err := lessonRepo().Update(l); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DELETE /api/lessons/:id
func DeleteLesson(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := lessonRepo().Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
