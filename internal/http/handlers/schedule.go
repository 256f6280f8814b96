package handlers

import (
	"net/http"
	"strconv"

	"driveschool/internal/http/middleware"
	"driveschool/internal/schedule"
	"driveschool/internal/services"
	"driveschool/internal/utils"

	"github.com/gin-gonic/gin"
)

func scheduleSvc(c *gin.Context) services.ScheduleService {
	return services.ScheduleService{RequestID: middleware.GetRequestID(c)}
}

func layoutSvc(c *gin.Context) services.LayoutService {
	return services.LayoutService{RequestID: middleware.GetRequestID(c)}
}

func docsSvc(c *gin.Context) services.DocsService {
	return services.DocsService{
		ScheduleSvc: scheduleSvc(c),
		RequestID:   middleware.GetRequestID(c),
	}
}

func windowParams(c *gin.Context) (from, to string, ok bool) {
	from = utils.TrimOrEmpty(c.Query("from"))
	to = utils.TrimOrEmpty(c.Query("to"))
	if from == "" || to == "" {
		RespondError(c, http.StatusBadRequest, "from and to are required", nil)
		return "", "", false
	}
	if _, err := utils.ParseDate(from); err != nil {
		RespondError(c, http.StatusBadRequest, "from must be YYYY-MM-DD", err)
		return "", "", false
	}
	if _, err := utils.ParseDate(to); err != nil {
		RespondError(c, http.StatusBadRequest, "to must be YYYY-MM-DD", err)
		return "", "", false
	}
	return from, to, true
}

func geometryParams(c *gin.Context) schedule.Geometry {
	g := schedule.DefaultGeometry
	if v, err := strconv.ParseFloat(c.Query("unit_width"), 64); err == nil && v > 0 {
		g.UnitWidth = v
	}
	if v, err := strconv.ParseFloat(c.Query("gap"), 64); err == nil && v >= 0 {
		g.Gap = v
	}
	if v, err := strconv.ParseFloat(c.Query("padding"), 64); err == nil && v >= 0 {
		g.Padding = v
	}
	return g
}

// GET /api/drivers/:id/compliance?from=YYYY-MM-DD&to=YYYY-MM-DD
func GetDriverCompliance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	from, to, ok := windowParams(c)
	if !ok {
		return
	}

	ev, err := scheduleSvc(c).EvaluateDriver(id, from, to)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

// POST /api/compliance/recompute?from=YYYY-MM-DD&to=YYYY-MM-DD&workers=N
func RecomputeCompliance(c *gin.Context) {
	from, to, ok := windowParams(c)
	if !ok {
		return
	}
	workers, _ := strconv.Atoi(c.Query("workers"))

	results, err := scheduleSvc(c).EvaluateAll(from, to, workers)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GET /api/schedule/day?date=YYYY-MM-DD
func GetDayLayout(c *gin.Context) {
	date := utils.TrimOrEmpty(c.Query("date"))
	if date == "" {
		RespondError(c, http.StatusBadRequest, "date is required", nil)
		return
	}

	res, err := layoutSvc(c).Day(date, geometryParams(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/schedule/week?start=YYYY-MM-DD
func GetWeekLayout(c *gin.Context) {
	start := utils.TrimOrEmpty(c.Query("start"))
	if start == "" {
		RespondError(c, http.StatusBadRequest, "start is required", nil)
		return
	}

	res, err := layoutSvc(c).Week(start, geometryParams(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/schedule/day-sheet?date=YYYY-MM-DD
func GetDaySheetPDF(c *gin.Context) {
	date := utils.TrimOrEmpty(c.Query("date"))
	if date == "" {
		RespondError(c, http.StatusBadRequest, "date is required", nil)
		return
	}
	if _, err := utils.ParseDate(date); err != nil {
		RespondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD", err)
		return
	}

	pdf, filename, err := docsSvc(c).GenerateDaySheet(date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/drivers/:id/statement?from=YYYY-MM-DD&to=YYYY-MM-DD
func GetDriverStatementPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	from, to, ok := windowParams(c)
	if !ok {
		return
	}

	pdf, filename, err := docsSvc(c).GenerateDriverStatement(id, from, to)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
