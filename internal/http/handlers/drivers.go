package handlers

import (
	"net/http"
	"strconv"

	"driveschool/internal/domain/models"
	"driveschool/internal/http/middleware"
	"driveschool/internal/repositories"
	"driveschool/internal/utils"

	"github.com/gin-gonic/gin"
)

func driverRepo() repositories.DriverRepository {
	return repositories.DriverRepository{}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}

// GET /api/drivers
func GetDrivers(c *gin.Context) {
	drivers, err := driverRepo().List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

// GET /api/drivers/:id
func GetDriverByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, err := driverRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type driverRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	TotalPaid   int64  `json:"totalPaid"`
	PaymentType string `json:"paymentType"`
}

func (r driverRequest) model() models.Driver {
	pt := models.PaymentType(utils.TrimOrEmpty(r.PaymentType))
	if pt == "" {
		pt = models.PaymentNone
	}
	return models.Driver{
		Name:        utils.NormalizeSpace(r.Name),
		Phone:       utils.TrimOrEmpty(r.Phone),
		TotalPaid:   r.TotalPaid,
		PaymentType: pt,
	}
}

// POST /api/drivers
func CreateDriver(c *gin.Context) {
	var req driverRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if utils.TrimOrEmpty(req.Name) == "" {
		RespondError(c, http.StatusBadRequest, "name is required", nil)
		return
	}

	id, err := driverRepo().Create(req.model())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "driver", "create", "id="+strconv.FormatInt(id, 10))
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/drivers/:id
func UpdateDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req driverRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	d := req.model()
	d.ID = id
	if err := driverRepo().Update(d); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DELETE /api/drivers/:id
func DeleteDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := driverRepo().Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GET /api/drivers/:id/installments
func GetDriverInstallments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	installments, err := driverRepo().Installments(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"installments": installments})
}

type installmentsRequest struct {
	Installments []models.Installment `json:"installments"`
}

// PUT /api/drivers/:id/installments
func ReplaceDriverInstallments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req installmentsRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := driverRepo().ReplaceInstallments(id, req.Installments); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "driver", "replace_installments", "driver_id="+strconv.FormatInt(id, 10))
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
