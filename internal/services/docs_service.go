package services

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"driveschool/internal/domain/models"
	"driveschool/internal/repositories"
	"driveschool/internal/schedule"
	"driveschool/internal/utils"
)

// DocsService renders printable PDFs: the day sheet (the packed calendar of
// one day) and per-driver compliance statements.
type DocsService struct {
	DriverRepo  repositories.DriverRepository
	LessonRepo  repositories.LessonRepository
	ScheduleSvc ScheduleService
	RequestID   string

	DaySheetLoader  func(date string) (daySheetData, error)
	StatementLoader func(driverID int64, from, to string) (statementData, error)
}

type daySheetData struct {
	Date        string
	Lessons     []models.Lesson
	DriverNames map[int64]string
	PaymentDue  map[int64]bool
}

type statementData struct {
	Driver     models.Driver
	Evaluation schedule.Evaluation
	From, To   string
}

func (s DocsService) loadDaySheet(date string) (daySheetData, error) {
	if s.DaySheetLoader != nil {
		return s.DaySheetLoader(date)
	}

	lessons, err := s.LessonRepo.ListByDate(date)
	if err != nil {
		return daySheetData{}, err
	}

	data := daySheetData{
		Date:        date,
		Lessons:     lessons,
		DriverNames: map[int64]string{},
		PaymentDue:  map[int64]bool{},
	}

	seen := map[int64]bool{}
	for _, l := range lessons {
		if seen[l.DriverID] {
			continue
		}
		seen[l.DriverID] = true

		if d, err := s.DriverRepo.GetByID(l.DriverID); err == nil {
			data.DriverNames[l.DriverID] = d.Name
		}
		// Per-driver compliance for the day, baseline included.
		ev, err := s.ScheduleSvc.EvaluateDriver(l.DriverID, date, date)
		if err != nil {
			continue
		}
		for _, el := range ev.Lessons {
			data.PaymentDue[el.ID] = el.PaymentDue
		}
	}
	return data, nil
}

func (s DocsService) loadStatement(driverID int64, from, to string) (statementData, error) {
	if s.StatementLoader != nil {
		return s.StatementLoader(driverID, from, to)
	}

	driver, err := s.DriverRepo.GetByID(driverID)
	if err != nil {
		return statementData{}, err
	}
	ev, err := s.ScheduleSvc.EvaluateDriver(driverID, from, to)
	if err != nil {
		return statementData{}, err
	}
	return statementData{Driver: driver, Evaluation: ev, From: from, To: to}, nil
}

// GenerateDaySheet renders one day's packed schedule as an A4 landscape PDF.
func (s DocsService) GenerateDaySheet(date string) ([]byte, string, error) {
	data, err := s.loadDaySheet(date)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "day_sheet", "date="+date)
	return buildDaySheetPDF(data)
}

// GenerateDriverStatement renders the driver's evaluated window as a PDF.
func (s DocsService) GenerateDriverStatement(driverID int64, from, to string) ([]byte, string, error) {
	data, err := s.loadStatement(driverID, from, to)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "statement", fmt.Sprintf("driver_id=%d", driverID))
	return buildStatementPDF(data)
}

const (
	sheetDayStartMin = 7 * 60
	sheetDayEndMin   = 21 * 60
)

func buildDaySheetPDF(data daySheetData) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Day Sheet", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "SCHEDULE "+data.Date)
	pdf.Ln(12)

	const (
		marginX  = 12.0
		topY     = 26.0
		usableW  = 273.0
		usableH  = 160.0
		minuteMM = usableH / float64(sheetDayEndMin-sheetDayStartMin)
	)

	layout, _ := schedule.PackDay(data.Lessons, schedule.Geometry{UnitWidth: 1})
	if layout.MaxColumns == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 8, "No lessons scheduled.")
		return pdfBytes(pdf, "DAYSHEET_"+data.Date+".pdf")
	}
	colW := usableW / float64(layout.MaxColumns)

	// Hour grid.
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFont("Helvetica", "", 7)
	for m := sheetDayStartMin; m <= sheetDayEndMin; m += 60 {
		y := topY + float64(m-sheetDayStartMin)*minuteMM
		pdf.Line(marginX, y, marginX+usableW, y)
		pdf.Text(marginX-8, y+1, fmt.Sprintf("%02d:00", m/60))
	}

	byID := map[int64]models.Lesson{}
	for _, l := range data.Lessons {
		byID[l.ID] = l
	}

	pdf.SetDrawColor(60, 60, 60)
	for id, box := range layout.Boxes {
		l := byID[id]
		startMin, err1 := schedule.ParseClock(l.StartTime)
		endMin, err2 := schedule.ParseClock(l.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if startMin < sheetDayStartMin {
			startMin = sheetDayStartMin
		}
		if endMin > sheetDayEndMin {
			endMin = sheetDayEndMin
		}
		if endMin <= startMin {
			continue
		}

		x := marginX + float64(box.Column)*colW
		y := topY + float64(startMin-sheetDayStartMin)*minuteMM
		w := float64(box.Span) * colW
		h := float64(endMin-startMin) * minuteMM

		if data.PaymentDue[id] {
			pdf.SetFillColor(250, 200, 200)
		} else {
			pdf.SetFillColor(225, 235, 250)
		}
		pdf.Rect(x, y, w-1, h, "FD")

		pdf.SetFont("Helvetica", "", 8)
		label := fmt.Sprintf("%s-%s %s", l.StartTime, l.EndTime, safe(data.DriverNames[l.DriverID], fmt.Sprintf("driver #%d", l.DriverID)))
		pdf.Text(x+1.5, y+3.5, label)
	}

	pdf.SetY(topY + usableH + 6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Cell(0, 5, "Red boxes: payment due before this lesson may take place.")

	return pdfBytes(pdf, "DAYSHEET_"+data.Date+".pdf")
}

func buildStatementPDF(data statementData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Driver Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "DRIVER STATEMENT")
	pdf.Ln(12)

	ev := data.Evaluation
	limit := "none"
	if !ev.SafeHoursLimit.Unlimited() {
		limit = utils.FormatHours(float64(ev.SafeHoursLimit))
	}

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Driver          : %s (#%d)", safe(data.Driver.Name, "-"), data.Driver.ID),
		fmt.Sprintf("Period          : %s to %s", data.From, data.To),
		fmt.Sprintf("Payment type    : %s", data.Driver.PaymentType),
		fmt.Sprintf("Total paid      : %s", utils.FormatMoney(data.Driver.TotalPaid)),
		fmt.Sprintf("Safe hours limit: %s", limit),
		fmt.Sprintf("Baseline hours  : %s", utils.FormatHours(ev.BaselineHours)),
	}
	for _, s := range lines {
		pdf.Cell(0, 6, s)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(30, 6, "Date")
	pdf.Cell(30, 6, "Time")
	pdf.Cell(20, 6, "Hours")
	pdf.Cell(25, 6, "Running")
	pdf.Cell(30, 6, "Payment due")
	pdf.Cell(25, 6, "Too late")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range ev.Lessons {
		pdf.Cell(30, 6, l.Date)
		pdf.Cell(30, 6, l.StartTime+"-"+l.EndTime)
		pdf.Cell(20, 6, utils.FormatHours(l.Hours))
		pdf.Cell(25, 6, utils.FormatHours(l.RunningHours))
		pdf.Cell(30, 6, yesNo(l.PaymentDue))
		pdf.Cell(25, 6, yesNo(l.TooLate))
		pdf.Ln(6)
	}

	if len(ev.Skipped) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		for _, se := range ev.Skipped {
			pdf.Cell(0, 5, fmt.Sprintf("Excluded lesson #%d: %s", se.LessonID, se.Reason))
			pdf.Ln(5)
		}
	}

	filename := fmt.Sprintf("STATEMENT_%d_%s_%s.pdf", data.Driver.ID, data.From, data.To)
	return pdfBytes(pdf, filename)
}

func pdfBytes(pdf *gofpdf.Fpdf, filename string) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "no"
}
