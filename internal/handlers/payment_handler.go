package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ListPaymentsHandler lists payment releases. Workers see their own payouts;
// admins with payments_view_all see everything.
func ListPaymentsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	query := config.DB.Model(&models.PaymentRelease{}).Order("released_at desc")
	if !isAdmin(c) {
		query = query.Where("professional_id = ?", userID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("released_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("released_at <= ?", to)
	}

	var totalRows int64
	query.Count(&totalRows)

	var releases []models.PaymentRelease
	if err := query.Scopes(Paginate(c)).Find(&releases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch payments"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, releases, totalRows))
}

// GetPaymentReceiptHandler renders a release as a receipt, with the net
// amount spelled out in words.
func GetPaymentReceiptHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var release models.PaymentRelease
	if err := config.DB.Where("release_id = ?", c.Param("id")).First(&release).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	var esc models.Escrow
	config.DB.Where("escrow_id = ?", release.EscrowID).First(&esc)
	if release.ProfessionalID != userID && esc.ClientID != userID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a party to this payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"release":          release,
		"grossAmount":      release.Amount,
		"platformFee":      release.PlatformFee,
		"tdsDeducted":      release.TDSDeducted,
		"netAmount":        release.NetAmount,
		"netAmountInWords": amountInWords(release.NetAmount),
	})
}

// ExportPaymentsCSVHandler streams payment releases as CSV.
// Semicolon-delimited with a UTF-8 BOM so Excel opens it correctly.
func ExportPaymentsCSVHandler(c *gin.Context) {
	var releases []models.PaymentRelease
	if err := config.DB.Order("released_at asc").Find(&releases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch payments"})
		return
	}

	filename := fmt.Sprintf("payments_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})
	writer := csv.NewWriter(c.Writer)
	writer.Comma = ';'

	writer.Write([]string{"Release ID", "Escrow ID", "Contract", "Professional", "Gross", "Platform Fee", "TDS", "Net", "Released At"})
	for _, rel := range releases {
		writer.Write([]string{
			rel.ReleaseID,
			rel.EscrowID,
			strconv.FormatUint(uint64(rel.ContractID), 10),
			strconv.FormatUint(uint64(rel.ProfessionalID), 10),
			fmt.Sprintf("%.2f", rel.Amount),
			fmt.Sprintf("%.2f", rel.PlatformFee),
			fmt.Sprintf("%.2f", rel.TDSDeducted),
			fmt.Sprintf("%.2f", rel.NetAmount),
			rel.ReleasedAt.Format("2006-01-02 15:04"),
		})
	}
	writer.Flush()
}

// ExportPaymentsHandler exports payment releases as an XLSX workbook with a
// totals row, for the finance side of the house.
func ExportPaymentsHandler(c *gin.Context) {
	var releases []models.PaymentRelease
	if err := config.DB.Order("released_at asc").Find(&releases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch payments"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payments"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Release ID", "Escrow ID", "Contract", "Professional", "Gross", "Platform Fee", "TDS", "Net", "Released At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	f.SetCellStyle(sheet, "A1", "I1", headerStyle)

	var totalGross, totalFee, totalTDS, totalNet float64
	for i, rel := range releases {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rel.ReleaseID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), rel.EscrowID)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), rel.ContractID)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), rel.ProfessionalID)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), rel.Amount)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), rel.PlatformFee)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), rel.TDSDeducted)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), rel.NetAmount)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), rel.ReleasedAt.Format("2006-01-02 15:04"))

		totalGross += rel.Amount
		totalFee += rel.PlatformFee
		totalTDS += rel.TDSDeducted
		totalNet += rel.NetAmount
	}

	totalRow := len(releases) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), totalGross)
	f.SetCellValue(sheet, fmt.Sprintf("F%d", totalRow), totalFee)
	f.SetCellValue(sheet, fmt.Sprintf("G%d", totalRow), totalTDS)
	f.SetCellValue(sheet, fmt.Sprintf("H%d", totalRow), totalNet)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("I%d", totalRow), headerStyle)

	f.SetColWidth(sheet, "A", "B", 38)
	f.SetColWidth(sheet, "C", "I", 14)

	filename := fmt.Sprintf("payments_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	f.Write(c.Writer)
}
