package jobs

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"agora/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
)

// ExportJobPDF serves a one-page printable summary of a posting, questions
// included.
func (h *Handler) ExportJobPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	jobID := ps.ByName("jobid")

	job, err := h.svc.store.JobByID(r.Context(), jobID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	questions, err := h.svc.store.QuestionsByJob(r.Context(), []string{jobID})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, job.BasicInfo.Title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Category: %s", job.BasicInfo.Type))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Location: %s", job.BasicInfo.Location))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Pay: %.2f - %.2f", job.BasicInfo.PriceRange.From, job.BasicInfo.PriceRange.To))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", job.BasicInfo.Status))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, job.BasicInfo.Description, "", "L", false)
	pdf.Ln(6)

	if len(job.Details.Skills) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Skills")
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, strings.Join(job.Details.Skills, ", "), "", "L", false)
		pdf.Ln(4)
	}

	if qs := questions[jobID]; len(qs) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Screening questions")
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 11)
		for i, q := range qs {
			pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", i+1, q.Question), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=job-"+jobID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
