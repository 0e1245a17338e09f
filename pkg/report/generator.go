package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"legalbot-be/internal/pkg/logger"
	"legalbot-be/pkg/legal"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

// Artifact is a generated report file with a temporary lifecycle: created,
// sent once, deleted after a grace period.
type Artifact struct {
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// IGenerator renders process details into a downloadable PDF and manages
// the artifact lifecycle.
type IGenerator interface {
	Generate(ctx context.Context, details []legal.ProcessDetail, clientName string) (*Artifact, error)
	Delete(filename string) bool
}

type generator struct {
	dir     string
	baseURL string
	logger  logger.ILogger
}

// NewGenerator writes artifacts into dir; they are served under
// baseURL + "/reports/".
func NewGenerator(dir, baseURL string, log logger.ILogger) IGenerator {
	return &generator{dir: dir, baseURL: baseURL, logger: log}
}

func (g *generator) Generate(ctx context.Context, details []legal.ProcessDetail, clientName string) (*Artifact, error) {
	if len(details) == 0 {
		return nil, errors.New("no process details to render")
	}
	if err := os.MkdirAll(g.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to prepare reports dir: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Relatório de Processos"), false)

	for _, detail := range details {
		g.renderProcess(pdf, tr, detail, clientName)
	}

	filename := fmt.Sprintf("relatorio-%s-%s.pdf", slugify(clientName), uuid.New().String()[:8])
	path := filepath.Join(g.dir, filename)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	g.logger.Info("ReportGenerator", "Report generated", map[string]interface{}{
		"filename":  filename,
		"processes": len(details),
	})

	return &Artifact{
		Filename:  filename,
		URL:       fmt.Sprintf("%s/reports/%s", g.baseURL, filename),
		CreatedAt: time.Now(),
	}, nil
}

// Delete removes an artifact. Idempotent: deleting an unknown or already
// removed filename returns false instead of failing.
func (g *generator) Delete(filename string) bool {
	// filepath.Base keeps deletions inside the reports dir.
	path := filepath.Join(g.dir, filepath.Base(filename))
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			g.logger.Warn("ReportGenerator", "Failed to delete artifact", map[string]interface{}{
				"filename": filename,
				"error":    err.Error(),
			})
		}
		return false
	}
	return true
}

func (g *generator) renderProcess(pdf *fpdf.Fpdf, tr func(string) string, detail legal.ProcessDetail, clientName string) {
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("Relatório de Processo"), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr("Cliente: "+clientName), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr("Gerado em: "+time.Now().Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr("Dados do processo"), "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	writeField(pdf, tr, "Código", detail.Code)
	writeField(pdf, tr, "Número de registro", detail.Registration)
	writeField(pdf, tr, "Vara/Tribunal", detail.Court)
	writeField(pdf, tr, "Comarca", detail.City)
	writeField(pdf, tr, "Situação atual", detail.Status)
	if !detail.UpdatedAt.IsZero() {
		writeField(pdf, tr, "Última atualização", detail.UpdatedAt.Format("02/01/2006"))
	}
	pdf.Ln(2)

	writeParties(pdf, tr, "Polo ativo", detail.Plaintiffs)
	writeParties(pdf, tr, "Polo passivo", detail.Defendants)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr("Andamentos"), "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	if len(detail.Performances) == 0 {
		pdf.CellFormat(0, 6, tr("Nenhum andamento registrado."), "", 1, "L", false, 0, "")
		return
	}
	for _, p := range detail.Performances {
		line := p.Type
		if !p.UpdatedAt.IsZero() {
			line = p.UpdatedAt.Format("02/01/2006") + " - " + line
		}
		if p.Responsible != "" {
			line += " (" + p.Responsible + ")"
		}
		pdf.SetFont("Arial", "B", 9)
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
		if p.Observation != "" {
			pdf.SetFont("Arial", "", 9)
			pdf.MultiCell(0, 5, tr(p.Observation), "", "L", false)
		}
		pdf.Ln(1)
	}
}

func writeField(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	if value == "" {
		return
	}
	pdf.CellFormat(0, 6, tr(label+": "+value), "", 1, "L", false, 0, "")
}

func writeParties(pdf *fpdf.Fpdf, tr func(string) string, title string, parties []legal.Party) {
	if len(parties) == 0 {
		return
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, p := range parties {
		line := p.Name
		if p.Document != "" {
			line += " - " + p.Document
		}
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "cliente"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "cliente"
	}
	if len(slug) > 40 {
		slug = slug[:40]
	}
	return slug
}
