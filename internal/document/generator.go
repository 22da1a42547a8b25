package document

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dcontreras/workshop-management/internal/attention"
	"github.com/jung-kurt/gofpdf"
)

// Generator renders attention certificates as PDF files under a configured
// directory. Writing the same attention id twice overwrites the previous
// artifact, so a retried registration self-heals.
type Generator struct {
	dir    string
	logger *slog.Logger
}

func NewGenerator(dir string, logger *slog.Logger) *Generator {
	return &Generator{
		dir:    dir,
		logger: logger,
	}
}

func (g *Generator) Path(attentionID int64) string {
	return filepath.Join(g.dir, fmt.Sprintf("certificado_%d.pdf", attentionID))
}

func (g *Generator) Generate(a *attention.Attention) (string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create certificate directory: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "CERTIFICADO DE ATENCION", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 12)
	writeRow := func(label, value string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(50, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	writeRow("Atencion:", fmt.Sprintf("%d", a.ID))
	writeRow("Fecha:", a.Date.Format("02-01-2006"))
	writeRow("Cliente:", fmt.Sprintf("%d", a.ClientID))
	writeRow("Patente:", a.Plate)
	writeRow("Descripcion:", a.Description)
	writeRow("Monto:", fmt.Sprintf("$%d CLP", a.AmountCLP))

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 8, "Documento generado automaticamente por el taller.", "", 1, "C", false, 0, "")

	path := g.Path(a.ID)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write certificate %s: %w", path, err)
	}

	g.logger.Info("certificate written", "attention_id", a.ID, "path", path)
	return path, nil
}
