package infra

// pdf.go: order receipt generation with go-pdf/fpdf.
// The receipt lists the snapshot items, the total as submitted and the
// payment method. Output: storagePath/recibo_{orden_id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Bastianbone18/trasera/internal/model"

	"github.com/go-pdf/fpdf"
)

// ReciboPath returns where the receipt of orden is written.
func ReciboPath(storagePath string, orden *model.Orden) string {
	return filepath.Join(storagePath, fmt.Sprintf("recibo_%s.pdf", orden.ID))
}

// GenerarReciboPDF renders the receipt of orden for usuario and returns the file path.
// storagePath is created when missing.
func GenerarReciboPDF(orden *model.Orden, usuario *model.Usuario, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := ReciboPath(storagePath, orden)

	pdf := fpdf.New("P", "mm", "A5", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Trasera", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr("Recibo de compra"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr("Orden: "+orden.ID.String()), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, orden.CreatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	if usuario != nil {
		pdf.CellFormat(contentW, 5, tr("Cliente: "+usuario.Nombre+" <"+usuario.Email+">"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.50
	col2 := contentW * 0.15
	col3 := contentW * 0.35

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Precio", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range orden.Items {
		nombre := item.Nombre
		if r := []rune(nombre); len(r) > 34 {
			nombre = string(r[:33]) + "…"
		}
		pdf.CellFormat(col1, 6, tr(nombre), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+item.Precio.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2, 7, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, "$"+orden.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	estado := "pendiente"
	if orden.Pagado {
		estado = "pagado"
	}
	pdf.CellFormat(contentW, 5, tr("Pago: "+orden.MetodoPago+" ("+estado+")"), "", 1, "L", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, tr("¡Gracias por su compra!"), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
