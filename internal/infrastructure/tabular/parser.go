package tabular

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

var _ ports.DatasetParser = (*Parser)(nil)

// Columnas requeridas por reporte.
var (
	purchaseColumns = []string{"Date", "Item Name", "Quantity", "Unit", "Rate", "Amount"}
	issueColumns    = []string{"Date", "Item Name", "Category", "Quantity Issued", "Unit"}
	saleColumns     = []string{"Date", "Item Name", "Category", "Quantity Sold", "Price", "Revenue", "Food Cost", "Profit"}
	recipeColumns   = []string{"Menu Item", "Ingredient", "Quantity Required", "Unit"}
)

// Parser convierte los reportes subidos en un Dataset tipado.
type Parser struct{}

// NewParser construye el parser.
func NewParser() *Parser { return &Parser{} }

// ParseDataset valida columnas y tipos de cada reporte. Recetas es opcional.
func (p *Parser) ParseDataset(files map[string]ports.NamedReader) (*entity.Dataset, error) {
	ds := &entity.Dataset{LoadedAt: time.Now()}
	var err error
	for _, name := range []string{ports.ReportPurchases, ports.ReportIssues, ports.ReportSales} {
		if _, ok := files[name]; !ok {
			return nil, fmt.Errorf("falta el reporte %s", name)
		}
	}
	if ds.Purchases, err = parsePurchases(files[ports.ReportPurchases]); err != nil {
		return nil, err
	}
	if ds.Issues, err = parseIssues(files[ports.ReportIssues]); err != nil {
		return nil, err
	}
	if ds.Sales, err = parseSales(files[ports.ReportSales]); err != nil {
		return nil, err
	}
	if f, ok := files[ports.ReportRecipes]; ok {
		if ds.Recipes, err = parseRecipes(f); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func parsePurchases(f ports.NamedReader) ([]entity.PurchaseRecord, error) {
	t, err := readTable(ports.ReportPurchases, f.Filename, f.Reader)
	if err != nil {
		return nil, err
	}
	idx, err := t.columns(purchaseColumns...)
	if err != nil {
		return nil, err
	}
	out := make([]entity.PurchaseRecord, 0, len(t.rows))
	err = t.each(idx, func(r *rowReader) {
		out = append(out, entity.PurchaseRecord{
			Date:     r.date("Date"),
			ItemName: r.text("Item Name"),
			Quantity: r.dec("Quantity"),
			Unit:     r.str("Unit"),
			Rate:     r.dec("Rate"),
			Amount:   r.dec("Amount"),
		})
	})
	return out, err
}

func parseIssues(f ports.NamedReader) ([]entity.IssueRecord, error) {
	t, err := readTable(ports.ReportIssues, f.Filename, f.Reader)
	if err != nil {
		return nil, err
	}
	idx, err := t.columns(issueColumns...)
	if err != nil {
		return nil, err
	}
	out := make([]entity.IssueRecord, 0, len(t.rows))
	err = t.each(idx, func(r *rowReader) {
		out = append(out, entity.IssueRecord{
			Date:           r.date("Date"),
			ItemName:       r.text("Item Name"),
			Category:       r.str("Category"),
			QuantityIssued: r.dec("Quantity Issued"),
			Unit:           r.str("Unit"),
		})
	})
	return out, err
}

func parseSales(f ports.NamedReader) ([]entity.SaleRecord, error) {
	t, err := readTable(ports.ReportSales, f.Filename, f.Reader)
	if err != nil {
		return nil, err
	}
	idx, err := t.columns(saleColumns...)
	if err != nil {
		return nil, err
	}
	out := make([]entity.SaleRecord, 0, len(t.rows))
	err = t.each(idx, func(r *rowReader) {
		out = append(out, entity.SaleRecord{
			Date:         r.date("Date"),
			ItemName:     r.text("Item Name"),
			Category:     r.str("Category"),
			QuantitySold: r.dec("Quantity Sold"),
			Price:        r.dec("Price"),
			Revenue:      r.dec("Revenue"),
			FoodCost:     r.dec("Food Cost"),
			Profit:       r.dec("Profit"),
		})
	})
	return out, err
}

func parseRecipes(f ports.NamedReader) ([]entity.RecipeComponent, error) {
	t, err := readTable(ports.ReportRecipes, f.Filename, f.Reader)
	if err != nil {
		return nil, err
	}
	idx, err := t.columns(recipeColumns...)
	if err != nil {
		return nil, err
	}
	out := make([]entity.RecipeComponent, 0, len(t.rows))
	err = t.each(idx, func(r *rowReader) {
		out = append(out, entity.RecipeComponent{
			MenuItem:        r.text("Menu Item"),
			Ingredient:      r.text("Ingredient"),
			QuantityPerUnit: r.dec("Quantity Required"),
			Unit:            r.str("Unit"),
		})
	})
	return out, err
}

// LoadDir lee <dir>/purchase_report, store_to_kitchen_report, sales_report y recipes_bom
// en .csv o .xlsx. Las recetas son opcionales.
func LoadDir(dir string) (*entity.Dataset, error) {
	files := make(map[string]ports.NamedReader)
	var opened []*os.File
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, name := range []string{ports.ReportPurchases, ports.ReportIssues, ports.ReportSales, ports.ReportRecipes} {
		path, ok := findReport(dir, name)
		if !ok {
			if name == ports.ReportRecipes {
				continue
			}
			return nil, fmt.Errorf("no se encontró %s en %s", name, dir)
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("abrir %s: %w", path, err)
		}
		opened = append(opened, f)
		files[name] = ports.NamedReader{Filename: filepath.Base(path), Reader: f}
	}
	return NewParser().ParseDataset(files)
}

func findReport(dir, name string) (string, bool) {
	for _, ext := range []string{".csv", ".xlsx"} {
		p := filepath.Join(dir, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}
