package bookly

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Reporter writes a processed batch somewhere.
type Reporter interface {
	Report(w io.Writer, s Summary) error
}

// TextReporter writes the plain-text shop report with amounts formatted
// for a locale.
type TextReporter struct {
	Locale language.Tag
}

// NewTextReporter parses locale, falling back to Spanish when it is empty.
func NewTextReporter(locale string) (TextReporter, error) {
	if locale == "" {
		return TextReporter{Locale: language.Spanish}, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return TextReporter{}, err
	}
	return TextReporter{Locale: tag}, nil
}

func (r TextReporter) Report(w io.Writer, s Summary) error {
	p := message.NewPrinter(r.Locale)

	if _, err := p.Fprintf(w, "=== BOOKLY REPORT === | Total pedidos: %d\n", len(s.Lines)); err != nil {
		return err
	}
	for _, l := range s.Lines {
		_, err := p.Fprintf(w,
			"Pedido #%d | Tipo: %s | Subtotal: €%.2f | IVA: €%.2f | Envío: €%.2f | Descuento: €%.2f | Total: €%.2f\n",
			l.OrderID, l.Type, l.Subtotal, l.Tax, l.Shipping, l.Discount, l.Total)
		if err != nil {
			return err
		}
	}
	if _, err := p.Fprintf(w, "Ingresos totales: €%.2f | Descuentos totales: €%.2f | Impuestos totales: €%.2f\n",
		s.Revenue, s.Discounts, s.Taxes); err != nil {
		return err
	}
	_, err := p.Fprintf(w, "=====================\n")
	return err
}
