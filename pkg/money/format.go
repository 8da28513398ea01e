// Package money formatea montos para reportes según la configuración regional.
package money

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// símbolos monetarios por región base.
var symbols = map[language.Region]string{
	language.MustParseRegion("BR"): "R$",
	language.MustParseRegion("CO"): "$",
	language.MustParseRegion("US"): "US$",
	language.MustParseRegion("PT"): "€",
}

// Formatter formatea valores decimales con separadores locales y dos decimales.
type Formatter struct {
	printer *message.Printer
	symbol  string
	group   string // separador de miles
	decimal string // separador decimal
}

// NewFormatter construye el formateador para una etiqueta BCP 47 (ej. "pt-BR").
// Una etiqueta inválida cae en pt-BR.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	region, _ := tag.Region()
	printer := message.NewPrinter(tag)
	group, dec := separators(printer)
	return &Formatter{
		printer: printer,
		symbol:  symbols[region],
		group:   group,
		decimal: dec,
	}
}

// separators toma los separadores del locale formateando un número de muestra (1.234,5 en pt-BR).
func separators(p *message.Printer) (group, dec string) {
	var seps []string
	for _, r := range p.Sprint(number.Decimal(1234.5, number.Scale(1))) {
		if !unicode.IsDigit(r) {
			seps = append(seps, string(r))
		}
	}
	if len(seps) < 2 {
		return ".", ","
	}
	return seps[0], seps[len(seps)-1]
}

// Amount devuelve el monto con símbolo, ej. "R$ 12.345,50".
func (f *Formatter) Amount(d decimal.Decimal) string {
	n := f.Number(d)
	if f.symbol == "" {
		return n
	}
	return f.symbol + " " + n
}

// Number devuelve el monto sin símbolo, ej. "12.345,50". Trabaja sobre el texto del decimal
// para no perder centavos en montos grandes.
func (f *Formatter) Number(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(f.group)
		}
		b.WriteRune(r)
	}
	b.WriteString(f.decimal)
	b.WriteString(frac)
	return b.String()
}

// Int formatea enteros con separador de miles.
func (f *Formatter) Int(n int) string {
	return f.printer.Sprint(number.Decimal(n))
}
