package nepdate

import (
	"fmt"
	"strconv"
	"strings"
)

// El año fiscal nepalí empieza el 1 de Shrawan (mes 4) y termina al final de Ashadh (mes 3).
const fiscalStartMonth = 4

// FiscalYear año fiscal identificado por su año BS de inicio; se escribe "2081/082".
type FiscalYear struct {
	start int
}

// NewFiscalYear construye el año fiscal que empieza en startYear.
func NewFiscalYear(startYear int) FiscalYear { return FiscalYear{start: startYear} }

// Start año BS de inicio.
func (f FiscalYear) Start() int { return f.start }

// IsZero indica si no fue establecido.
func (f FiscalYear) IsZero() bool { return f.start == 0 }

// String formatea "2081/082".
func (f FiscalYear) String() string {
	if f.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d/%03d", f.start, (f.start+1)%1000)
}

// Contains indica si la fecha cae dentro del año fiscal.
func (f FiscalYear) Contains(d Date) bool {
	return (d.y == f.start && d.m >= fiscalStartMonth) || (d.y == f.start+1 && d.m < fiscalStartMonth)
}

// FirstDay primer día del año fiscal (1 de Shrawan).
func (f FiscalYear) FirstDay() Date { return Date{f.start, fiscalStartMonth, 1} }

// FiscalYearOf devuelve el año fiscal al que pertenece la fecha.
func FiscalYearOf(d Date) FiscalYear {
	if d.m >= fiscalStartMonth {
		return FiscalYear{start: d.y}
	}
	return FiscalYear{start: d.y - 1}
}

// ParseFiscalYear acepta "2081/082", "2081/82", "2081-082" y "2081/2082".
// El segundo año debe ser el siguiente al primero.
func ParseFiscalYear(s string) (FiscalYear, error) {
	norm := strings.TrimSpace(toASCIIDigits(s))
	parts := strings.FieldsFunc(norm, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 2 {
		return FiscalYear{}, fmt.Errorf("año fiscal inválido %q, formato esperado 2081/082", s)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil || start < 1970 || start > 2200 {
		return FiscalYear{}, fmt.Errorf("año fiscal inválido %q", s)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return FiscalYear{}, fmt.Errorf("año fiscal inválido %q", s)
	}
	next := start + 1
	switch len(parts[1]) {
	case 2:
		next %= 100
	case 3:
		next %= 1000
	}
	if end != next {
		return FiscalYear{}, fmt.Errorf("año fiscal inválido %q: %d no sigue a %d", s, end, start)
	}
	return FiscalYear{start: start}, nil
}

// NormalizeFiscalYear reescribe s como "2081/082"; si no se puede leer la devuelve recortada.
func NormalizeFiscalYear(s string) string {
	fy, err := ParseFiscalYear(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return fy.String()
}
