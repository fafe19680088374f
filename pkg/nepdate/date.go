// Package nepdate maneja fechas del calendario Bikram Sambat (BS) tal como se escriben en los
// formularios de la oficina: "2081/01/05", "2081-1-5" o con dígitos devanagari "२०८१/०१/०५".
//
// No convierte a calendario gregoriano; solo normaliza, compara y ubica fechas en años fiscales.
package nepdate

import (
	"fmt"
	"strconv"
	"strings"
)

// Layout de escritura canónico.
const Layout = "YYYY/MM/DD"

// Date fecha BS con granularidad de día. El valor cero es "sin fecha".
type Date struct {
	y, m, d int
}

// New construye una fecha BS sin validar rangos.
func New(year, month, day int) Date { return Date{year, month, day} }

func (d Date) Year() int  { return d.y }
func (d Date) Month() int { return d.m }
func (d Date) Day() int   { return d.d }

// IsZero indica si la fecha no fue establecida.
func (d Date) IsZero() bool { return d == Date{} }

// Compare devuelve -1, 0 o 1.
func (d Date) Compare(x Date) int {
	switch {
	case d.y != x.y:
		return sign(d.y - x.y)
	case d.m != x.m:
		return sign(d.m - x.m)
	default:
		return sign(d.d - x.d)
	}
}

// Before reporta si d es anterior a x.
func (d Date) Before(x Date) bool { return d.Compare(x) < 0 }

// After reporta si d es posterior a x.
func (d Date) After(x Date) bool { return d.Compare(x) > 0 }

// String formatea en el layout canónico "2081/01/05".
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d/%02d/%02d", d.y, d.m, d.d)
}

// Parse lee una fecha BS. Acepta "/", "-" o "." como separador, mes y día de uno o dos dígitos
// y dígitos devanagari. Los meses BS tienen hasta 32 días.
func Parse(s string) (Date, error) {
	norm := strings.TrimSpace(toASCIIDigits(s))
	parts := strings.FieldsFunc(norm, func(r rune) bool { return r == '/' || r == '-' || r == '.' })
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("fecha inválida %q, formato esperado %s", s, Layout)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("fecha inválida %q: %w", s, err)
		}
		nums[i] = n
	}
	d := Date{nums[0], nums[1], nums[2]}
	if d.y < 1970 || d.y > 2200 || d.m < 1 || d.m > 12 || d.d < 1 || d.d > 32 {
		return Date{}, fmt.Errorf("fecha fuera de rango %q", s)
	}
	return d, nil
}

// MustParse es como Parse pero entra en pánico ante error (tests y constantes).
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Normalize reescribe s en el layout canónico; si no se puede leer la devuelve recortada tal cual.
func Normalize(s string) string {
	d, err := Parse(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return d.String()
}

func toASCIIDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '०' && r <= '९' {
			return '0' + (r - '०')
		}
		return r
	}, s)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
