package domain

import (
	"strings"
	"unicode"
)

// DefaultSymbolMap tabla de mapeo NT → MT5.
//
// Tabla inmutable construida en arranque; las entradas identidad cubren el
// caso en que el origen ya manda el símbolo en formato MT5.
func DefaultSymbolMap() map[string]string {
	return map[string]string{
		"NQ":     "USTECH",
		"ES":     "US500",
		"YM":     "US30",
		"USTECH": "USTECH",
		"US500":  "US500",
		"US30":   "US30",
		"GC":     "XAUUSD", // Futuros de oro
		"XAUUSD": "XAUUSD", // Por si ya viene en formato MT5
	}
}

// contractMonths tokens de mes de contrato que marcan un símbolo con expiry.
var contractMonths = []string{"MAR", "JUN", "SEP", "DEC"}

// Mapper traduce identificadores de instrumento NT a símbolos MT5.
//
// Puro y total: nunca falla, maneja string vacío, sin efectos secundarios.
type Mapper struct {
	table map[string]string
	canon map[string]struct{} // símbolos MT5 conocidos (valores de la tabla)
}

// NewMapper crea un Mapper sobre una tabla de mapeo.
//
// La tabla se copia: mutaciones posteriores del caller no afectan al Mapper.
func NewMapper(table map[string]string) *Mapper {
	m := &Mapper{
		table: make(map[string]string, len(table)),
		canon: make(map[string]struct{}, len(table)),
	}
	for k, v := range table {
		m.table[k] = v
		m.canon[v] = struct{}{}
	}
	return m
}

// NewDefaultMapper crea un Mapper con DefaultSymbolMap.
func NewDefaultMapper() *Mapper {
	return NewMapper(DefaultSymbolMap())
}

// Map traduce un identificador de instrumento NT a símbolo MT5.
//
// Reglas, en orden:
//  1. Se descarta cualquier sufijo desde el primer '@' (ej: "NQ@E-MINI" → "NQ").
//  2. Si el resultado ya es un símbolo MT5 conocido, se retorna tal cual.
//  3. Si contiene un mes de contrato (MAR/JUN/SEP/DEC) se retorna tal cual:
//     los contratos con expiry se preservan completos río abajo.
//  4. Se reduce a sus letras (descartando dígitos y puntuación) y se busca en
//     la tabla; sin entrada, se retorna la base sin mapear.
func (m *Mapper) Map(instrument string) string {
	clean := instrument
	if idx := strings.IndexByte(clean, '@'); idx >= 0 {
		clean = clean[:idx]
	}
	clean = strings.TrimSpace(clean)

	if _, ok := m.canon[clean]; ok {
		return clean
	}

	for _, month := range contractMonths {
		if strings.Contains(clean, month) {
			return clean
		}
	}

	var base strings.Builder
	for _, r := range clean {
		if unicode.IsLetter(r) {
			base.WriteRune(r)
		}
	}

	if mapped, ok := m.table[base.String()]; ok {
		return mapped
	}
	return base.String()
}
