// Package domain provee modelos de dominio y lógica de negocio para Bridge.
//
// Contiene la parte pura del pipeline de relay:
//
//   - Modelos: TradeEvent (entrada NT8), SinkOrder (salida MT5), TradeResult
//   - Validación: ValidateTradeEvent con errores estructurados
//   - Mapeo de símbolos: Mapper (tabla inmutable NT → MT5)
//   - Transformación: TradeEventToSinkOrder (inversión de dirección)
//
// Todo en este paquete es puro: sin I/O, sin estado compartido, sin
// dependencias de transporte. La orquestación vive en internal/.
package domain
