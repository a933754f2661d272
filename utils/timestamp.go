package utils

import "time"

// ElapsedMsSince calcula los milisegundos transcurridos desde un time.Time dado.
//
// Example:
//
//	start := time.Now()
//	// ... operación ...
//	elapsed := utils.ElapsedMsSince(start)
func ElapsedMsSince(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
