package cpsat

import "fmt"

// VarName builds the diagnostic name for a decision variable x[g,s,t,d,h].
// Names are never parsed back; they exist purely for logs and debugging.
func VarName(group, subject, teacher string, day, hour int) string {
	return fmt.Sprintf("x[%s,%s,%s,%d,%d]", group, subject, teacher, day, hour)
}

// AggregateName builds the diagnostic name for an aggregated indicator
// y[g,s,d,h] = Σ_t x[g,s,t,d,h] (spec §9).
func AggregateName(group, subject string, day, hour int) string {
	return fmt.Sprintf("y[%s,%s,%d,%d]", group, subject, day, hour)
}

// UnitName builds the diagnostic name for a logical-unit indicator (C-7).
func UnitName(group, unit string, day, hour int) string {
	return fmt.Sprintf("u[%s,%s,%d,%d]", group, unit, day, hour)
}

// StartName builds the diagnostic name for a consecutive-block start
// indicator (C-3).
func StartName(group, subject string, day, hour int) string {
	return fmt.Sprintf("start[%s,%s,%d,%d]", group, subject, day, hour)
}
