package powerinfo

// Status is a snapshot of the machine's batteries, summed over every
// battery that reported a capacity.
// Units:
// - Current, Full: mWh
// - Level: percent, 0-100
type Status struct {
	Level     int     `json:"level"`
	Current   float64 `json:"current"`
	Full      float64 `json:"full"`
	Batteries int     `json:"batteries"`
}
