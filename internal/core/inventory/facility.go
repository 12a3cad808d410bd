package inventory

// Facility is a production site as served by the source API.
type Facility struct {
	ID                     int64  `json:"ID"`
	Name                   string `json:"name"`
	City                   string `json:"city"`
	State                  string `json:"state"`
	Type                   string `json:"type"`
	Description            string `json:"description"`
	EmployeeCount          int    `json:"employee_count"`
	ManagerID              int64  `json:"manager_id"`
	ModelsCompleted        int    `json:"models_completed"`
	ModelsInProduction     int    `json:"models_in_production"`
	ComponentsCompleted    int    `json:"components_completed"`
	ComponentsInProduction int    `json:"components_in_production"`
}

// FacilityInventory is a facility together with the records located there.
type FacilityInventory struct {
	Facility   Facility `json:"facility"`
	Records    []Record `json:"records"`
	Airplanes  int      `json:"airplanes"`
	Components int      `json:"components"`
}

// ByFacility returns the records whose city and state both equal the given
// ones exactly, in their original order.
func ByFacility(records []Record, city, state string) []Record {
	out := []Record{}
	for _, r := range records {
		if r.City == city && r.State == state {
			out = append(out, r)
		}
	}
	return out
}

// InventoryAt collects the records built at f and counts them per type.
func InventoryAt(f Facility, records []Record) FacilityInventory {
	inv := FacilityInventory{
		Facility: f,
		Records:  ByFacility(records, f.City, f.State),
	}
	for _, r := range inv.Records {
		switch r.Type {
		case TypeAirplane:
			inv.Airplanes++
		case TypeComponent:
			inv.Components++
		}
	}
	return inv
}
