package ingest

import (
	"fmt"
	"strings"
)

// Campus is a teaching campus known to the feed.
type Campus struct {
	Name string `json:"name" yaml:"name"`
	Code string `json:"code" yaml:"code"`
}

// Campuses lists the campuses the feed can be queried for.
var Campuses = []Campus{
	{Name: "St Lucia", Code: "STLUC"},
	{Name: "Gatton", Code: "GATTN"},
	{Name: "Herston", Code: "HERST"},
}

// DeliveryMode is how a course offering is taught.
type DeliveryMode struct {
	Name string `json:"name" yaml:"name"`
	ID   string `json:"id" yaml:"id"`
}

// DeliveryModes lists the known delivery modes.
var DeliveryModes = []DeliveryMode{
	{Name: "INTERNAL", ID: "IN"},
	{Name: "EXTERNAL", ID: "EX"},
	{Name: "FLEX. DELIVERY", ID: "FD"},
}

// SemesterOption is a term users may plan for, with the delivery modes
// offered in it.
type SemesterOption struct {
	Name          string   `json:"name" yaml:"name"`
	Year          int      `json:"year" yaml:"year"`
	Number        int      `json:"number" yaml:"number"`
	DeliveryModes []string `json:"deliveryModes" yaml:"deliveryModes"`
}

// SemesterOptions lists the terms with published timetables.
var SemesterOptions = []SemesterOption{
	{Name: "Semester 1 2020", Year: 2020, Number: 1, DeliveryModes: []string{"IN", "EX"}},
	{Name: "Semester 2 2020", Year: 2020, Number: 2, DeliveryModes: []string{"FD", "IN", "EX"}},
}

// CampusByCode looks a campus up by its feed code, ignoring case.
func CampusByCode(code string) (Campus, error) {
	for _, c := range Campuses {
		if strings.EqualFold(c.Code, code) {
			return c, nil
		}
	}
	return Campus{}, fmt.Errorf("%w: %q", ErrUnknownCampus, code)
}

// DeliveryModeByID looks a delivery mode up by its id, ignoring case.
func DeliveryModeByID(id string) (DeliveryMode, error) {
	for _, m := range DeliveryModes {
		if strings.EqualFold(m.ID, id) {
			return m, nil
		}
	}
	return DeliveryMode{}, fmt.Errorf("%w: %q", ErrUnknownDeliveryMode, id)
}
