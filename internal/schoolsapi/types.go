package schoolsapi

import (
	"encoding/json"

	"schooldb/internal/domain/school"
)

// StatusAll is the filter value meaning "no status filter"
const StatusAll = "all"

// Envelope is the uniform wrapper of every registry response
type Envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// SchoolsQuery holds the parameters of a schools listing call.
// Zero RegionID and empty or "all" Status are not sent.
type SchoolsQuery struct {
	Page     int
	Count    int
	RegionID int
	Status   string
}

// SchoolsPage is the data part of a schools listing response
type SchoolsPage struct {
	List       []school.Record `json:"list"`
	PagesCount int             `json:"pages_count"`
}

// Region is a region usable as a listing filter
type Region struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// FederalDistrict groups regions
type FederalDistrict struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
