package assessmentbundle

import (
	"therapist_dashboard/app/core"
)

type Therapist struct {
	core.Model
	Name string `json:"name" gorm:"unique_index"`
}

type Therapists []Therapist

type Client struct {
	core.Model
	Code        string     `json:"code" gorm:"unique_index"`
	TherapistId uint       `json:"-"`
	Therapist   *Therapist `json:"therapist,omitempty"`
	Age         int        `json:"age,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	ClientType  string     `json:"client_type,omitempty"`
	County      string     `json:"county,omitempty"`
}

type Clients []Client

// TherapistOverview carries the per-therapist client counts shown in the
// dashboard summary grid.
type TherapistOverview struct {
	Therapist
	TotalClients int            `json:"total_clients"`
	ToolCounts   map[string]int `json:"tool_counts"`
}

type TherapistOverviews []TherapistOverview
