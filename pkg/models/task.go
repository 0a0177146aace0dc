package models

type TaskInfo struct {
	Name                      string   `json:"Name"                                csv:"name"`
	State                     string   `json:"State"                               csv:"state"`
	CurrentProgressPercentage *float64 `json:"CurrentProgressPercentage,omitempty" csv:"progress"`
	ID                        string   `json:"Id"                                  csv:"id"`
	Category                  string   `json:"Category,omitempty"                  csv:"category"`
	Description               string   `json:"Description,omitempty"               csv:"-"`
	Key                       string   `json:"Key,omitempty"                       csv:"key"`
}
