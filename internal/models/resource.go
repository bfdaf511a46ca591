package models

import "time"

// ResourceType classifies a catalog entry.
type ResourceType string

const (
	TypeEquipment      ResourceType = "equipment"
	TypeVehicle        ResourceType = "vehicle"
	TypeSecurityDevice ResourceType = "security_device"
)

// ResourceTypes lists every valid type, in display order.
var ResourceTypes = []ResourceType{TypeEquipment, TypeVehicle, TypeSecurityDevice}

func (t ResourceType) Valid() bool {
	switch t {
	case TypeEquipment, TypeVehicle, TypeSecurityDevice:
		return true
	}
	return false
}

// ResourceStatus is the lifecycle state of a resource.
type ResourceStatus string

const (
	StatusAvailable   ResourceStatus = "available"
	StatusInUse       ResourceStatus = "in_use"
	StatusMaintenance ResourceStatus = "maintenance"
	StatusRetired     ResourceStatus = "retired"
)

func (s ResourceStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusInUse, StatusMaintenance, StatusRetired:
		return true
	}
	return false
}

// Resource is one physical asset in the facility catalog. CreatedBy is set
// at insert time and never changes afterwards.
type Resource struct {
	ID          int            `json:"id"`
	Type        ResourceType   `json:"type"`
	Name        string         `json:"name"`
	Status      ResourceStatus `json:"status"`
	Description string         `json:"description,omitempty"`
	Location    string         `json:"location,omitempty"`
	CreatedBy   int            `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
