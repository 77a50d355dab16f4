package domain

import "time"

// RouteStatus is the dispatch state of a route on the dashboard.
type RouteStatus string

const (
	RouteActive  RouteStatus = "Active"
	RouteDelayed RouteStatus = "Delayed"
)

// RouteRow is one active route on the dashboard.
type RouteRow struct {
	Code   string
	Driver string
	Truck  string
	Status RouteStatus
}

// QueueItem is a short service queue entry shown on the dashboard.
type QueueItem struct {
	Title    string
	Subtitle string
}

// CustomerRow is a commercial customer account.
type CustomerRow struct {
	Customer string
	Sites    string
	Services string
	Type     string
	Status   string // Active | Pending
}

// DriverRow is a driver roster entry.
type DriverRow struct {
	Name   string
	Class  string
	Expiry string
	HOS    string
	Status string // Available | On Route
}

// FleetTotals summarizes fleet size and usage.
type FleetTotals struct {
	Fleet       int
	Active      int
	Maintenance int
	Fuel        string
	Utilization string
}

// FleetMetric compares a fleet KPI with the previous period.
// Current and Previous are either numbers or preformatted strings.
type FleetMetric struct {
	Label      string
	Current    any
	Previous   any
	Change     string
	ChangeGood *bool
}

// DisposalSite is a landfill, transfer station or recycling center.
type DisposalSite struct {
	Name      string
	Type      string
	Address   string
	Hours     string
	Materials string
	Distance  string
}

// PlanDriver is a driver selectable on the route planning form.
type PlanDriver struct {
	ID    string
	Name  string
	Hours int
}

// PlanTruck is a truck selectable on the route planning form.
type PlanTruck struct {
	ID   string
	Code string
	Kind string
}

// StopKind classifies a planned stop.
type StopKind string

const (
	StopTimed  StopKind = "timed"
	StopNormal StopKind = "normal"
	StopFinal  StopKind = "final"
)

// Stop is one scheduled stop on a planned route.
type Stop struct {
	ID   string
	Name string
	Kind StopKind
	Note string
}

// RoutePlan is the route planning view: form defaults plus scheduled stops.
type RoutePlan struct {
	Date      time.Time
	DriverID  string
	TruckID   string
	Drivers   []PlanDriver
	Trucks    []PlanTruck
	Scheduled []Stop
}

// ScheduleDay is one weekday of the weekly schedule.
type ScheduleDay struct {
	Day     string
	Routes  int
	Drivers string
	Stops   int
	Status  string // Completed | In Progress | Scheduled
}

// TruckStatus is the motion state reported by live tracking.
type TruckStatus string

const (
	TruckMoving  TruckStatus = "Moving"
	TruckStopped TruckStatus = "Stopped"
	TruckIdle    TruckStatus = "Idle"
)

// TruckPosition is the last reported position of a truck.
type TruckPosition struct {
	Code       string
	Driver     string
	Status     TruckStatus
	Lat        float64
	Lng        float64
	LastUpdate string
}

// BillingLine is one billable service event.
type BillingLine struct {
	Date     time.Time
	Route    string
	Customer string
	Service  string
	Qty      int
	Rate     int
	Total    int
}

// ServiceRequestCard is a request waiting in the dispatch service queue.
type ServiceRequestCard struct {
	Level   string
	Color   string
	Title   string
	Service string
	Note    string
}
