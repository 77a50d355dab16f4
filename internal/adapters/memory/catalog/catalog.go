package catalog

import (
	"context"
	"time"

	"github.com/wrp-ops/opsconsole/internal/domain"
	catalogport "github.com/wrp-ops/opsconsole/internal/ports/out/catalog"
	clockport "github.com/wrp-ops/opsconsole/internal/ports/out/clock"
)

// Catalog is the built-in, hand-authored reference dataset.
// It is read-only and safe for concurrent use.
type Catalog struct {
	clk clockport.Clock
}

// New returns the built-in catalog. clk dates the route plan form (it defaults to today).
func New(clk clockport.Clock) *Catalog {
	return &Catalog{clk: clk}
}

var _ catalogport.Source = (*Catalog)(nil)

func (c *Catalog) Dashboard(_ context.Context) (catalogport.Dashboard, error) {
	return catalogport.Dashboard{
		Routes: []domain.RouteRow{
			{Code: "RT-001", Driver: "John Smith", Truck: "FL-102", Status: domain.RouteActive},
			{Code: "RT-002", Driver: "Mike Johnson", Truck: "RL-205", Status: domain.RouteDelayed},
			{Code: "RT-003", Driver: "Sarah Davis", Truck: "ASL-301", Status: domain.RouteActive},
		},
		Queue: []domain.QueueItem{
			{Title: "Priority: Walmart Store #234", Subtitle: "Timed Stop 10:00 AM"},
			{Title: "New Request: Office Complex A", Subtitle: "Roll-off Container"},
		},
	}, nil
}

func (c *Catalog) Customers(_ context.Context) ([]domain.CustomerRow, error) {
	return []domain.CustomerRow{
		{Customer: "Walmart Inc.", Sites: "12 sites", Services: "Weekly", Type: "Front End Load", Status: "Active"},
		{Customer: "Office Complex A", Sites: "3 sites", Services: "Bi-weekly", Type: "Rear End Load", Status: "Active"},
		{Customer: "Construction Co.", Sites: "5 sites", Services: "On-demand", Type: "Roll Off", Status: "Pending"},
	}, nil
}

func (c *Catalog) Drivers(_ context.Context) ([]domain.DriverRow, error) {
	return []domain.DriverRow{
		{Name: "John Smith", Class: "Class A", Expiry: "03/15/2026", HOS: "42 hrs", Status: "Available"},
		{Name: "Mike Johnson", Class: "Class B", Expiry: "10/22/2025", HOS: "38 hrs", Status: "On Route"},
	}, nil
}

func (c *Catalog) Fleet(_ context.Context) (catalogport.Fleet, error) {
	return catalogport.Fleet{
		Totals: domain.FleetTotals{
			Fleet:       25,
			Active:      18,
			Maintenance: 4,
			Fuel:        "8,234",
			Utilization: "72%",
		},
		Metrics: []domain.FleetMetric{
			{Label: "Total Miles Driven", Current: 12450, Previous: 11890, Change: "+4.7%", ChangeGood: boolPtr(false)},
			{Label: "Fuel Efficiency (MPG)", Current: 6.8, Previous: 6.5, Change: "+4.6%", ChangeGood: boolPtr(true)},
			{Label: "Maintenance Hours", Current: 48, Previous: 52, Change: "-7.7%", ChangeGood: boolPtr(true)},
			{Label: "Incidents/Breakdowns", Current: 1, Previous: 3, Change: "-66.7%", ChangeGood: boolPtr(true)},
		},
	}, nil
}

func (c *Catalog) DisposalSites(_ context.Context) ([]domain.DisposalSite, error) {
	return []domain.DisposalSite{
		{Name: "Central Landfill", Type: "Landfill", Address: "1234 Disposal Rd", Hours: "6AM - 6PM", Materials: "All types", Distance: "12 miles"},
		{Name: "North Transfer Station", Type: "Transfer", Address: "5678 Transfer Ave", Hours: "7AM - 5PM", Materials: "Municipal, Commercial", Distance: "8 miles"},
		{Name: "Recycling Center A", Type: "Recycling", Address: "910 Green Way", Hours: "8AM - 4PM", Materials: "Recyclables only", Distance: "15 miles"},
	}, nil
}

func (c *Catalog) RoutePlan(_ context.Context) (domain.RoutePlan, error) {
	now := c.clk.Now()
	return domain.RoutePlan{
		Date:     time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		DriverID: "d1",
		TruckID:  "t1",
		Drivers: []domain.PlanDriver{
			{ID: "d1", Name: "John Smith", Hours: 42},
			{ID: "d2", Name: "Sarah Davis", Hours: 36},
		},
		Trucks: []domain.PlanTruck{
			{ID: "t1", Code: "RO-101", Kind: "Roll Off"},
			{ID: "t2", Code: "FL-102", Kind: "Front End Load"},
		},
		Scheduled: []domain.Stop{
			{ID: "s1", Name: "Walmart Store #234", Kind: domain.StopTimed, Note: "Timed Stop: 10:00 AM | Container: Front End Load"},
			{ID: "s2", Name: "Office Complex A", Kind: domain.StopNormal, Note: "Distance: 2.3 miles | Container: Rear End Load"},
			{ID: "s3", Name: "Construction Site B", Kind: domain.StopNormal, Note: "Distance: 4.1 miles | Container: Roll Off"},
			{ID: "final", Name: "Central Landfill", Kind: domain.StopFinal, Note: "Disposal Site | Distance: 12 miles"},
		},
	}, nil
}

func (c *Catalog) Schedule(_ context.Context) ([]domain.ScheduleDay, error) {
	return []domain.ScheduleDay{
		{Day: "Monday", Routes: 12, Drivers: "12/15", Stops: 156, Status: "Completed"},
		{Day: "Tuesday", Routes: 14, Drivers: "14/15", Stops: 178, Status: "Completed"},
		{Day: "Wednesday", Routes: 13, Drivers: "13/15", Stops: 165, Status: "In Progress"},
		{Day: "Thursday", Routes: 15, Drivers: "14/15", Stops: 189, Status: "Scheduled"},
		{Day: "Friday", Routes: 16, Drivers: "15/15", Stops: 201, Status: "Scheduled"},
	}, nil
}

func (c *Catalog) TruckPositions(_ context.Context) ([]domain.TruckPosition, error) {
	return []domain.TruckPosition{
		{Code: "FL-102", Driver: "John Smith", Status: domain.TruckMoving, Lat: 40.71, Lng: -74.0, LastUpdate: "1 min ago"},
		{Code: "RO-205", Driver: "Mike Jones", Status: domain.TruckIdle, Lat: 40.7, Lng: -73.9, LastUpdate: "3 mins ago"},
		{Code: "ASL-301", Driver: "Sarah Davis", Status: domain.TruckStopped, Lat: 40.69, Lng: -73.95, LastUpdate: "5 mins ago"},
	}, nil
}

func (c *Catalog) ServiceQueue(_ context.Context) ([]domain.ServiceRequestCard, error) {
	return []domain.ServiceRequestCard{
		{Level: "Priority", Color: "#d32f2f", Title: "Walmart Store #234", Service: "Front End Load", Note: "Timed 10:00 AM"},
		{Level: "Standard", Color: "#f59e0b", Title: "Office Complex A", Service: "Roll-off Exchange", Note: "Flexible timing"},
		{Level: "New Request", Color: "#22c55e", Title: "Restaurant Row", Service: "Rear End Load", Note: "Tomorrow AM"},
	}, nil
}

func (c *Catalog) BillingLines(_ context.Context) ([]domain.BillingLine, error) {
	day := time.Date(2025, time.September, 22, 0, 0, 0, 0, time.UTC)
	return []domain.BillingLine{
		{Date: day, Route: "RT-001", Customer: "Walmart Inc.", Service: "Front End Load (6yd)", Qty: 1, Rate: 180, Total: 180},
		{Date: day, Route: "RT-002", Customer: "Office Complex A", Service: "Rear End Load", Qty: 2, Rate: 120, Total: 240},
		{Date: day, Route: "RT-003", Customer: "Construction Co.", Service: "Roll-off Exchange", Qty: 1, Rate: 350, Total: 350},
	}, nil
}

func boolPtr(b bool) *bool { return &b }
