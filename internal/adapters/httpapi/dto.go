package httpapi

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/wrp-ops/opsconsole/internal/app/ops"
	"github.com/wrp-ops/opsconsole/internal/app/servicerequests"
	"github.com/wrp-ops/opsconsole/internal/domain"
	"github.com/wrp-ops/opsconsole/internal/ports/out/catalog"
)

type Identity struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type SetRoleRequest struct {
	Role *string `json:"role"`
}

type BeginSessionRequest struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type RouteRow struct {
	Route  string `json:"route"`
	Driver string `json:"driver"`
	Truck  string `json:"truck"`
	Status string `json:"status"`
}

type QueueItem struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type DashboardResponse struct {
	Routes []RouteRow  `json:"routes"`
	Queue  []QueueItem `json:"queue"`
}

type Customer struct {
	Customer string `json:"customer"`
	Sites    string `json:"sites"`
	Services string `json:"services"`
	Type     string `json:"type"`
	Status   string `json:"status"`
}

type CustomersResponse struct {
	Customers []Customer `json:"customers"`
}

type Driver struct {
	Name   string `json:"name"`
	Class  string `json:"class"`
	Expiry string `json:"expiry"`
	Hos    string `json:"hos"`
	Status string `json:"status"`
}

type DriversResponse struct {
	Drivers []Driver `json:"drivers"`
}

type FleetTotals struct {
	Fleet       int    `json:"fleet"`
	Active      int    `json:"active"`
	Maintenance int    `json:"maintenance"`
	Fuel        string `json:"fuel"`
	Utilization string `json:"utilization"`
}

type FleetMetric struct {
	Label      string `json:"label"`
	Current    any    `json:"current"`
	Previous   any    `json:"previous"`
	Change     string `json:"change,omitempty"`
	ChangeGood *bool  `json:"changeGood,omitempty"`
}

type FleetResponse struct {
	Totals  FleetTotals   `json:"totals"`
	Metrics []FleetMetric `json:"metrics"`
}

type DisposalSite struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Address   string `json:"address"`
	Hours     string `json:"hours"`
	Materials string `json:"materials"`
	Distance  string `json:"distance"`
}

type DisposalSitesResponse struct {
	Sites []DisposalSite `json:"sites"`
}

type PlanDriver struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Hours int    `json:"hours"`
}

type PlanTruck struct {
	Id   string `json:"id"`
	Code string `json:"code"`
	Type string `json:"type"`
}

type Stop struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
	Note string `json:"note,omitempty"`
}

type RoutePlanResponse struct {
	Date      openapi_types.Date `json:"date"`
	DriverId  string             `json:"driverId"`
	TruckId   string             `json:"truckId"`
	Drivers   []PlanDriver       `json:"drivers"`
	Trucks    []PlanTruck        `json:"trucks"`
	Scheduled []Stop             `json:"scheduled"`
}

type ScheduleDay struct {
	Day     string `json:"day"`
	Routes  int    `json:"routes"`
	Drivers string `json:"drivers"`
	Stops   int    `json:"stops"`
	Status  string `json:"status"`
}

type ScheduleResponse struct {
	Days []ScheduleDay `json:"days"`
}

type TruckPosition struct {
	Truck      string  `json:"truck"`
	Driver     string  `json:"driver"`
	Status     string  `json:"status"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	LastUpdate string  `json:"lastUpdate"`
}

type TruckPositionsResponse struct {
	Trucks []TruckPosition `json:"trucks"`
}

type ServiceQueueCard struct {
	Level   string `json:"level"`
	Color   string `json:"color"`
	Title   string `json:"title"`
	Service string `json:"service"`
	Note    string `json:"note"`
}

type ServiceQueueResponse struct {
	Requests []ServiceQueueCard `json:"requests"`
}

type BillingLine struct {
	Date     openapi_types.Date `json:"date"`
	Route    string             `json:"route"`
	Customer string             `json:"customer"`
	Service  string             `json:"service"`
	Qty      int                `json:"qty"`
	Rate     int                `json:"rate"`
	Total    int                `json:"total"`
}

type BillingResponse struct {
	Lines []BillingLine `json:"lines"`
	Total int           `json:"total"`
}

type ContainerOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type PortalOptionsResponse struct {
	ServiceTypes  []string          `json:"serviceTypes"`
	Containers    []ContainerOption `json:"containers"`
	Windows       []string          `json:"windows"`
	DefaultType   string            `json:"defaultType"`
	DefaultWindow string            `json:"defaultWindow"`
}

type SubmitServiceRequestRequest struct {
	Type         string  `json:"type,omitempty"`
	Container    *string `json:"container,omitempty"`
	BusinessName string  `json:"businessName"`
	Address      string  `json:"address"`
	Window       string  `json:"window,omitempty"`
}

type ServiceRequest struct {
	Id             openapi_types.UUID `json:"id"`
	Type           string             `json:"type"`
	Container      *string            `json:"container"`
	ContainerLabel string             `json:"containerLabel,omitempty"`
	BusinessName   string             `json:"businessName"`
	Address        string             `json:"address"`
	Window         string             `json:"window"`
	SubmittedBy    string             `json:"submittedBy,omitempty"`
	CorrelationId  string             `json:"correlationId,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

type ServiceRequestResponse struct {
	Request ServiceRequest `json:"request"`
}

type ServiceRequestsResponse struct {
	Requests []ServiceRequest `json:"requests"`
}

func identityFromDomain(id domain.Identity) Identity {
	return Identity{Id: id.ID, Name: id.Name, Role: string(id.Role)}
}

func dashboardFromDomain(d catalog.Dashboard) DashboardResponse {
	out := DashboardResponse{
		Routes: make([]RouteRow, 0, len(d.Routes)),
		Queue:  make([]QueueItem, 0, len(d.Queue)),
	}
	for _, r := range d.Routes {
		out.Routes = append(out.Routes, RouteRow{Route: r.Code, Driver: r.Driver, Truck: r.Truck, Status: string(r.Status)})
	}
	for _, q := range d.Queue {
		out.Queue = append(out.Queue, QueueItem{Title: q.Title, Subtitle: q.Subtitle})
	}
	return out
}

func customersFromDomain(rows []domain.CustomerRow) CustomersResponse {
	out := make([]Customer, 0, len(rows))
	for _, c := range rows {
		out = append(out, Customer(c))
	}
	return CustomersResponse{Customers: out}
}

func driversFromDomain(rows []domain.DriverRow) DriversResponse {
	out := make([]Driver, 0, len(rows))
	for _, d := range rows {
		out = append(out, Driver{Name: d.Name, Class: d.Class, Expiry: d.Expiry, Hos: d.HOS, Status: d.Status})
	}
	return DriversResponse{Drivers: out}
}

func fleetFromDomain(f catalog.Fleet) FleetResponse {
	out := FleetResponse{
		Totals:  FleetTotals(f.Totals),
		Metrics: make([]FleetMetric, 0, len(f.Metrics)),
	}
	for _, m := range f.Metrics {
		out.Metrics = append(out.Metrics, FleetMetric(m))
	}
	return out
}

func disposalSitesFromDomain(rows []domain.DisposalSite) DisposalSitesResponse {
	out := make([]DisposalSite, 0, len(rows))
	for _, s := range rows {
		out = append(out, DisposalSite(s))
	}
	return DisposalSitesResponse{Sites: out}
}

func routePlanFromDomain(p domain.RoutePlan) RoutePlanResponse {
	out := RoutePlanResponse{
		Date:      openapi_types.Date{Time: p.Date},
		DriverId:  p.DriverID,
		TruckId:   p.TruckID,
		Drivers:   make([]PlanDriver, 0, len(p.Drivers)),
		Trucks:    make([]PlanTruck, 0, len(p.Trucks)),
		Scheduled: make([]Stop, 0, len(p.Scheduled)),
	}
	for _, d := range p.Drivers {
		out.Drivers = append(out.Drivers, PlanDriver{Id: d.ID, Name: d.Name, Hours: d.Hours})
	}
	for _, t := range p.Trucks {
		out.Trucks = append(out.Trucks, PlanTruck{Id: t.ID, Code: t.Code, Type: t.Kind})
	}
	for _, s := range p.Scheduled {
		out.Scheduled = append(out.Scheduled, Stop{Id: s.ID, Name: s.Name, Kind: string(s.Kind), Note: s.Note})
	}
	return out
}

func scheduleFromDomain(days []domain.ScheduleDay) ScheduleResponse {
	out := make([]ScheduleDay, 0, len(days))
	for _, d := range days {
		out = append(out, ScheduleDay(d))
	}
	return ScheduleResponse{Days: out}
}

func truckPositionsFromDomain(rows []domain.TruckPosition) TruckPositionsResponse {
	out := make([]TruckPosition, 0, len(rows))
	for _, p := range rows {
		out = append(out, TruckPosition{
			Truck:      p.Code,
			Driver:     p.Driver,
			Status:     string(p.Status),
			Lat:        p.Lat,
			Lng:        p.Lng,
			LastUpdate: p.LastUpdate,
		})
	}
	return TruckPositionsResponse{Trucks: out}
}

func serviceQueueFromDomain(cards []domain.ServiceRequestCard) ServiceQueueResponse {
	out := make([]ServiceQueueCard, 0, len(cards))
	for _, c := range cards {
		out = append(out, ServiceQueueCard(c))
	}
	return ServiceQueueResponse{Requests: out}
}

func billingFromDomain(v ops.BillingView) BillingResponse {
	out := BillingResponse{Lines: make([]BillingLine, 0, len(v.Lines)), Total: v.Total}
	for _, l := range v.Lines {
		out.Lines = append(out.Lines, BillingLine{
			Date:     openapi_types.Date{Time: l.Date},
			Route:    l.Route,
			Customer: l.Customer,
			Service:  l.Service,
			Qty:      l.Qty,
			Rate:     l.Rate,
			Total:    l.Total,
		})
	}
	return out
}

func portalOptionsFromApp(o servicerequests.FormOptions) PortalOptionsResponse {
	out := PortalOptionsResponse{
		ServiceTypes:  make([]string, 0, len(o.ServiceTypes)),
		Containers:    make([]ContainerOption, 0, len(o.Containers)),
		Windows:       make([]string, 0, len(o.Windows)),
		DefaultType:   string(o.DefaultType),
		DefaultWindow: string(o.DefaultWindow),
	}
	for _, t := range o.ServiceTypes {
		out.ServiceTypes = append(out.ServiceTypes, string(t))
	}
	for _, c := range o.Containers {
		out.Containers = append(out.Containers, ContainerOption{Value: string(c.Value), Label: c.Label})
	}
	for _, w := range o.Windows {
		out.Windows = append(out.Windows, string(w))
	}
	return out
}

func serviceRequestFromDomain(r domain.ServiceRequest) ServiceRequest {
	out := ServiceRequest{
		Type:          string(r.Type),
		BusinessName:  r.BusinessName,
		Address:       r.Address,
		Window:        string(r.Window),
		SubmittedBy:   r.SubmittedBy,
		CorrelationId: string(r.CorrelationID),
		CreatedAt:     r.CreatedAt.UTC(),
	}
	// Ids are minted as UUIDs; anything else renders as the nil UUID.
	if id, err := uuid.Parse(string(r.ID)); err == nil {
		out.Id = id
	}
	if r.Container != nil {
		v := string(*r.Container)
		out.Container = &v
		out.ContainerLabel = domain.ContainerLabel(*r.Container)
	}
	return out
}

func serviceRequestsFromDomain(rs []domain.ServiceRequest) ServiceRequestsResponse {
	out := make([]ServiceRequest, 0, len(rs))
	for _, r := range rs {
		out = append(out, serviceRequestFromDomain(r))
	}
	return ServiceRequestsResponse{Requests: out}
}
