package domain

import "time"

// ServiceType is the kind of service a customer requests.
type ServiceType string

const (
	ServiceRollOff     ServiceType = "rolloff"
	ServiceCommercial  ServiceType = "commercial"
	ServiceResidential ServiceType = "residential"
	ServiceSpecial     ServiceType = "special"
)

// ServiceTypes returns the known service types; the first is the form default.
func ServiceTypes() []ServiceType {
	return []ServiceType{ServiceRollOff, ServiceCommercial, ServiceResidential, ServiceSpecial}
}

// Container is a container size a customer can ask for.
type Container string

const (
	Container2Yd         Container = "2yd"
	Container4Yd         Container = "4yd"
	Container6Yd         Container = "6yd"
	Container8Yd         Container = "8yd"
	Container20YdRollOff Container = "20yd-rolloff"
	Container40YdRollOff Container = "40yd-rolloff"
)

// Containers returns the known container sizes in display order.
func Containers() []Container {
	return []Container{
		Container2Yd, Container4Yd, Container6Yd, Container8Yd,
		Container20YdRollOff, Container40YdRollOff,
	}
}

// ContainerLabel returns the human label for c, or "" when c is unset or unknown.
func ContainerLabel(c Container) string {
	switch c {
	case Container2Yd:
		return "2 Yard"
	case Container4Yd:
		return "4 Yard"
	case Container6Yd:
		return "6 Yard"
	case Container8Yd:
		return "8 Yard"
	case Container20YdRollOff:
		return "20 Yard Roll-Off"
	case Container40YdRollOff:
		return "40 Yard Roll-Off"
	default:
		return ""
	}
}

// Window is the preferred pickup window.
type Window string

const (
	WindowAM  Window = "am"
	WindowMid Window = "mid"
	WindowPM  Window = "pm"
)

// Windows returns the known pickup windows; the first is the form default.
func Windows() []Window {
	return []Window{WindowAM, WindowMid, WindowPM}
}

// ServiceRequest is a customer-submitted request for service.
type ServiceRequest struct {
	ID   ServiceRequestID
	Type ServiceType
	// Container is optional; nil means the customer did not pick one.
	Container *Container

	BusinessName string
	Address      string
	Window       Window

	// SubmittedBy is the identity id of the console user who entered the request, if any.
	SubmittedBy string
	// CorrelationID is the X-Correlation-Id used when the request was forwarded upstream.
	CorrelationID CorrelationID

	CreatedAt time.Time
}
