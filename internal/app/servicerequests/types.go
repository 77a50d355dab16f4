package servicerequests

import "github.com/wrp-ops/opsconsole/internal/domain"

// SubmitInput is the raw customer portal form. Empty Type and Window take the
// form defaults; a nil or empty Container means none was picked.
type SubmitInput struct {
	Type         string
	Container    *string
	BusinessName string
	Address      string
	Window       string
	// SubmittedBy is the id of the console identity entering the request, if any.
	SubmittedBy string
}

// ContainerOption is a selectable container size with its display label.
type ContainerOption struct {
	Value domain.Container
	Label string
}

// FormOptions lists the choices offered by the customer portal form.
type FormOptions struct {
	ServiceTypes  []domain.ServiceType
	Containers    []ContainerOption
	Windows       []domain.Window
	DefaultType   domain.ServiceType
	DefaultWindow domain.Window
}
