package feedback

import "errors"

var (
	ErrUnknownServiceType = errors.New("unknown service type")
	ErrUnknownCleaner     = errors.New("unknown cleaner")
	ErrInvalidRating      = errors.New("rating must be between 1 and 10")
	ErrBranchMismatch     = errors.New("checklist does not match service type")
	ErrEmptyName          = errors.New("name cannot be empty")
)

// ServiceType is stored as the long form and travels in callbacks as the short one.
type ServiceType string

const (
	ServiceGeneral     ServiceType = "general"
	ServiceMaintenance ServiceType = "maintenance"
)

func (s ServiceType) String() string {
	return string(s)
}

func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceGeneral, ServiceMaintenance:
		return true
	default:
		return false
	}
}

// Short is the one-letter form used on buttons: "g" or "m".
func (s ServiceType) Short() string {
	if s == ServiceGeneral {
		return "g"
	}
	return "m"
}

func (s ServiceType) Label() string {
	if s == ServiceGeneral {
		return "Генеральная"
	}
	return "Поддерживающая"
}

func NewServiceType(s string) (ServiceType, error) {
	switch s {
	case "g", string(ServiceGeneral):
		return ServiceGeneral, nil
	case "m", string(ServiceMaintenance):
		return ServiceMaintenance, nil
	default:
		return "", ErrUnknownServiceType
	}
}

type Cleaner string

const (
	CleanerIlya   Cleaner = "Ilya"
	CleanerAlexey Cleaner = "Alexey"
)

// Cleaners lists the selectable cleaners in button order.
var Cleaners = []Cleaner{CleanerIlya, CleanerAlexey}

func (c Cleaner) String() string {
	return string(c)
}

func (c Cleaner) Label() string {
	switch c {
	case CleanerIlya:
		return "Илья"
	case CleanerAlexey:
		return "Алексей"
	default:
		return string(c)
	}
}

func NewCleaner(s string) (Cleaner, error) {
	for _, c := range Cleaners {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrUnknownCleaner
}
