package feedback

const (
	MinRating = 1
	MaxRating = 10
)

type Rating struct {
	value int
}

func NewRating(v int) (Rating, error) {
	if v < MinRating || v > MaxRating {
		return Rating{}, ErrInvalidRating
	}
	return Rating{value: v}, nil
}

func (r Rating) Value() int { return r.value }

// Checklist holds the quality-control answers. Windows, Cobweb and Balcony are asked only
// for general cleaning and stay nil otherwise.
type Checklist struct {
	Surfaces  bool
	Floor     bool
	Bathrooms bool
	Kitchen   bool
	Trash     bool
	Mirror    bool

	Windows *bool
	Cobweb  *bool
	Balcony *bool
}

func (c Checklist) generalAnswered() bool {
	return c.Windows != nil && c.Cobweb != nil && c.Balcony != nil
}

// ForBranch checks the general-only items against the service type. For maintenance they
// are dropped, for general all three must be answered.
func (c Checklist) ForBranch(t ServiceType) (Checklist, error) {
	switch t {
	case ServiceMaintenance:
		c.Windows, c.Cobweb, c.Balcony = nil, nil, nil
		return c, nil
	case ServiceGeneral:
		if !c.generalAnswered() {
			return Checklist{}, ErrBranchMismatch
		}
		return c, nil
	default:
		return Checklist{}, ErrUnknownServiceType
	}
}
