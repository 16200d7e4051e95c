package domain

// GroupCategory is the cohort label a club belongs to
type GroupCategory string

const (
	GroupA GroupCategory = "A"
	GroupB GroupCategory = "B"
	GroupC GroupCategory = "C"
)

// Club is reference data: the organization that books venues
type Club struct {
	ID    int64
	Name  string
	Group GroupCategory
}
