package ports

// Actor identifies who is performing an operation. Every workflow call takes
// an explicit Actor instead of reading ambient session state.
type Actor struct {
	ID         string
	Name       string
	Email      string
	Role       string
	Department string // set only for department-role actors
}
