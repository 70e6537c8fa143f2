package simulation

// Org is the single organization known to the mock.
type Org struct {
	ID   string
	Name string
}

// Default identity of the emulated instance.
const (
	DefaultOrgID   = "e2e2d84ffb3c4f85"
	DefaultOrgName = "my-org"
	DefaultBucket  = "my-bucket"
)

// DefaultOrg returns the organization used when none is configured.
func DefaultOrg() Org {
	return Org{ID: DefaultOrgID, Name: DefaultOrgName}
}

// Matches reports whether name is the organization's name.
func (o Org) Matches(name string) bool {
	return name == o.Name
}

// Filter returns the organization in a list when name is empty or matches,
// otherwise an empty list.
func (o Org) Filter(name string) []Org {
	if name != "" && !o.Matches(name) {
		return []Org{}
	}
	return []Org{o}
}
