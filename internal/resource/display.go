package resource

// Display is the admin console's presentation of a record type. The engine
// never reads it.
type Display struct {
	Label      string    `json:"label"`
	Plural     string    `json:"plural"`
	Icon       string    `json:"icon,omitempty"`
	ListFields []string  `json:"list_fields"`
	Badges     []Badge   `json:"badges,omitempty"`
	Sections   []Section `json:"sections,omitempty"`
}

// Badge colours a field's values in list views.
type Badge struct {
	Field  string            `json:"field"`
	Colors map[string]string `json:"colors"`
}

type Section struct {
	Title     string   `json:"title"`
	Fields    []string `json:"fields"`
	Collapsed bool     `json:"collapsed,omitempty"`
}

// Descriptor is what the admin console needs to render and drive a type.
type Descriptor struct {
	Name             string               `json:"name"`
	Display          Display              `json:"display"`
	Ordering         []string             `json:"ordering"`
	Filters          []string             `json:"filters"`
	Search           []string             `json:"search"`
	Queries          []string             `json:"queries"`
	Actions          []string             `json:"actions"`
	ReadOnly         []string             `json:"read_only"`
	ServerControlled []string             `json:"server_controlled"`
	Access           map[Operation]string `json:"access"`
}
