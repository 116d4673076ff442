package types

// NavigationItem describes an entry of the portal's sidebar. The web frontend
// consumes these via the navigation endpoint; the backend only declares them.
type NavigationItem struct {
	Name     string           `json:"name"`
	Href     string           `json:"href"`
	Children []NavigationItem `json:"children,omitempty"`
}
