// Package viewmodel defines the shapes the HTML templates render.
package viewmodel

// User represents the signed-in identity exposed to templates.
type User struct {
	ID        int64
	Name      string
	Initials  string
	Role      string
	RoleLabel string
}

// NavItem is one entry of the role-dependent navigation.
type NavItem struct {
	Label string
	Href  string
	Page  string
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	User            *User
	Nav             []NavItem
}
