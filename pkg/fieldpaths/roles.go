package fieldpaths

// Role names a semantically significant field independent of where the host
// form stores it.
type Role string

const (
	RoleTitle        Role = "title"
	RoleSummary      Role = "summary"
	RoleBody         Role = "body"
	RoleFocusKeyword Role = "focus_keyword"
	RoleSEOStatus    Role = "seo_status"
	RolePath         Role = "path"
)

// KnownRoles lists the built-in roles in their canonical order.
func KnownRoles() []Role {
	return []Role{RoleTitle, RoleSummary, RoleBody, RoleFocusKeyword, RoleSEOStatus, RolePath}
}

func (r Role) String() string {
	return string(r)
}
