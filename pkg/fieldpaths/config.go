package fieldpaths

// Config is the serialisable form of a Registry. Paths are dotted locators.
type Config struct {
	Paths  map[string]string `json:"paths" yaml:"paths"`
	Fields []string          `json:"fields" yaml:"fields"`
	Tokens map[string]string `json:"tokens" yaml:"tokens"`
}

// DefaultConfig returns the stock registry for node edit forms.
func DefaultConfig() Config {
	return Config{
		Paths: map[string]string{
			string(RoleTitle):        "title.widget.0.value",
			string(RoleSummary):      "body.widget.0.summary",
			string(RoleBody):         "body.widget.0.value",
			string(RoleFocusKeyword): "field_yoast_seo.widget.0.yoast_seo.focus_keyword",
			string(RoleSEOStatus):    "field_yoast_seo.widget.0.yoast_seo.status",
			string(RolePath):         "path.widget.0.alias",
		},
		Fields: []string{
			string(RoleTitle),
			string(RoleSummary),
			string(RoleBody),
			string(RoleFocusKeyword),
			string(RoleSEOStatus),
			string(RolePath),
		},
		Tokens: map[string]string{
			"[current-page:title]":   string(RoleTitle),
			"[node:title]":           string(RoleTitle),
			"[current-page:body]":    string(RoleBody),
			"[node:body]":            string(RoleBody),
			"[current-page:summary]": string(RoleSummary),
			"[node:summary]":         string(RoleSummary),
		},
	}
}
