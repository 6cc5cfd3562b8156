package settings

import "testing"

func TestValidate_ProjectedBag(t *testing.T) {
	bag := NewProjector(nil).Project(nodeForm())
	if err := Validate(bag); err != nil {
		t.Fatalf("projected bag should satisfy schema: %v", err)
	}
}

func TestValidateJSON_Rejects(t *testing.T) {
	cases := map[string]string{
		"wrong type":       `{"fields": 1}`,
		"missing sections": `{"fields": {}, "tokens": {}}`,
		"non-string id":    `{"fields": {"title": 5}, "tokens": {}, "default_text": {"meta_title": "", "keyword": "", "meta_description": "", "body": "", "path": ""}, "placeholder_text": {"snippetTitle": "", "snippetMeta": "", "snippetCite": ""}, "seo_title_overwritten": false, "text_format": "", "form_id": ""}`,
	}
	for name, payload := range cases {
		if err := ValidateJSON([]byte(payload)); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
