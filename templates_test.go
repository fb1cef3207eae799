package bring

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

const parsedRecipeJSON = `{
	"name": "Spaghetti Bolognese",
	"author": "example.com",
	"imageUrl": "https://example.com/bolognese.jpg",
	"items": [
		{"itemId": "Spaghetti", "spec": "500g"},
		{"itemId": "Hackfleisch", "spec": "400g"}
	]
}`

func TestParseRecipe(t *testing.T) {
	t.Parallel()

	var askedURL string
	mux := http.NewServeMux()
	registerLoginFixtures(mux)
	mux.HandleFunc("GET /rest/bringrecipes/parser", func(w http.ResponseWriter, r *http.Request) {
		askedURL = r.URL.Query().Get("url")
		writeJSON(w, parsedRecipeJSON)
	})
	client := newTestClient(t, mux)
	login(t, client)

	template, err := client.ParseRecipe(t.Context(), "https://example.com/bolognese")
	if err != nil {
		t.Fatalf("ParseRecipe returned error: %v", err)
	}
	if askedURL != "https://example.com/bolognese" {
		t.Fatalf("parser queried %q, want recipe url", askedURL)
	}
	if template.Name != "Spaghetti Bolognese" || len(template.Items) != 2 {
		t.Fatalf("template = %#v, want parsed fixture recipe", template)
	}
	if template.Items[0].ItemID != "Spaghetti" || template.Items[0].Spec != "500g" {
		t.Fatalf("items = %#v, want parsed ingredients", template.Items)
	}
}

func TestParseRecipeRejectsNamelessResult(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	registerLoginFixtures(mux)
	mux.HandleFunc("GET /rest/bringrecipes/parser", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"items": []}`)
	})
	client := newTestClient(t, mux)
	login(t, client)

	if _, err := client.ParseRecipe(t.Context(), "https://example.com/x"); !errors.Is(err, ErrParse) {
		t.Fatalf("ParseRecipe error = %v, want ErrParse", err)
	}
}

func TestCreateTemplate(t *testing.T) {
	t.Parallel()

	var envelope struct {
		Content  Template `json:"content"`
		Type     string   `json:"type"`
		UserUUID string   `json:"userUuid"`
	}
	mux := http.NewServeMux()
	registerLoginFixtures(mux)
	mux.HandleFunc("POST /rest/v2/bringtemplates", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
			t.Errorf("decode template envelope: %v", err)
		}
		stored := envelope.Content
		stored.UUID = "template-1"
		body, err := json.Marshal(stored)
		if err != nil {
			t.Errorf("encode stored template: %v", err)
		}
		writeJSON(w, string(body))
	})
	client := newTestClient(t, mux)
	login(t, client)

	created, err := client.CreateTemplate(t.Context(), Template{
		Name:  "Wochenmarkt",
		Items: []TemplateItem{{ItemID: "Rüebli", Spec: "1kg"}},
	}, "")
	if err != nil {
		t.Fatalf("CreateTemplate returned error: %v", err)
	}
	if envelope.Type != "TEMPLATE" {
		t.Fatalf("envelope type = %q, want TEMPLATE default", envelope.Type)
	}
	if envelope.UserUUID != testUUID {
		t.Fatalf("envelope userUuid = %q, want session uuid", envelope.UserUUID)
	}
	if created.UUID != "template-1" || created.Name != "Wochenmarkt" {
		t.Fatalf("created = %#v, want stored template", created)
	}
}

func TestCreateTemplateRecipeType(t *testing.T) {
	t.Parallel()

	var envelopeType string
	mux := http.NewServeMux()
	registerLoginFixtures(mux)
	mux.HandleFunc("POST /rest/v2/bringtemplates", func(w http.ResponseWriter, r *http.Request) {
		var envelope struct {
			Content Template `json:"content"`
			Type    string   `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
			t.Errorf("decode template envelope: %v", err)
		}
		envelopeType = envelope.Type
		body, err := json.Marshal(envelope.Content)
		if err != nil {
			t.Errorf("encode stored template: %v", err)
		}
		writeJSON(w, string(body))
	})
	client := newTestClient(t, mux)
	login(t, client)

	_, err := client.CreateTemplate(t.Context(), Template{Name: "Bolognese"}, TemplateTypeRecipe)
	if err != nil {
		t.Fatalf("CreateTemplate returned error: %v", err)
	}
	if envelopeType != "RECIPE" {
		t.Fatalf("envelope type = %q, want RECIPE", envelopeType)
	}
}

func TestDeleteTemplate(t *testing.T) {
	t.Parallel()

	deleted := false
	mux := http.NewServeMux()
	registerLoginFixtures(mux)
	mux.HandleFunc("DELETE /rest/v2/bringtemplates/template-1", func(w http.ResponseWriter, r *http.Request) {
		deleted = true
	})
	client := newTestClient(t, mux)
	login(t, client)

	if err := client.DeleteTemplate(t.Context(), "template-1"); err != nil {
		t.Fatalf("DeleteTemplate returned error: %v", err)
	}
	if !deleted {
		t.Fatalf("server never saw the delete request")
	}
}

func TestGetInspirations(t *testing.T) {
	t.Parallel()

	var query map[string]string
	mux := http.NewServeMux()
	registerLoginFixtures(mux)
	mux.HandleFunc("GET /rest/v2/bringusers/"+testUUID+"/inspirations", func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{
			"filterTags": r.URL.Query().Get("filterTags"),
			"offset":     r.URL.Query().Get("offset"),
			"limit":      r.URL.Query().Get("limit"),
		}
		writeJSON(w, `{"entries": [{"type": "RECIPE", "content": {"name": "Bolognese", "items": []}}]}`)
	})
	client := newTestClient(t, mux)
	login(t, client)

	inspirations, err := client.GetInspirations(t.Context(), "")
	if err != nil {
		t.Fatalf("GetInspirations returned error: %v", err)
	}
	if query["filterTags"] != "mine" {
		t.Fatalf("filterTags = %q, want mine default", query["filterTags"])
	}
	if query["offset"] != "0" || query["limit"] != "2147483647" {
		t.Fatalf("paging = %#v, want full-range window", query)
	}
	if len(inspirations.Entries) != 1 || inspirations.Entries[0].Content.Name != "Bolognese" {
		t.Fatalf("inspirations = %#v, want fixture entry", inspirations)
	}
}

func TestGetInspirationFilters(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	registerLoginFixtures(mux)
	mux.HandleFunc("GET /rest/v2/bringusers/"+testUUID+"/inspirationstreamfilters", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"filters": [{"tag": "mine", "title": "My recipes"}, {"tag": "pasta", "title": "Pasta"}]}`)
	})
	client := newTestClient(t, mux)
	login(t, client)

	filters, err := client.GetInspirationFilters(t.Context())
	if err != nil {
		t.Fatalf("GetInspirationFilters returned error: %v", err)
	}
	if len(filters.Filters) != 2 || filters.Filters[0].Tag != "mine" {
		t.Fatalf("filters = %#v, want fixture tags", filters)
	}
}
