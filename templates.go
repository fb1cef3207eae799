package bring

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ParseRecipe asks the service to parse a recipe web page into a Template.
func (c *Client) ParseRecipe(ctx context.Context, recipeURL string) (*Template, error) {
	rel := &url.URL{
		Path:     "bringrecipes/parser",
		RawQuery: url.Values{"url": {recipeURL}}.Encode(),
	}
	text, err := c.do(ctx, http.MethodGet, rel, nil, "")
	if err != nil {
		return nil, err
	}
	var template Template
	if err := decodeStrict(text, &template); err != nil {
		return nil, fmt.Errorf("parsing recipe %s failed during parsing of request response: %w", recipeURL, err)
	}
	return &template, nil
}

// CreateTemplate creates a new template or recipe and returns it as stored
// by the service.
func (c *Client) CreateTemplate(ctx context.Context, template Template, templateType TemplateType) (*Template, error) {
	if templateType == "" {
		templateType = TemplateTypeTemplate
	}
	payload, err := json.Marshal(struct {
		Content  Template     `json:"content"`
		Type     TemplateType `json:"type"`
		UserUUID string       `json:"userUuid"`
	}{
		Content:  template,
		Type:     templateType,
		UserUUID: c.session.uuid,
	})
	if err != nil {
		return nil, fmt.Errorf("encode template: %w", err)
	}

	rel := &url.URL{Path: "v2/bringtemplates"}
	text, err := c.do(ctx, http.MethodPost, rel, payload, contentTypeJSON)
	if err != nil {
		return nil, err
	}
	var created Template
	if err := decodeStrict(text, &created); err != nil {
		return nil, fmt.Errorf("creating template failed during parsing of request response: %w", err)
	}
	return &created, nil
}

// DeleteTemplate deletes a template or recipe by its UUID.
func (c *Client) DeleteTemplate(ctx context.Context, templateUUID string) error {
	rel := &url.URL{Path: "v2/bringtemplates/" + templateUUID}
	_, err := c.do(ctx, http.MethodDelete, rel, nil, "")
	return err
}

// GetInspirations returns the inspiration stream (recipes and templates)
// for the given filter tag. The "mine" tag selects the user's own entries;
// further tags come from GetInspirationFilters.
func (c *Client) GetInspirations(ctx context.Context, filter string) (*InspirationsResponse, error) {
	if filter == "" {
		filter = "mine"
	}
	rel := &url.URL{
		Path: "v2/bringusers/" + c.session.uuid + "/inspirations",
		RawQuery: url.Values{
			"filterTags": {filter},
			"offset":     {"0"},
			"limit":      {strconv.Itoa(1<<31 - 1)},
		}.Encode(),
	}
	text, err := c.do(ctx, http.MethodGet, rel, nil, "")
	if err != nil {
		return nil, err
	}
	var inspirations InspirationsResponse
	if err := decodeStrict(text, &inspirations); err != nil {
		return nil, fmt.Errorf("loading inspirations failed during parsing of request response: %w", err)
	}
	return &inspirations, nil
}

// GetInspirationFilters returns the selectable categories of the
// inspiration stream.
func (c *Client) GetInspirationFilters(ctx context.Context) (*InspirationFiltersResponse, error) {
	rel := &url.URL{Path: "v2/bringusers/" + c.session.uuid + "/inspirationstreamfilters"}
	text, err := c.do(ctx, http.MethodGet, rel, nil, "")
	if err != nil {
		return nil, err
	}
	var filters InspirationFiltersResponse
	if err := decodeStrict(text, &filters); err != nil {
		return nil, fmt.Errorf("loading inspiration filters failed during parsing of request response: %w", err)
	}
	return &filters, nil
}
