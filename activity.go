package bring

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// GetActivity returns the activity timeline of a list.
func (c *Client) GetActivity(ctx context.Context, listUUID string) (*ActivityResponse, error) {
	rel := &url.URL{Path: "v2/bringlists/" + listUUID + "/activity"}
	text, err := c.do(ctx, http.MethodGet, rel, nil, "")
	if err != nil {
		return nil, err
	}
	var activity ActivityResponse
	if err := decodeStrict(text, &activity); err != nil {
		return nil, fmt.Errorf("loading activity for list %s failed during parsing of request response: %w", listUUID, err)
	}
	return &activity, nil
}

// GetListUsers returns the members of a shared list.
func (c *Client) GetListUsers(ctx context.Context, listUUID string) (*UsersResponse, error) {
	rel := &url.URL{Path: "v2/bringlists/" + listUUID + "/users"}
	text, err := c.do(ctx, http.MethodGet, rel, nil, "")
	if err != nil {
		return nil, err
	}
	var users UsersResponse
	if err := decodeStrict(text, &users); err != nil {
		return nil, fmt.Errorf("loading users for list %s failed during parsing of request response: %w", listUUID, err)
	}
	return &users, nil
}
