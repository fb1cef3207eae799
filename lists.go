package bring

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// LoadLists loads all shopping lists of the current user.
func (c *Client) LoadLists(ctx context.Context) (*ListsResponse, error) {
	rel := &url.URL{Path: "bringusers/" + c.session.uuid + "/lists"}
	text, err := c.do(ctx, http.MethodGet, rel, nil, "")
	if err != nil {
		return nil, err
	}
	var lists ListsResponse
	if err := decodeStrict(text, &lists); err != nil {
		return nil, fmt.Errorf("loading lists failed during parsing of request response: %w", err)
	}
	return &lists, nil
}

// GetList returns the items of a shopping list. Item names come back
// translated from the catalog language into the list's resolved locale.
func (c *Client) GetList(ctx context.Context, listUUID string) (*ItemsResponse, error) {
	rel := &url.URL{Path: "v2/bringlists/" + listUUID}
	text, err := c.do(ctx, http.MethodGet, rel, nil, "")
	if err != nil {
		return nil, err
	}
	var items ItemsResponse
	if err := decodeStrict(text, &items); err != nil {
		return nil, fmt.Errorf("loading list %s failed during parsing of request response: %w", listUUID, err)
	}

	locale := c.listLocale(listUUID)
	for _, section := range [][]Purchase{items.Items.Purchase, items.Items.Recently} {
		for i := range section {
			translated, err := c.translate(section[i].ItemID, locale, "")
			if err != nil {
				return nil, err
			}
			section[i].ItemID = translated
		}
	}
	return &items, nil
}

// GetAllItemDetails returns the customization details (icon, section,
// assignee, image) of every item ever customized on a list. This is not the
// set of items currently marked "to buy"; see GetList for those.
func (c *Client) GetAllItemDetails(ctx context.Context, listUUID string) ([]ListItemDetail, error) {
	rel := &url.URL{Path: "bringlists/" + listUUID + "/details"}
	text, err := c.do(ctx, http.MethodGet, rel, nil, "")
	if err != nil {
		return nil, err
	}
	var details []ListItemDetail
	if err := json.Unmarshal([]byte(text), &details); err != nil {
		return nil, fmt.Errorf("loading list details failed during parsing of request response: %v: %w", err, ErrParse)
	}
	return details, nil
}

// batchPayload is the wire form of a batch update. Every change record is
// padded with placeholder geolocation fields the service expects.
type batchPayload struct {
	Changes []batchChange `json:"changes"`
	Sender  string        `json:"sender"`
}

type batchChange struct {
	ItemID    string         `json:"itemId"`
	Spec      string         `json:"spec"`
	UUID      string         `json:"uuid"`
	Operation string         `json:"operation"`
	Attribute *ItemAttribute `json:"attribute,omitempty"`
	Accuracy  string         `json:"accuracy"`
	Altitude  string         `json:"altitude"`
	Latitude  string         `json:"latitude"`
	Longitude string         `json:"longitude"`
}

// BatchUpdateList applies one or more item mutations to a list in a single
// request, the only batching the API offers. An item's own Operation wins
// over the call-level operation; with neither set the item is added. Item
// names are translated from the list's resolved locale back to the catalog
// language before sending.
func (c *Client) BatchUpdateList(ctx context.Context, listUUID string, items []Item, operation ItemOperation) error {
	if operation == "" {
		operation = OperationAdd
	}

	locale := c.listLocale(listUUID)
	changes := make([]batchChange, 0, len(items))
	for _, item := range items {
		itemID, err := c.translate(item.ItemID, "", locale)
		if err != nil {
			return err
		}
		op := operation
		if item.Operation != "" {
			op = item.Operation
		}
		changes = append(changes, batchChange{
			ItemID:    itemID,
			Spec:      item.Spec,
			UUID:      item.UUID,
			Operation: string(op),
			Attribute: item.Attribute,
			Accuracy:  "0.0",
			Altitude:  "0.0",
			Latitude:  "0.0",
			Longitude: "0.0",
		})
	}

	payload, err := json.Marshal(batchPayload{Changes: changes, Sender: ""})
	if err != nil {
		return fmt.Errorf("encode batch update: %w", err)
	}
	rel := &url.URL{Path: "v2/bringlists/" + listUUID + "/items"}
	_, err = c.do(ctx, http.MethodPut, rel, payload, contentTypeJSON)
	return err
}

// SaveItem adds an item to a shopping list. The optional itemUUID gives the
// item a unique identity; pass a random UUID when one is needed.
func (c *Client) SaveItem(ctx context.Context, listUUID, itemName, specification, itemUUID string) error {
	item := Item{ItemID: itemName, Spec: specification, UUID: itemUUID}
	if err := c.BatchUpdateList(ctx, listUUID, []Item{item}, OperationAdd); err != nil {
		return fmt.Errorf("saving item %s (%s) to list %s failed: %w", itemName, specification, listUUID, err)
	}
	return nil
}

// UpdateItem updates an existing list item's specification. Providing
// itemUUID pins the update to a specific item when several share a name;
// without it the newest item with that name is updated. The name itself must
// not change.
func (c *Client) UpdateItem(ctx context.Context, listUUID, itemName, specification, itemUUID string) error {
	item := Item{ItemID: itemName, Spec: specification, UUID: itemUUID}
	if err := c.BatchUpdateList(ctx, listUUID, []Item{item}, OperationAdd); err != nil {
		return fmt.Errorf("updating item %s (%s) in list %s failed: %w", itemName, specification, listUUID, err)
	}
	return nil
}

// CompleteItem moves an item to the recently-bought section. An item not on
// the list is still added to the recent items.
func (c *Client) CompleteItem(ctx context.Context, listUUID, itemName, specification, itemUUID string) error {
	item := Item{ItemID: itemName, Spec: specification, UUID: itemUUID}
	if err := c.BatchUpdateList(ctx, listUUID, []Item{item}, OperationComplete); err != nil {
		return fmt.Errorf("completing item %s in list %s failed: %w", itemName, listUUID, err)
	}
	return nil
}

// RemoveItem removes an item from a shopping list. With itemUUID set the
// item is matched by identity and itemName may be any non-empty string.
func (c *Client) RemoveItem(ctx context.Context, listUUID, itemName, itemUUID string) error {
	item := Item{ItemID: itemName, Spec: "", UUID: itemUUID}
	if err := c.BatchUpdateList(ctx, listUUID, []Item{item}, OperationRemove); err != nil {
		return fmt.Errorf("removing item %s from list %s failed: %w", itemName, listUUID, err)
	}
	return nil
}
