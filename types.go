package bring

import (
	"encoding/json"
	"fmt"
)

// ItemOperation selects the mutation a batch change applies to an item.
type ItemOperation string

// Wire values for the batch update operations.
const (
	OperationAdd             ItemOperation = "TO_PURCHASE"
	OperationComplete        ItemOperation = "TO_RECENTLY"
	OperationRemove          ItemOperation = "REMOVE"
	OperationAttributeUpdate ItemOperation = "ATTRIBUTE_UPDATE"
)

// NotificationType selects the push notification sent to other list members.
type NotificationType string

// Notification types understood by the service.
//
//	GoingShopping:  "I'm going shopping! - Last chance for adjustments"
//	ChangedList:    "List changed - Check it out"
//	ShoppingDone:   "Shopping done - you can relax"
//	UrgentMessage:  "Breaking news - Please get {itemName}!"
//	StreamReaction: reaction to an activity timeline entry
const (
	NotificationGoingShopping  NotificationType = "GOING_SHOPPING"
	NotificationChangedList    NotificationType = "CHANGED_LIST"
	NotificationShoppingDone   NotificationType = "SHOPPING_DONE"
	NotificationUrgentMessage  NotificationType = "URGENT_MESSAGE"
	NotificationStreamReaction NotificationType = "LIST_ACTIVITY_STREAM_REACTION"
)

// ReactionType is an emoji reaction to an activity timeline entry.
type ReactionType string

// Reactions accepted by the notification endpoint.
const (
	ReactionMonocle  ReactionType = "MONOCLE"
	ReactionThumbsUp ReactionType = "THUMBS_UP"
	ReactionHeart    ReactionType = "HEART"
	ReactionDrooling ReactionType = "DROOLING"
)

// ActivityType identifies the kind of an activity timeline entry.
type ActivityType string

// Activity entry types.
const (
	ActivityItemsChanged ActivityType = "LIST_ITEMS_CHANGED"
	ActivityItemsAdded   ActivityType = "LIST_ITEMS_ADDED"
	ActivityItemsRemoved ActivityType = "LIST_ITEMS_REMOVED"
)

// TemplateType distinguishes plain templates from recipes.
type TemplateType string

// Template types accepted by the template endpoint.
const (
	TemplateTypeTemplate TemplateType = "TEMPLATE"
	TemplateTypeRecipe   TemplateType = "RECIPE"
)

// Item is a request-side item. ItemID carries the item name in either the
// catalog language or the list's locale; the client translates it before
// sending. Operation overrides the call-level operation of a batch update
// when set.
type Item struct {
	ItemID    string         `json:"itemId"`
	Spec      string         `json:"spec"`
	UUID      string         `json:"uuid"`
	Operation ItemOperation  `json:"operation,omitempty"`
	Attribute *ItemAttribute `json:"attribute,omitempty"`
}

// ItemAttribute is an attribute change sent with OperationAttributeUpdate.
type ItemAttribute struct {
	Type    string          `json:"type"`
	Content map[string]bool `json:"content"`
}

// AuthResponse mirrors the payload returned by POST /v2/bringauth.
type AuthResponse struct {
	UUID          string `json:"uuid"`
	PublicUUID    string `json:"publicUuid"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	PhotoPath     string `json:"photoPath,omitempty"`
	BringListUUID string `json:"bringListUUID,omitempty"`
	AccessToken   string `json:"access_token"`
	RefreshToken  string `json:"refresh_token"`
	TokenType     string `json:"token_type"`
	ExpiresIn     int    `json:"expires_in"`
}

func (r *AuthResponse) validate() error {
	switch {
	case r.UUID == "":
		return missingField("uuid")
	case r.PublicUUID == "":
		return missingField("publicUuid")
	case r.AccessToken == "":
		return missingField("access_token")
	case r.RefreshToken == "":
		return missingField("refresh_token")
	case r.TokenType == "":
		return missingField("token_type")
	case r.ExpiresIn == 0:
		return missingField("expires_in")
	}
	return nil
}

// TokenResponse mirrors the payload returned by POST /v2/bringauth/token.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

func (r *TokenResponse) validate() error {
	switch {
	case r.AccessToken == "":
		return missingField("access_token")
	case r.TokenType == "":
		return missingField("token_type")
	case r.ExpiresIn == 0:
		return missingField("expires_in")
	}
	return nil
}

// List describes a single shopping list.
type List struct {
	ListUUID string `json:"listUuid"`
	Name     string `json:"name"`
	Theme    string `json:"theme"`
}

// ListsResponse mirrors GET /bringusers/{uuid}/lists.
type ListsResponse struct {
	Lists []List `json:"lists"`
}

func (r *ListsResponse) validate() error {
	for _, list := range r.Lists {
		if list.ListUUID == "" {
			return missingField("listUuid")
		}
	}
	return nil
}

// AttributeContent carries the flags of a purchase attribute.
type AttributeContent struct {
	Urgent     bool `json:"urgent"`
	Convenient bool `json:"convenient"`
	Discounted bool `json:"discounted"`
}

// Attribute is a single attribute of a purchase item.
type Attribute struct {
	Type    string           `json:"type"`
	Content AttributeContent `json:"content"`
}

// Purchase is a response-side item, either still to buy or recently bought.
type Purchase struct {
	UUID          string      `json:"uuid"`
	ItemID        string      `json:"itemId"`
	Specification string      `json:"specification"`
	Attributes    []Attribute `json:"attributes,omitempty"`
}

// ListItems splits a list's items into open purchases and recent ones.
type ListItems struct {
	Purchase []Purchase `json:"purchase"`
	Recently []Purchase `json:"recently"`
}

// ItemsResponse mirrors GET /v2/bringlists/{listUuid}.
type ItemsResponse struct {
	UUID   string    `json:"uuid"`
	Status string    `json:"status"`
	Items  ListItems `json:"items"`
}

func (r *ItemsResponse) validate() error {
	switch {
	case r.UUID == "":
		return missingField("uuid")
	case r.Status == "":
		return missingField("status")
	}
	return nil
}

// ListItemDetail describes a customized item on a list: its user-picked icon,
// section, assignee or uploaded image. An item can appear here without being
// currently marked as "to buy".
type ListItemDetail struct {
	UUID           string `json:"uuid"`
	ItemID         string `json:"itemId"`
	ListUUID       string `json:"listUuid"`
	UserIconItemID string `json:"userIconItemId"`
	UserSectionID  string `json:"userSectionId"`
	AssignedTo     string `json:"assignedTo"`
	ImageURL       string `json:"imageUrl"`
}

// UserSetting is a single key/value user or list setting.
type UserSetting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UserListSetting groups the settings of one list.
type UserListSetting struct {
	ListUUID     string        `json:"listUuid"`
	UserSettings []UserSetting `json:"usersettings"`
}

// UserSettingsResponse mirrors GET /bringusersettings/{uuid}.
type UserSettingsResponse struct {
	UserSettings     []UserSetting     `json:"usersettings"`
	UserListSettings []UserListSetting `json:"userlistsettings"`
}

func (r *UserSettingsResponse) validate() error {
	for _, setting := range r.UserListSettings {
		if setting.ListUUID == "" {
			return missingField("listUuid")
		}
	}
	return nil
}

// UserLocale is the account's raw language/country pair as reported by the
// user's device. See MapUserLanguageToLocale for how it maps to a catalog
// locale.
type UserLocale struct {
	Language string `json:"language"`
	Country  string `json:"country"`
}

// PremiumConfiguration describes the account's premium entitlements.
type PremiumConfiguration struct {
	HasPremium              bool `json:"hasPremium"`
	HideSponsoredProducts   bool `json:"hideSponsoredProducts"`
	HideSponsoredTemplates  bool `json:"hideSponsoredTemplates"`
	HideSponsoredPosts      bool `json:"hideSponsoredPosts"`
	HideSponsoredCategories bool `json:"hideSponsoredCategories"`
	HideOffersOnMain        bool `json:"hideOffersOnMain"`
}

// UserAccount mirrors GET /v2/bringusers/{uuid}.
type UserAccount struct {
	Email                string               `json:"email"`
	EmailVerified        bool                 `json:"emailVerified"`
	Name                 string               `json:"name,omitempty"`
	PhotoPath            string               `json:"photoPath,omitempty"`
	PremiumConfiguration PremiumConfiguration `json:"premiumConfiguration"`
	PublicUserUUID       string               `json:"publicUserUuid"`
	UserLocale           UserLocale           `json:"userLocale"`
	UserUUID             string               `json:"userUuid"`
}

func (r *UserAccount) validate() error {
	switch {
	case r.UserUUID == "":
		return missingField("userUuid")
	case r.UserLocale.Language == "":
		return missingField("userLocale.language")
	case r.UserLocale.Country == "":
		return missingField("userLocale.country")
	}
	return nil
}

// ListUser describes a member of a shared list.
type ListUser struct {
	PublicUUID    string `json:"publicUuid"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	PhotoPath     string `json:"photoPath,omitempty"`
	PushEnabled   bool   `json:"pushEnabled,omitempty"`
	PremiumUser   bool   `json:"premiumUser,omitempty"`
	EmailVerified bool   `json:"emailVerified,omitempty"`
}

// UsersResponse mirrors GET /v2/bringlists/{listUuid}/users.
type UsersResponse struct {
	Users []ListUser `json:"users"`
}

func (r *UsersResponse) validate() error {
	for _, user := range r.Users {
		if user.PublicUUID == "" {
			return missingField("publicUuid")
		}
	}
	return nil
}

// ActivityContent is the payload of one activity timeline entry.
type ActivityContent struct {
	UUID           string     `json:"uuid"`
	SessionDate    string     `json:"sessionDate"`
	PublicUserUUID string     `json:"publicUserUuid"`
	Items          []Purchase `json:"items,omitempty"`
	Purchase       []Purchase `json:"purchase,omitempty"`
	Recently       []Purchase `json:"recently,omitempty"`
}

// Activity is a timeline entry describing prior item changes on a list. It
// can be referenced when sending a reaction notification.
type Activity struct {
	Type    ActivityType    `json:"type"`
	Content ActivityContent `json:"content"`
}

// ActivityResponse mirrors GET /v2/bringlists/{listUuid}/activity.
type ActivityResponse struct {
	Timeline    []Activity `json:"timeline"`
	Timestamp   string     `json:"timestamp"`
	TotalEvents int        `json:"totalEvents"`
}

func (r *ActivityResponse) validate() error {
	for _, entry := range r.Timeline {
		if entry.Content.UUID == "" {
			return missingField("timeline.content.uuid")
		}
	}
	return nil
}

// TemplateItem is one ingredient or article of a template.
type TemplateItem struct {
	ItemID  string `json:"itemId"`
	Spec    string `json:"spec,omitempty"`
	AltIcon string `json:"altIcon,omitempty"`
}

// Template describes a template or recipe.
type Template struct {
	UUID     string         `json:"uuid,omitempty"`
	Name     string         `json:"name"`
	Author   string         `json:"author,omitempty"`
	ImageURL string         `json:"imageUrl,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Items    []TemplateItem `json:"items"`
}

func (r *Template) validate() error {
	if r.Name == "" {
		return missingField("name")
	}
	return nil
}

// InspirationEntry is one entry of the inspiration stream.
type InspirationEntry struct {
	Type    string   `json:"type"`
	Content Template `json:"content"`
}

// InspirationsResponse mirrors GET /v2/bringusers/{uuid}/inspirations.
type InspirationsResponse struct {
	Entries []InspirationEntry `json:"entries"`
}

func (r *InspirationsResponse) validate() error { return nil }

// InspirationFilter is one selectable category of the inspiration stream.
type InspirationFilter struct {
	Tag      string `json:"tag"`
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// InspirationFiltersResponse mirrors GET
// /v2/bringusers/{uuid}/inspirationstreamfilters.
type InspirationFiltersResponse struct {
	Filters []InspirationFilter `json:"filters"`
}

func (r *InspirationFiltersResponse) validate() error { return nil }

// errorResponse is the structured error body attached to 401 responses.
type errorResponse struct {
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        int    `json:"errorcode"`
}

type validator interface {
	validate() error
}

// decodeStrict unmarshals text into dest and fails closed: both malformed
// JSON and a missing required field surface as ErrParse.
func decodeStrict(text string, dest validator) error {
	if err := json.Unmarshal([]byte(text), dest); err != nil {
		return fmt.Errorf("decode response: %v: %w", err, ErrParse)
	}
	if err := dest.validate(); err != nil {
		return fmt.Errorf("decode response: %v: %w", err, ErrParse)
	}
	return nil
}

func missingField(name string) error {
	return fmt.Errorf("missing required field %q", name)
}
