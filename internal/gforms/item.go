package gforms

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ItemKind classifies an item payload.
type ItemKind string

const (
	ItemKindQuestion ItemKind = "question"
	ItemKindText     ItemKind = "text"
	ItemKindImage    ItemKind = "image"
	// ItemKindUnknown is any payload shape not listed above. It is kept raw.
	ItemKindUnknown ItemKind = "unknown"
)

const (
	fieldQuestionItem = "questionItem"
	fieldTextItem     = "textItem"
	fieldImageItem    = "imageItem"
)

// ItemPayload is the provider payload of one item: the value of its single
// "<kind>Item" field. Raw holds the payload bytes exactly as received or encoded.
type ItemPayload struct {
	Kind  ItemKind
	Field string
	Raw   json.RawMessage
}

// IsZero reports whether the payload is absent.
func (p ItemPayload) IsZero() bool {
	return p.Field == "" && len(p.Raw) == 0
}

// Question decodes a question payload.
func (p ItemPayload) Question() (*QuestionItem, error) {
	if p.Kind != ItemKindQuestion {
		return nil, fmt.Errorf("gforms: payload is %s, not question", p.Kind)
	}
	var q QuestionItem
	if err := json.Unmarshal(p.Raw, &q); err != nil {
		return nil, fmt.Errorf("gforms: decode question payload: %w", err)
	}
	return &q, nil
}

// NewQuestionPayload encodes q as a question payload.
func NewQuestionPayload(q QuestionItem) ItemPayload {
	raw, _ := json.Marshal(q)
	return ItemPayload{Kind: ItemKindQuestion, Field: fieldQuestionItem, Raw: raw}
}

func kindOfField(field string) ItemKind {
	switch field {
	case fieldQuestionItem:
		return ItemKindQuestion
	case fieldTextItem:
		return ItemKindText
	case fieldImageItem:
		return ItemKindImage
	}
	return ItemKindUnknown
}

// Item is a form item. Title and Description are common to every item kind;
// the kind-specific part lives in Payload.
type Item struct {
	ItemID      string
	Title       string
	Description string
	Payload     ItemPayload
}

// MarshalJSON writes the common fields plus the payload under its own field name.
func (it Item) MarshalJSON() ([]byte, error) {
	m := make(map[string]json.RawMessage, 4)
	put := func(key, value string) error {
		if value == "" {
			return nil
		}
		b, err := json.Marshal(value)
		if err != nil {
			return err
		}
		m[key] = b
		return nil
	}
	if err := put("itemId", it.ItemID); err != nil {
		return nil, err
	}
	if err := put("title", it.Title); err != nil {
		return nil, err
	}
	if err := put("description", it.Description); err != nil {
		return nil, err
	}
	if !it.Payload.IsZero() {
		raw := it.Payload.Raw
		if len(raw) == 0 {
			raw = json.RawMessage("{}")
		}
		m[it.Payload.Field] = raw
	}
	return json.Marshal(m)
}

// UnmarshalJSON classifies the item's payload field. Unrecognized "*Item"
// fields are preserved as ItemKindUnknown.
func (it *Item) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	*it = Item{}
	for key, raw := range m {
		switch key {
		case "itemId":
			if err := json.Unmarshal(raw, &it.ItemID); err != nil {
				return fmt.Errorf("gforms: itemId: %w", err)
			}
		case "title":
			if err := json.Unmarshal(raw, &it.Title); err != nil {
				return fmt.Errorf("gforms: title: %w", err)
			}
		case "description":
			if err := json.Unmarshal(raw, &it.Description); err != nil {
				return fmt.Errorf("gforms: description: %w", err)
			}
		default:
			if !strings.HasSuffix(key, "Item") {
				continue
			}
			if !it.Payload.IsZero() {
				return fmt.Errorf("gforms: item has both %s and %s", it.Payload.Field, key)
			}
			it.Payload = ItemPayload{Kind: kindOfField(key), Field: key, Raw: append(json.RawMessage(nil), raw...)}
		}
	}
	return nil
}

// CopyForCreate returns the item without its provider-assigned id so it can be
// submitted to another form. The payload bytes are left untouched.
func (it Item) CopyForCreate() Item {
	return Item{
		Title:       it.Title,
		Description: it.Description,
		Payload:     it.Payload,
	}
}
