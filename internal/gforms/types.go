// Package gforms models the subset of the Google Forms v1 wire format the
// pipeline reads and writes, plus the question codec that produces it.
package gforms

// Form is the provider's representation returned by forms.create and forms.get.
type Form struct {
	FormID       string `json:"formId"`
	Info         Info   `json:"info"`
	Items        []Item `json:"items,omitempty"`
	ResponderURI string `json:"responderUri,omitempty"`
	RevisionID   string `json:"revisionId,omitempty"`
}

// Info holds the form's title and description.
type Info struct {
	Title         string `json:"title,omitempty"`
	DocumentTitle string `json:"documentTitle,omitempty"`
	Description   string `json:"description,omitempty"`
}

// BatchUpdate is the body of forms.batchUpdate. The provider applies all
// requests as one unit.
type BatchUpdate struct {
	Requests []Request `json:"requests"`
}

// Request is one structural operation. Exactly one field is set.
type Request struct {
	UpdateFormInfo *UpdateFormInfo `json:"updateFormInfo,omitempty"`
	CreateItem     *CreateItem     `json:"createItem,omitempty"`
}

// UpdateFormInfo sets form info fields named by UpdateMask. It occupies no
// position in the item list.
type UpdateFormInfo struct {
	Info       Info   `json:"info"`
	UpdateMask string `json:"updateMask"`
}

// CreateItem inserts Item at Location.Index.
type CreateItem struct {
	Item     Item     `json:"item"`
	Location Location `json:"location"`
}

// Location is the zero-based position of a created item.
type Location struct {
	Index int `json:"index"`
}

// QuestionItem wraps a single question.
type QuestionItem struct {
	Question Question `json:"question"`
}

// Question is the provider question body. One of the typed fields is set.
type Question struct {
	QuestionID     string          `json:"questionId,omitempty"`
	Required       bool            `json:"required"`
	TextQuestion   *TextQuestion   `json:"textQuestion,omitempty"`
	ChoiceQuestion *ChoiceQuestion `json:"choiceQuestion,omitempty"`
	ScaleQuestion  *ScaleQuestion  `json:"scaleQuestion,omitempty"`
}

// TextQuestion is a free-text answer, single or multi line.
type TextQuestion struct {
	Paragraph bool `json:"paragraph"`
}

// ChoiceType selects how a choice question renders.
type ChoiceType string

const (
	ChoiceRadio    ChoiceType = "RADIO"
	ChoiceCheckbox ChoiceType = "CHECKBOX"
	ChoiceDropDown ChoiceType = "DROP_DOWN"
)

// ChoiceQuestion is a single or multi select over Options.
type ChoiceQuestion struct {
	Type    ChoiceType `json:"type"`
	Options []Option   `json:"options"`
}

// Option is one choice value.
type Option struct {
	Value string `json:"value"`
}

// ScaleQuestion is a numeric linear scale.
type ScaleQuestion struct {
	Low       int    `json:"low"`
	High      int    `json:"high"`
	LowLabel  string `json:"lowLabel,omitempty"`
	HighLabel string `json:"highLabel,omitempty"`
}

// PublishSettings is the body of forms.setPublishSettings.
type PublishSettings struct {
	PublishSettings PublishState `json:"publishSettings"`
	UpdateMask      string       `json:"updateMask"`
}

// PublishState wraps the publish flags.
type PublishState struct {
	PublishState Publish `json:"publishState"`
}

// Publish controls whether the form is published and accepting responses.
type Publish struct {
	IsPublished          bool `json:"isPublished"`
	IsAcceptingResponses bool `json:"isAcceptingResponses"`
}

// ClosedPublishSettings stops a form from accepting responses while leaving it published.
func ClosedPublishSettings() PublishSettings {
	return PublishSettings{
		PublishSettings: PublishState{PublishState: Publish{IsPublished: true, IsAcceptingResponses: false}},
		UpdateMask:      "publishState.isAcceptingResponses",
	}
}

// ResponseList is one page of forms.responses.list.
type ResponseList struct {
	Responses []struct {
		ResponseID string `json:"responseId"`
	} `json:"responses"`
	NextPageToken string `json:"nextPageToken"`
}
