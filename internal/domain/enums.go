package domain

// QuestionKind is one of the fixed question types the generator may emit.
type QuestionKind string

const (
	QuestionKindShortAnswer    QuestionKind = "short_answer"
	QuestionKindParagraph      QuestionKind = "paragraph"
	QuestionKindMultipleChoice QuestionKind = "multiple_choice"
	QuestionKindCheckbox       QuestionKind = "checkbox"
	QuestionKindDropdown       QuestionKind = "dropdown"
	QuestionKindScale          QuestionKind = "scale"
)

func (k QuestionKind) String() string { return string(k) }

func (k QuestionKind) IsValid() bool {
	switch k {
	case QuestionKindShortAnswer, QuestionKindParagraph, QuestionKindMultipleChoice,
		QuestionKindCheckbox, QuestionKindDropdown, QuestionKindScale:
		return true
	}
	return false
}

// IsChoice reports whether the kind renders an options list.
func (k QuestionKind) IsChoice() bool {
	switch k {
	case QuestionKindMultipleChoice, QuestionKindCheckbox, QuestionKindDropdown:
		return true
	}
	return false
}

// QuestionKinds returns all supported kinds in a stable order.
func QuestionKinds() []QuestionKind {
	return []QuestionKind{
		QuestionKindShortAnswer,
		QuestionKindParagraph,
		QuestionKindMultipleChoice,
		QuestionKindCheckbox,
		QuestionKindDropdown,
		QuestionKindScale,
	}
}

// FormState tracks whether a FormRecord has been bound to a remote form.
type FormState string

const (
	// FormStatePending marks a placeholder written before the remote create call.
	FormStatePending FormState = "pending"
	// FormStateCommitted marks a record bound to a live remote form.
	FormStateCommitted FormState = "committed"
)

func (s FormState) String() string { return string(s) }

func (s FormState) IsValid() bool {
	switch s {
	case FormStatePending, FormStateCommitted:
		return true
	}
	return false
}
