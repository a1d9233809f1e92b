// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wizard

import (
	"fmt"

	"github.com/taibuivan/shortwave/internal/core/film"
)

// Step identifies one screen of the upload wizard. The zero value is not a
// valid step.
type Step int

const (
	StepVideoURL Step = iota + 1
	StepTitle
	StepLogline
	StepTags
)

// FirstStep and LastStep bound the wizard.
const (
	FirstStep = StepVideoURL
	LastStep  = StepTags
)

// Steps lists every step in order.
var Steps = []Step{StepVideoURL, StepTitle, StepLogline, StepTags}

func (s Step) String() string {
	switch s {
	case StepVideoURL:
		return "Video link"
	case StepTitle:
		return "Title"
	case StepLogline:
		return "Logline"
	case StepTags:
		return "Tags"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Field is the draft field the step edits.
func (s Step) Field() string {
	switch s {
	case StepVideoURL:
		return film.FieldYoutubeURL
	case StepTitle:
		return film.FieldTitle
	case StepLogline:
		return film.FieldLogline
	case StepTags:
		return film.FieldTags
	}
	return ""
}

// Required reports whether the step gates Advance on a non-blank value.
func (s Step) Required() bool {
	return s >= StepVideoURL && s < StepTags
}

// Number is the 1-based position shown to the user.
func (s Step) Number() int { return int(s) }

func (s Step) valid() bool {
	return s >= FirstStep && s <= LastStep
}
