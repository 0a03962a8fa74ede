// Package prompts holds the instruction and output specifications for the
// model-backed workflow stages, along with composition helpers that embed
// document state context into the final prompt text.
package prompts

import (
	"encoding/json"
	"errors"
	"slices"
)

// ErrInvalidStage indicates an unrecognized prompt stage value.
var ErrInvalidStage = errors.New("invalid prompt stage")

// Stage identifies a model-backed workflow stage with its own prompt.
type Stage string

// Valid prompt stages.
const (
	StageVisionOCR   Stage = "vision_ocr"
	StageClassify    Stage = "classify"
	StageResearch    Stage = "research"
	StageLegalExpert Stage = "legal_expert"
	StageStructure   Stage = "structure"
	StageGenerate    Stage = "generate"
)

var stages = []Stage{
	StageVisionOCR,
	StageClassify,
	StageResearch,
	StageLegalExpert,
	StageStructure,
	StageGenerate,
}

// Stages returns the list of valid prompt stages.
func Stages() []Stage {
	return stages
}

// ParseStage validates a string as a known prompt stage.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}

// UnmarshalJSON validates that the decoded string is a known stage value.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Stage(raw)
	if !slices.Contains(stages, v) {
		return ErrInvalidStage
	}
	*s = v
	return nil
}
