package pipeline

import (
	"context"
	"log/slog"
)

// Stage names in execution order.
const (
	StageOCR              = "ocr"
	StageClassify         = "classify"
	StageDataMapping      = "data_mapping"
	StageResearch         = "research"
	StageLegalExpert      = "legal_expert"
	StageCyberSecurity    = "cyber_security"
	StageStructure        = "structure"
	StageGenerate         = "generate"
	StageQuality          = "quality"
	StageCompliance       = "compliance"
	StageHumanSupervision = "human_supervision"
)

// Stage is one unit of the workflow. Run mutates the state in place and
// returns an error only to the stage guard; the guard converts it to a
// contained failure so nothing propagates past the stage boundary.
//
// Status is the status recorded after a successful run. Stages that manage
// their own status (human supervision) leave it empty.
type Stage struct {
	Name   string
	Status Status
	Run    func(ctx context.Context, s *DocumentState) error
}

// execute runs the stage under the failure guard. Exactly one processing
// log entry is appended per invocation.
func (st Stage) execute(ctx context.Context, s *DocumentState, logger *slog.Logger) {
	s.CurrentStep = st.Name

	if err := st.Run(ctx, s); err != nil {
		s.RecordFailure(st.Name, err)
		logger.Error("stage failed", "stage", st.Name, "document", s.ID, "error", err)
		return
	}

	if st.Status != "" && s.Status != st.Status {
		if err := s.Transition(st.Status); err != nil {
			s.RecordFailure(st.Name, err)
			logger.Error("stage transition failed", "stage", st.Name, "document", s.ID, "error", err)
			return
		}
	}

	s.AppendLog(st.Name, "completed")
	logger.Info("stage complete", "stage", st.Name, "document", s.ID, "status", s.Status)
}
