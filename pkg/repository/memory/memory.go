package memory

import (
	"github.com/rpad300/godmode-sub015/pkg/domain/interfaces"
)

// Memory is an in-memory repository for development and tests
type Memory struct {
	extraction  *extractionRepository
	evidence    *evidenceRepository
	profile     *profileRepository
	analysisRun *analysisRunRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		extraction:  newExtractionRepository(),
		evidence:    newEvidenceRepository(),
		profile:     newProfileRepository(),
		analysisRun: newAnalysisRunRepository(),
	}
}

func (m *Memory) Extraction() interfaces.ExtractionRepository {
	return m.extraction
}

func (m *Memory) Evidence() interfaces.EvidenceRepository {
	return m.evidence
}

func (m *Memory) Profile() interfaces.ProfileRepository {
	return m.profile
}

func (m *Memory) AnalysisRun() interfaces.AnalysisRunRepository {
	return m.analysisRun
}

func (m *Memory) Close() error {
	return nil
}
