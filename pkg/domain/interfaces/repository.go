package interfaces

// Repository aggregates all persistence interfaces
type Repository interface {
	Extraction() ExtractionRepository
	Evidence() EvidenceRepository
	Profile() ProfileRepository
	AnalysisRun() AnalysisRunRepository
	Close() error
}
