package usecase

import (
	"github.com/rpad300/godmode-sub015/pkg/domain/interfaces"
	"github.com/rpad300/godmode-sub015/pkg/service/analysis"
	"github.com/rpad300/godmode-sub015/pkg/service/notify"
)

type UseCases struct {
	repo            interfaces.Repository
	analysisService analysis.Service
	notifyService   notify.Service
	Extraction      *ExtractionUseCase
	Analysis        *AnalysisUseCase
}

type Option func(*UseCases)

func WithAnalysisService(svc analysis.Service) Option {
	return func(uc *UseCases) {
		uc.analysisService = svc
	}
}

func WithNotifyService(svc notify.Service) Option {
	return func(uc *UseCases) {
		uc.notifyService = svc
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Extraction = NewExtractionUseCase(repo)
	uc.Analysis = NewAnalysisUseCase(repo, uc.Extraction, uc.analysisService, uc.notifyService)

	return uc
}
