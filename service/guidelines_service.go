package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Mattiasalardi/VDP/cache"
	"github.com/Mattiasalardi/VDP/models"
	"github.com/Mattiasalardi/VDP/openrouter"
	"github.com/Mattiasalardi/VDP/ratelimit"
	"github.com/Mattiasalardi/VDP/repository"
)

// ProgramStore is the program lookup the guidelines workflow needs
type ProgramStore interface {
	GetByID(ctx context.Context, orgID, id int64) (*models.Program, error)
}

// CalibrationStore is the calibration lookup the guidelines workflow needs
type CalibrationStore interface {
	ListByProgram(ctx context.Context, programID int64) ([]*models.CalibrationAnswer, error)
}

// GuidelineStore is the versioned persistence the guidelines workflow needs
type GuidelineStore interface {
	SaveVersion(ctx context.Context, programID int64, guidelines models.GeneratedGuidelines, promptTemplate string, activate bool) (int, error)
	ActivateVersion(ctx context.Context, programID int64, version int) error
	GetActive(ctx context.Context, programID int64) (*models.GuidelinesVersion, error)
	GetVersion(ctx context.Context, programID int64, version int) (*models.GuidelinesVersion, error)
	ListVersions(ctx context.Context, programID int64) ([]*models.GuidelinesVersionSummary, error)
}

// GuidelinesService orchestrates guideline generation and version management
type GuidelinesService struct {
	programs    ProgramStore
	calibration CalibrationStore
	guidelines  GuidelineStore
	llm         openrouter.Client
	limiter     ratelimit.Limiter
	cache       cache.Cache
	now         func() time.Time
}

// GuidelinesServiceOption is a functional option for GuidelinesService
type GuidelinesServiceOption func(*GuidelinesService)

// GuidelinesWithProgramStore sets the program store
func GuidelinesWithProgramStore(s ProgramStore) GuidelinesServiceOption {
	return func(svc *GuidelinesService) {
		svc.programs = s
	}
}

// GuidelinesWithCalibrationStore sets the calibration store
func GuidelinesWithCalibrationStore(s CalibrationStore) GuidelinesServiceOption {
	return func(svc *GuidelinesService) {
		svc.calibration = s
	}
}

// GuidelinesWithGuidelineStore sets the versioned guideline store
func GuidelinesWithGuidelineStore(s GuidelineStore) GuidelinesServiceOption {
	return func(svc *GuidelinesService) {
		svc.guidelines = s
	}
}

// GuidelinesWithLLMClient sets the generation client
func GuidelinesWithLLMClient(c openrouter.Client) GuidelinesServiceOption {
	return func(svc *GuidelinesService) {
		svc.llm = c
	}
}

// GuidelinesWithLimiter sets the rate limiter
func GuidelinesWithLimiter(l ratelimit.Limiter) GuidelinesServiceOption {
	return func(svc *GuidelinesService) {
		svc.limiter = l
	}
}

// GuidelinesWithCache sets the generation cache
func GuidelinesWithCache(c cache.Cache) GuidelinesServiceOption {
	return func(svc *GuidelinesService) {
		svc.cache = c
	}
}

// NewGuidelinesService creates a new guidelines service
func NewGuidelinesService(opts ...GuidelinesServiceOption) *GuidelinesService {
	svc := &GuidelinesService{now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// GenerateGuidelinesRequest asks for a fresh generation from calibration data
type GenerateGuidelinesRequest struct {
	OrganizationID int64
	ProgramID      int64
	Model          string
}

// GenerateGuidelinesResult is a generation outcome with its metadata
type GenerateGuidelinesResult struct {
	Guidelines       *models.GeneratedGuidelines `json:"guidelines"`
	Cached           bool                        `json:"cached"`
	Model            string                      `json:"model"`
	GeneratedAt      time.Time                   `json:"generated_at"`
	CalibrationCount int                         `json:"calibration_count"`
	RateRemaining    int                         `json:"rate_remaining"`
}

// GenerateGuidelines runs the full generation workflow: ownership check,
// calibration load, cache lookup, rate limit, prompt, LLM call, validation,
// cache fill. Cache hits return before the rate limiter is consulted, so a
// repeated request never burns quota.
func (s *GuidelinesService) GenerateGuidelines(ctx context.Context, req GenerateGuidelinesRequest) (*GenerateGuidelinesResult, error) {
	if _, err := s.ownedProgram(ctx, req.OrganizationID, req.ProgramID); err != nil {
		return nil, err
	}

	answers, err := s.calibration.ListByProgram(ctx, req.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("load calibration answers: %w", err)
	}
	if len(answers) == 0 {
		return nil, ErrNoCalibrationData
	}

	answerMap := make(map[string]models.AnswerValue, len(answers))
	for _, answer := range answers {
		answerMap[answer.QuestionKey] = answer.AnswerValue
	}

	model := req.Model
	if model == "" {
		model = openrouter.DefaultModel
	}

	cacheKey := cache.Key(answerMap, model)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		zap.L().Info("guidelines served from cache", zap.Int64("program_id", req.ProgramID))
		return &GenerateGuidelinesResult{
			Guidelines:       cached,
			Cached:           true,
			Model:            model,
			GeneratedAt:      s.now(),
			CalibrationCount: len(answers),
		}, nil
	}

	limit := s.limiter.Check(ctx, fmt.Sprintf("org:%d:guidelines", req.OrganizationID))
	if !limit.Allowed {
		return nil, &RateLimitError{Remaining: limit.Remaining, ResetAt: limit.ResetAt}
	}

	prompt := openrouter.BuildGuidelinesPrompt(answerMap)
	generated, err := s.llm.Generate(ctx, prompt, model)
	if err != nil {
		return nil, err
	}
	if err := ValidateGuidelines(generated); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cacheKey, generated)

	return &GenerateGuidelinesResult{
		Guidelines:       generated,
		Cached:           false,
		Model:            model,
		GeneratedAt:      s.now(),
		CalibrationCount: len(answers),
		RateRemaining:    limit.Remaining,
	}, nil
}

// SaveGuidelinesRequest persists a generated set as a new version
type SaveGuidelinesRequest struct {
	OrganizationID int64
	ProgramID      int64
	Guidelines     models.GeneratedGuidelines
	Activate       bool
}

// SaveGuidelines validates and persists guidelines as the program's next
// version. Returns the assigned version number.
func (s *GuidelinesService) SaveGuidelines(ctx context.Context, req SaveGuidelinesRequest) (int, error) {
	if _, err := s.ownedProgram(ctx, req.OrganizationID, req.ProgramID); err != nil {
		return 0, err
	}
	if err := ValidateGuidelines(&req.Guidelines); err != nil {
		return 0, err
	}

	prompt := ""
	version, err := s.guidelines.SaveVersion(ctx, req.ProgramID, req.Guidelines, prompt, req.Activate)
	if err != nil {
		return 0, fmt.Errorf("save guidelines: %w", err)
	}

	zap.L().Info("guidelines version saved",
		zap.Int64("program_id", req.ProgramID),
		zap.Int("version", version),
		zap.Bool("active", req.Activate))
	return version, nil
}

// GenerateAndSaveResult is a combined generation plus persistence outcome
type GenerateAndSaveResult struct {
	GenerateGuidelinesResult
	Version  int  `json:"version"`
	IsActive bool `json:"is_active"`
}

// GenerateAndSave runs the generation workflow and persists the result as
// the program's next version in one call
func (s *GuidelinesService) GenerateAndSave(ctx context.Context, req GenerateGuidelinesRequest, activate bool) (*GenerateAndSaveResult, error) {
	generated, err := s.GenerateGuidelines(ctx, req)
	if err != nil {
		return nil, err
	}

	version, err := s.guidelines.SaveVersion(ctx, req.ProgramID, *generated.Guidelines, "", activate)
	if err != nil {
		return nil, fmt.Errorf("save guidelines: %w", err)
	}

	zap.L().Info("guidelines generated and saved",
		zap.Int64("program_id", req.ProgramID),
		zap.Int("version", version),
		zap.Bool("active", activate))
	return &GenerateAndSaveResult{
		GenerateGuidelinesResult: *generated,
		Version:                  version,
		IsActive:                 activate,
	}, nil
}

// GuidelinesStatus summarizes a program's readiness for generation and its
// version state
type GuidelinesStatus struct {
	CalibrationCount int  `json:"calibration_count"`
	CanGenerate      bool `json:"can_generate"`
	TotalVersions    int  `json:"total_versions"`
	HasActive        bool `json:"has_active"`
	ActiveVersion    *int `json:"active_version,omitempty"`
}

// GetStatus reports whether a program can generate guidelines and which
// versions it holds
func (s *GuidelinesService) GetStatus(ctx context.Context, orgID, programID int64) (*GuidelinesStatus, error) {
	if _, err := s.ownedProgram(ctx, orgID, programID); err != nil {
		return nil, err
	}

	answers, err := s.calibration.ListByProgram(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("load calibration answers: %w", err)
	}

	versions, err := s.guidelines.ListVersions(ctx, programID)
	if err != nil {
		return nil, err
	}

	status := &GuidelinesStatus{
		CalibrationCount: len(answers),
		CanGenerate:      len(answers) > 0,
		TotalVersions:    len(versions),
	}
	for _, v := range versions {
		if v.IsActive {
			status.HasActive = true
			active := v.Version
			status.ActiveVersion = &active
			break
		}
	}
	return status, nil
}

// ActivateVersion makes a previously saved version the active one
func (s *GuidelinesService) ActivateVersion(ctx context.Context, orgID, programID int64, version int) error {
	if _, err := s.ownedProgram(ctx, orgID, programID); err != nil {
		return err
	}

	err := s.guidelines.ActivateVersion(ctx, programID, version)
	if errors.Is(err, repository.ErrVersionNotFound) {
		return ErrVersionNotFound
	}
	return err
}

// GetActiveGuidelines returns the active version, or ErrVersionNotFound
func (s *GuidelinesService) GetActiveGuidelines(ctx context.Context, orgID, programID int64) (*models.GuidelinesVersion, error) {
	if _, err := s.ownedProgram(ctx, orgID, programID); err != nil {
		return nil, err
	}

	version, err := s.guidelines.GetActive(ctx, programID)
	if errors.Is(err, repository.ErrVersionNotFound) {
		return nil, ErrVersionNotFound
	}
	return version, err
}

// GetVersion returns one saved version
func (s *GuidelinesService) GetVersion(ctx context.Context, orgID, programID int64, version int) (*models.GuidelinesVersion, error) {
	if _, err := s.ownedProgram(ctx, orgID, programID); err != nil {
		return nil, err
	}

	found, err := s.guidelines.GetVersion(ctx, programID, version)
	if errors.Is(err, repository.ErrVersionNotFound) {
		return nil, ErrVersionNotFound
	}
	return found, err
}

// History lists all saved versions, newest first
func (s *GuidelinesService) History(ctx context.Context, orgID, programID int64) ([]*models.GuidelinesVersionSummary, error) {
	if _, err := s.ownedProgram(ctx, orgID, programID); err != nil {
		return nil, err
	}
	return s.guidelines.ListVersions(ctx, programID)
}

// CacheStats reports generation cache occupancy
func (s *GuidelinesService) CacheStats(ctx context.Context) cache.Stats {
	return s.cache.Stats(ctx)
}

// ClearCache drops all cached generations
func (s *GuidelinesService) ClearCache(ctx context.Context) {
	s.cache.Clear(ctx)
}

func (s *GuidelinesService) ownedProgram(ctx context.Context, orgID, programID int64) (*models.Program, error) {
	program, err := s.programs.GetByID(ctx, orgID, programID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("load program: %w", err)
	}
	return program, nil
}
