package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"alfredoptarigan/hirematch/internal/models"
	"alfredoptarigan/hirematch/internal/repositories"
)

// ShortlistService is the matching pipeline coordinator. One Run call
// processes its candidates sequentially and synchronously; latency grows
// linearly with candidate count and is dominated by completion-API round
// trips. Runs in different requests share no state.
type ShortlistService interface {
	ProcessCVUpload(ctx context.Context, ownerID string, data []byte, filename, storedFilename string) (*models.CV, error)
	ProcessJobDescription(ctx context.Context, ownerID string, req *models.CreateJobRequest) (*models.JobDescription, error)
	UpdateJobDescription(ctx context.Context, ownerID string, jobID uuid.UUID, req *models.UpdateJobRequest) (*models.JobDescription, error)
	Run(ctx context.Context, ownerID string, jobID uuid.UUID, cvIDs []uuid.UUID, threshold float64) (*models.ShortlistReport, error)
	Report(ctx context.Context, ownerID string, shortlistID uuid.UUID) (*models.ShortlistReport, error)
	DeleteCV(ctx context.Context, ownerID string, cvID uuid.UUID) (*models.CV, error)
}

type shortlistService struct {
	jobRepo       repositories.JobRepository
	cvRepo        repositories.CVRepository
	shortlistRepo repositories.ShortlistRepository
	provider      AIProvider
	analyzer      MatchAnalyzer
	extractor     TextExtractor
	index         MatchIndex
}

func NewShortlistService(
	jobRepo repositories.JobRepository,
	cvRepo repositories.CVRepository,
	shortlistRepo repositories.ShortlistRepository,
	provider AIProvider,
	analyzer MatchAnalyzer,
	extractor TextExtractor,
	index MatchIndex,
) ShortlistService {
	return &shortlistService{
		jobRepo:       jobRepo,
		cvRepo:        cvRepo,
		shortlistRepo: shortlistRepo,
		provider:      provider,
		analyzer:      analyzer,
		extractor:     extractor,
		index:         index,
	}
}

// ProcessCVUpload extracts text from the uploaded document, computes its
// embedding once, and persists the CV. The embedding is never recomputed
// afterwards; every later run reuses it as stored.
func (s *shortlistService) ProcessCVUpload(ctx context.Context, ownerID string, data []byte, filename, storedFilename string) (*models.CV, error) {
	extracted, err := s.extractor.Extract(data, filename)
	if err != nil {
		return nil, err
	}

	embedding, err := s.provider.GenerateEmbedding(ctx, extracted.Text)
	if err != nil {
		return nil, err
	}

	cv := &models.CV{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Filename:       filename,
		StoredFilename: storedFilename,
		CandidateName:  extracted.CandidateName,
		ContactInfo:    extracted.ContactInfo,
		Content:        extracted.Text,
		Embedding:      embedding,
	}

	if err := s.cvRepo.Create(cv); err != nil {
		return nil, err
	}

	if s.index != nil {
		if err := s.index.UpsertCV(ctx, cv.ID.String(), ownerID, embedding); err != nil {
			log.Printf("⚠️  Failed to index CV %s: %v\n", cv.ID, err)
		}
	}

	return cv, nil
}

// ProcessJobDescription persists a job description with AI-extracted key
// requirements. Requirements extraction degrades to a sentinel entry when
// the provider is down; the job is created either way.
func (s *shortlistService) ProcessJobDescription(ctx context.Context, ownerID string, req *models.CreateJobRequest) (*models.JobDescription, error) {
	requirements := s.analyzer.ExtractRequirements(ctx, req.Content)

	job := &models.JobDescription{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Title:           req.Title,
		Summary:         req.Summary,
		KeyRequirements: requirements,
		Content:         req.Content,
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, err
	}

	return job, nil
}

// UpdateJobDescription replaces job fields. A content replacement
// re-extracts the key requirements since they describe the content.
func (s *shortlistService) UpdateJobDescription(ctx context.Context, ownerID string, jobID uuid.UUID, req *models.UpdateJobRequest) (*models.JobDescription, error) {
	job, err := s.jobRepo.FindByIDAndOwner(jobID, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Summary != nil {
		job.Summary = *req.Summary
	}
	if req.Content != nil {
		job.Content = *req.Content
		job.KeyRequirements = s.analyzer.ExtractRequirements(ctx, job.Content)
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, err
	}

	return job, nil
}

// Run executes one shortlisting run. Either every candidate resolves to a
// CV owned by ownerID and the whole run commits, or nothing is persisted.
func (s *shortlistService) Run(ctx context.Context, ownerID string, jobID uuid.UUID, cvIDs []uuid.UUID, threshold float64) (*models.ShortlistReport, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: threshold must be within [0,1], got %v", models.ErrValidation, threshold)
	}
	if len(cvIDs) == 0 {
		return nil, fmt.Errorf("%w: cv_ids must not be empty", models.ErrNoCandidates)
	}

	job, err := s.jobRepo.FindByIDAndOwner(jobID, ownerID)
	if err != nil {
		return nil, err
	}

	cvs, err := s.cvRepo.FindByIDsAndOwner(cvIDs, ownerID)
	if err != nil {
		return nil, err
	}

	cvByID := make(map[uuid.UUID]*models.CV, len(cvs))
	for i := range cvs {
		cvByID[cvs[i].ID] = &cvs[i]
	}

	var missing []string
	for _, id := range cvIDs {
		if _, ok := cvByID[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("cvs not found or not accessible: %v: %w", missing, models.ErrNotFound)
	}

	// The job embedding is computed once per run, not cached across runs,
	// since job content can change between runs.
	jobEmbedding, err := s.provider.GenerateEmbedding(ctx, job.Content)
	if err != nil {
		return nil, err
	}

	shortlist := &models.Shortlist{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		JobDescriptionID: job.ID,
		Threshold:        threshold,
	}

	results := make([]models.ShortlistResult, 0, len(cvIDs))
	for i, id := range cvIDs {
		cv := cvByID[id]

		score := Cosine(cv.Embedding, jobEmbedding)
		assessment := s.analyzer.Analyze(ctx, cv.Content, job.Content, score)

		results = append(results, models.ShortlistResult{
			ID:             uuid.New(),
			ShortlistID:    shortlist.ID,
			CVID:           cv.ID,
			Position:       i,
			Score:          score,
			MatchSummary:   assessment.MatchSummary,
			Strengths:      assessment.Strengths,
			Gaps:           assessment.Gaps,
			Reasoning:      assessment.Reasoning,
			Recommendation: assessment.Recommendation,
		})
	}

	if err := s.shortlistRepo.CreateRun(shortlist, results); err != nil {
		return nil, err
	}

	return buildReport(job, threshold, results), nil
}

// Report rebuilds the partitioned report for a persisted run.
func (s *shortlistService) Report(ctx context.Context, ownerID string, shortlistID uuid.UUID) (*models.ShortlistReport, error) {
	shortlist, err := s.shortlistRepo.FindByIDAndOwner(shortlistID, ownerID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindByIDAndOwner(shortlist.JobDescriptionID, ownerID)
	if err != nil {
		return nil, err
	}

	return buildReport(job, shortlist.Threshold, shortlist.Results), nil
}

// DeleteCV removes the CV row and its mirror in the match index, returning
// the deleted record so the handler can clean up the stored file.
func (s *shortlistService) DeleteCV(ctx context.Context, ownerID string, cvID uuid.UUID) (*models.CV, error) {
	cv, err := s.cvRepo.FindByIDAndOwner(cvID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.cvRepo.Delete(cvID, ownerID); err != nil {
		return nil, err
	}

	if s.index != nil {
		if err := s.index.DeleteCV(ctx, cv.ID.String()); err != nil {
			log.Printf("⚠️  Failed to remove CV %s from index: %v\n", cv.ID, err)
		}
	}

	return cv, nil
}

// buildReport partitions results against the threshold. The comparison is
// inclusive: a score exactly at the threshold shortlists. Order within
// each partition follows the candidate input order.
func buildReport(job *models.JobDescription, threshold float64, results []models.ShortlistResult) *models.ShortlistReport {
	shortlisted := make([]models.ShortlistResult, 0, len(results))
	rejected := make([]models.ShortlistResult, 0)

	for _, result := range results {
		if result.Score >= threshold {
			shortlisted = append(shortlisted, result)
		} else {
			rejected = append(rejected, result)
		}
	}

	return &models.ShortlistReport{
		JobDescription:   job,
		Shortlisted:      shortlisted,
		Rejected:         rejected,
		Threshold:        threshold,
		TotalCandidates:  len(results),
		ShortlistedCount: len(shortlisted),
		RejectedCount:    len(rejected),
	}
}
