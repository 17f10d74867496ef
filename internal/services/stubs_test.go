package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/hirematch/internal/models"
)

// stubProvider scripts the AI provider for tests. Nil functions return
// benign defaults.
type stubProvider struct {
	embedFn    func(text string) ([]float32, error)
	textFn     func(systemPrompt, userPrompt string) (string, error)
	embedCalls int
	textCalls  int
	lastPrompt string
}

func (s *stubProvider) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	s.embedCalls++
	if s.embedFn != nil {
		return s.embedFn(text)
	}
	return []float32{1, 0, 0}, nil
}

func (s *stubProvider) GenerateText(_ context.Context, systemPrompt, userPrompt string, _ float32, _ int32) (string, error) {
	s.textCalls++
	s.lastPrompt = userPrompt
	if s.textFn != nil {
		return s.textFn(systemPrompt, userPrompt)
	}
	return `{"match_summary":"ok","strengths":[],"gaps":[],"reasoning":"ok","recommendation":"Consider"}`, nil
}

type fakeJobRepo struct {
	jobs map[uuid.UUID]*models.JobDescription
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]*models.JobDescription)}
}

func (f *fakeJobRepo) Create(job *models.JobDescription) error {
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) FindByIDAndOwner(id uuid.UUID, ownerID string) (*models.JobDescription, error) {
	job, ok := f.jobs[id]
	if !ok || job.OwnerID != ownerID {
		return nil, models.ErrNotFound
	}
	return job, nil
}

func (f *fakeJobRepo) FindAllByOwner(ownerID string) ([]models.JobDescription, error) {
	var out []models.JobDescription
	for _, job := range f.jobs {
		if job.OwnerID == ownerID {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) Update(job *models.JobDescription) error {
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) Delete(id uuid.UUID, ownerID string) error {
	if _, err := f.FindByIDAndOwner(id, ownerID); err != nil {
		return err
	}
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobRepo) CountByOwner(ownerID string) (int64, error) {
	found, _ := f.FindAllByOwner(ownerID)
	return int64(len(found)), nil
}

func (f *fakeJobRepo) Count() (int64, error) {
	return int64(len(f.jobs)), nil
}

type fakeCVRepo struct {
	cvs map[uuid.UUID]*models.CV
}

func newFakeCVRepo() *fakeCVRepo {
	return &fakeCVRepo{cvs: make(map[uuid.UUID]*models.CV)}
}

func (f *fakeCVRepo) Create(cv *models.CV) error {
	f.cvs[cv.ID] = cv
	return nil
}

func (f *fakeCVRepo) FindByIDAndOwner(id uuid.UUID, ownerID string) (*models.CV, error) {
	cv, ok := f.cvs[id]
	if !ok || cv.OwnerID != ownerID {
		return nil, models.ErrNotFound
	}
	return cv, nil
}

func (f *fakeCVRepo) FindByIDsAndOwner(ids []uuid.UUID, ownerID string) ([]models.CV, error) {
	var out []models.CV
	for _, id := range ids {
		if cv, ok := f.cvs[id]; ok && cv.OwnerID == ownerID {
			out = append(out, *cv)
		}
	}
	return out, nil
}

func (f *fakeCVRepo) FindAllByOwner(ownerID string) ([]models.CV, error) {
	var out []models.CV
	for _, cv := range f.cvs {
		if cv.OwnerID == ownerID {
			out = append(out, *cv)
		}
	}
	return out, nil
}

func (f *fakeCVRepo) Delete(id uuid.UUID, ownerID string) error {
	if _, err := f.FindByIDAndOwner(id, ownerID); err != nil {
		return err
	}
	delete(f.cvs, id)
	return nil
}

func (f *fakeCVRepo) CountByOwner(ownerID string) (int64, error) {
	found, _ := f.FindAllByOwner(ownerID)
	return int64(len(found)), nil
}

func (f *fakeCVRepo) Count() (int64, error) {
	return int64(len(f.cvs)), nil
}

type fakeShortlistRepo struct {
	shortlists map[uuid.UUID]*models.Shortlist
	runCalls   int
}

func newFakeShortlistRepo() *fakeShortlistRepo {
	return &fakeShortlistRepo{shortlists: make(map[uuid.UUID]*models.Shortlist)}
}

func (f *fakeShortlistRepo) CreateRun(shortlist *models.Shortlist, results []models.ShortlistResult) error {
	f.runCalls++
	stored := *shortlist
	stored.Results = append([]models.ShortlistResult(nil), results...)
	f.shortlists[shortlist.ID] = &stored
	return nil
}

func (f *fakeShortlistRepo) FindByIDAndOwner(id uuid.UUID, ownerID string) (*models.Shortlist, error) {
	shortlist, ok := f.shortlists[id]
	if !ok || shortlist.OwnerID != ownerID {
		return nil, models.ErrNotFound
	}
	sort.Slice(shortlist.Results, func(i, j int) bool {
		return shortlist.Results[i].Position < shortlist.Results[j].Position
	})
	return shortlist, nil
}

func (f *fakeShortlistRepo) FindAllByOwner(ownerID string) ([]models.Shortlist, error) {
	var out []models.Shortlist
	for _, shortlist := range f.shortlists {
		if shortlist.OwnerID == ownerID {
			out = append(out, *shortlist)
		}
	}
	return out, nil
}

func (f *fakeShortlistRepo) Delete(id uuid.UUID, ownerID string) error {
	if _, err := f.FindByIDAndOwner(id, ownerID); err != nil {
		return err
	}
	delete(f.shortlists, id)
	return nil
}

func (f *fakeShortlistRepo) CountByOwner(ownerID string) (int64, error) {
	found, _ := f.FindAllByOwner(ownerID)
	return int64(len(found)), nil
}

func (f *fakeShortlistRepo) Count() (int64, error) {
	return int64(len(f.shortlists)), nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserRepo) FindByUsername(username string) (*models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, models.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserRepo) Count() (int64, error) {
	return int64(len(f.users)), nil
}

type fakeClientRepo struct {
	clients map[string]*models.APIClient
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*models.APIClient)}
}

func (f *fakeClientRepo) Create(client *models.APIClient) error {
	f.clients[client.ClientID] = client
	return nil
}

func (f *fakeClientRepo) FindByClientID(clientID string) (*models.APIClient, error) {
	client, ok := f.clients[clientID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return client, nil
}

func (f *fakeClientRepo) FindAll() ([]models.APIClient, error) {
	var out []models.APIClient
	for _, client := range f.clients {
		out = append(out, *client)
	}
	return out, nil
}

func (f *fakeClientRepo) Update(client *models.APIClient) error {
	f.clients[client.ClientID] = client
	return nil
}

func (f *fakeClientRepo) TouchLastUsed(clientID string) error {
	return nil
}

func (f *fakeClientRepo) Count() (int64, error) {
	return int64(len(f.clients)), nil
}

func (f *fakeClientRepo) CountActive() (int64, error) {
	var n int64
	for _, client := range f.clients {
		if client.IsActive {
			n++
		}
	}
	return n, nil
}

type fakeTokenRepo struct {
	tokens map[string]*models.AccessToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*models.AccessToken)}
}

func (f *fakeTokenRepo) Create(token *models.AccessToken) error {
	f.tokens[token.TokenHash] = token
	return nil
}

func (f *fakeTokenRepo) FindActiveByHash(tokenHash string) (*models.AccessToken, error) {
	token, ok := f.tokens[tokenHash]
	if !ok || !token.IsActive || !token.ExpiresAt.After(time.Now()) {
		return nil, models.ErrNotFound
	}
	return token, nil
}

func (f *fakeTokenRepo) Revoke(tokenHash string) (bool, error) {
	token, ok := f.tokens[tokenHash]
	if !ok || !token.IsActive {
		return false, nil
	}
	token.IsActive = false
	return true, nil
}

func (f *fakeTokenRepo) TouchLastUsed(tokenHash string) error {
	return nil
}

func (f *fakeTokenRepo) CountActive() (int64, error) {
	var n int64
	for _, token := range f.tokens {
		if token.IsActive {
			n++
		}
	}
	return n, nil
}
