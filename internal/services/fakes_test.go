package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"evently/internal/domain"
)

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byID      map[string]*domain.User
	createErr error
	getErr    error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = uuid.NewString()
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, hash, salt string) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash, u.Salt = hash, salt
	return nil
}

// fakeResetRepo implements domain.PasswordResetRepository for tests.
type fakeResetRepo struct {
	codes     map[string]string
	expiresAt time.Time
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{codes: make(map[string]string)}
}

func (f *fakeResetRepo) Create(ctx context.Context, email, codeHash string, expiresAt time.Time) error {
	f.codes[email] = codeHash
	f.expiresAt = expiresAt
	return nil
}

func (f *fakeResetRepo) Consume(ctx context.Context, email, codeHash string) (bool, error) {
	if f.codes[email] != codeHash {
		return false, nil
	}
	delete(f.codes, email)
	return true, nil
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct{}

func (fakePasswordHasher) GenerateSalt() (string, error) { return "salt", nil }
func (fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash-" + salt + "-" + password, nil
}
func (fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+salt+"-"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID, nil
}

// fakeEmailService implements domain.EmailService and records what was sent.
type fakeEmailService struct {
	welcome []*domain.WelcomeMessageEmailData
	resets  []*domain.PasswordResetEmailData
	err     error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	f.welcome = append(f.welcome, data)
	return f.err
}

func (f *fakeEmailService) SendPasswordResetCode(ctx context.Context, data *domain.PasswordResetEmailData) error {
	f.resets = append(f.resets, data)
	return f.err
}

// fakeEventRepo implements domain.EventRepository in memory.
type fakeEventRepo struct {
	events    map[string]*domain.Event
	order     []string
	createErr error
	updateErr error
	getErr    error
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{events: make(map[string]*domain.Event)}
	for _, e := range events {
		f.events[e.ID] = e
		f.order = append(f.order, e.ID)
	}
	return f
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = uuid.NewString()
	cp := *e
	f.events[e.ID] = &cp
	f.order = append(f.order, e.ID)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0)
	for _, id := range f.order {
		e, ok := f.events[id]
		if !ok {
			continue
		}
		if filter.Title != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(filter.Title)) {
			continue
		}
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !e.Date.Before(*filter.To) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id, organizerID string, p domain.EventPatch) (*domain.Event, string, error) {
	if f.updateErr != nil {
		return nil, "", f.updateErr
	}
	e, ok := f.events[id]
	if !ok || e.OrganizerID != organizerID {
		return nil, "", domain.ErrEventNotFound
	}
	prev := e.Image
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.RegistrationLink != nil {
		e.RegistrationLink = *p.RegistrationLink
	}
	if p.Image != nil {
		e.Image = *p.Image
	}
	cp := *e
	return &cp, prev, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id, organizerID string) (string, error) {
	e, ok := f.events[id]
	if !ok || e.OrganizerID != organizerID {
		return "", domain.ErrEventNotFound
	}
	delete(f.events, id)
	return e.Image, nil
}

func (f *fakeEventRepo) ListImageRefs(ctx context.Context) ([]string, error) {
	refs := make([]string, 0)
	for _, e := range f.events {
		if e.Image != "" {
			refs = append(refs, e.Image)
		}
	}
	return refs, nil
}

// fakeRegistrationRepo implements domain.EventRegistrationRepository in memory.
type fakeRegistrationRepo struct {
	regs      []*domain.EventRegistration
	names     map[string]string
	listErr   error
	createErr error
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.EventRegistration) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, r := range f.regs {
		if r.EventID == reg.EventID && r.UserID == reg.UserID {
			return domain.ErrAlreadyRegistered
		}
	}
	reg.ID = uuid.NewString()
	f.regs = append(f.regs, reg)
	return nil
}

func (f *fakeRegistrationRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	for _, r := range f.regs {
		if r.EventID == eventID && r.UserID == userID {
			return r, nil
		}
	}
	return nil, domain.ErrNotRegistered
}

func (f *fakeRegistrationRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.EventRegistration, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.EventRegistration
	for _, r := range f.regs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRegistrationRepo) ListAttendees(ctx context.Context, eventID string) ([]domain.Attendee, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Attendee, 0)
	for _, r := range f.regs {
		if r.EventID == eventID {
			out = append(out, domain.Attendee{ID: r.UserID, Name: f.names[r.UserID]})
		}
	}
	return out, nil
}

func (f *fakeRegistrationRepo) Delete(ctx context.Context, eventID, userID string) error {
	for i, r := range f.regs {
		if r.EventID == eventID && r.UserID == userID {
			f.regs = append(f.regs[:i], f.regs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotRegistered
}

// fakeImageStore implements domain.ImageStore in memory.
type fakeImageStore struct {
	mu        sync.Mutex
	files     map[string]time.Time
	deleted   []string
	saveErr   error
	deleteErr error
	seq       int
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{files: make(map[string]time.Time)}
}

func (f *fakeImageStore) Save(ctx context.Context, img *domain.ImageUpload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.seq++
	ref := "/uploads/" + strings.Repeat("x", f.seq) + "-" + img.Filename
	f.files[ref] = time.Now()
	return ref, nil
}

func (f *fakeImageStore) Delete(ctx context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.files, ref)
	f.deleted = append(f.deleted, ref)
	return nil
}

func (f *fakeImageStore) List(ctx context.Context) ([]domain.StoredImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.StoredImage, 0, len(f.files))
	for ref, mod := range f.files {
		out = append(out, domain.StoredImage{Ref: ref, ModTime: mod})
	}
	return out, nil
}

// fakeCache implements domain.Cache in memory.
type fakeCache struct {
	data   map[string][]byte
	getErr error
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.sets++
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeCache) DeletePrefix(ctx context.Context, prefix string) error {
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			delete(f.data, k)
		}
	}
	return nil
}

var errDB = errors.New("db unavailable")
