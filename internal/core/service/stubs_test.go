package service

import (
	"context"
	"fmt"
	"time"

	"github.com/siher/webpage-publisher/internal/core/domain"
	"github.com/siher/webpage-publisher/internal/core/ports"
)

// --- content repository ---

type stubContentRepo struct {
	records   map[string]*domain.WebContent
	upsertErr error
}

func newStubContentRepo() *stubContentRepo {
	return &stubContentRepo{records: make(map[string]*domain.WebContent)}
}

func (r *stubContentRepo) FindByUser(_ context.Context, userID string) (*domain.WebContent, error) {
	rec, ok := r.records[userID]
	if !ok {
		return nil, domain.ErrContentNotFound
	}
	clone := *rec
	return &clone, nil
}

func (r *stubContentRepo) Upsert(_ context.Context, userID, contentHash string, sections domain.ContentSections) (*domain.WebContent, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	rec := &domain.WebContent{
		ID:          "wc_" + userID,
		UserID:      userID,
		ContentHash: contentHash,
		Sections:    sections,
		UpdatedAt:   time.Now().UTC(),
	}
	r.records[userID] = rec
	clone := *rec
	return &clone, nil
}

func (r *stubContentRepo) Delete(_ context.Context, userID string) (*domain.WebContent, error) {
	rec, ok := r.records[userID]
	if !ok {
		return nil, domain.ErrContentNotFound
	}
	delete(r.records, userID)
	return rec, nil
}

// --- user repository ---

type stubUserRepo struct {
	users     map[string]*domain.User
	published []ports.PublishedUser
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	if u.ID == "" {
		u.ID = fmt.Sprintf("u%d", len(r.users)+1)
	}
	r.users[u.ID] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	clone := *user
	created := r.add(&clone)
	out := *created
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByDomain(_ context.Context, name string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Domain == name {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetPassword(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) SetDomain(_ context.Context, id, name string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Domain == name && u.ID != id {
			return nil, domain.ErrDomainTaken
		}
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Domain = name
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) ListPublished(_ context.Context) ([]ports.PublishedUser, error) {
	return r.published, nil
}

// --- subscriber repository ---

type stubSubscriberRepo struct {
	emails map[string]bool
}

func newStubSubscriberRepo() *stubSubscriberRepo {
	return &stubSubscriberRepo{emails: make(map[string]bool)}
}

func (r *stubSubscriberRepo) Create(_ context.Context, email string) (*domain.Subscriber, error) {
	if r.emails[email] {
		return nil, domain.ErrAlreadySubscribed
	}
	r.emails[email] = true
	return &domain.Subscriber{ID: "s1", Email: email, CreatedAt: time.Now().UTC()}, nil
}

// --- artifact store ---

type stubArtifacts struct {
	putCalls    int
	putErr      error
	deleteErr   error
	deleteCalls []string
	nextCID     int
}

func (a *stubArtifacts) Put(_ context.Context, _ []byte, _ string, _ string) (string, error) {
	if a.putErr != nil {
		return "", a.putErr
	}
	a.putCalls++
	a.nextCID++
	return fmt.Sprintf("Qm%03d", a.nextCID), nil
}

func (a *stubArtifacts) Delete(_ context.Context, cid string) error {
	a.deleteCalls = append(a.deleteCalls, cid)
	return a.deleteErr
}

func (a *stubArtifacts) GatewayURL(cid string) string {
	return "https://gateway.test/ipfs/" + cid
}

// --- registrar ---

type registrarCall struct {
	name string
	cid  string
}

type stubRegistrar struct {
	calls []registrarCall
	ok    bool
}

func (r *stubRegistrar) Register(_ context.Context, name, cid string) bool {
	r.calls = append(r.calls, registrarCall{name: name, cid: cid})
	return r.ok
}

// --- renderer ---

type stubRenderer struct {
	err error
}

func (r *stubRenderer) Render(sections domain.ContentSections) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return "<html><body>" + sections.Landing.FullName + "</body></html>", nil
}

// --- publish lock ---

type stubLocker struct {
	held     bool
	acquired int
	released int
}

func (l *stubLocker) TryLock(_ context.Context, _ string) (func(), error) {
	if l.held {
		return nil, domain.ErrUpdateInProgress
	}
	l.acquired++
	return func() { l.released++ }, nil
}
