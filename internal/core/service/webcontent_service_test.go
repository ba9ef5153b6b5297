package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/siher/webpage-publisher/internal/core/domain"
	"github.com/siher/webpage-publisher/internal/core/ports"
)

type webContentFixture struct {
	svc       *WebContentService
	content   *stubContentRepo
	users     *stubUserRepo
	artifacts *stubArtifacts
	registrar *stubRegistrar
	renderer  *stubRenderer
	locks     *stubLocker
}

func newWebContentFixture() *webContentFixture {
	f := &webContentFixture{
		content:   newStubContentRepo(),
		users:     newStubUserRepo(),
		artifacts: &stubArtifacts{},
		registrar: &stubRegistrar{ok: true},
		renderer:  &stubRenderer{},
		locks:     &stubLocker{},
	}
	f.svc = NewWebContentService(f.content, f.users, f.artifacts, f.registrar, f.renderer, f.locks, zerolog.Nop())
	return f
}

func landingPatch(fullName string) domain.SectionPatch {
	return domain.SectionPatch{Landing: &domain.Landing{FullName: fullName}}
}

func TestWebContentServicePublish(t *testing.T) {
	f := newWebContentFixture()
	user := f.users.add(&domain.User{Email: "ada@example.com"})

	record, err := f.svc.Publish(context.Background(), user.ID, ports.ContentInput{Sections: landingPatch("Ada")})
	if err != nil {
		t.Fatalf("Publish returned %v", err)
	}
	if record.Sections.Landing.FullName != "Ada" {
		t.Errorf("landing full name = %q, want Ada", record.Sections.Landing.FullName)
	}
	if record.ContentHash == "" {
		t.Error("content hash is empty")
	}
	if record.Sections.Slider == nil || record.Sections.Timeline == nil {
		t.Error("omitted sections not normalized to empty values")
	}
	if f.artifacts.putCalls != 1 {
		t.Errorf("artifact uploads = %d, want 1", f.artifacts.putCalls)
	}
	if f.locks.released != 1 {
		t.Errorf("lock released %d times, want 1", f.locks.released)
	}
	if _, err := f.content.FindByUser(context.Background(), user.ID); err != nil {
		t.Errorf("record not persisted: %v", err)
	}
}

func TestWebContentServicePublishMissingContent(t *testing.T) {
	f := newWebContentFixture()
	user := f.users.add(&domain.User{Email: "ada@example.com"})

	_, err := f.svc.Publish(context.Background(), user.ID, ports.ContentInput{})
	if !errors.Is(err, domain.ErrMissingContent) {
		t.Fatalf("err = %v, want ErrMissingContent", err)
	}
	if f.artifacts.putCalls != 0 {
		t.Errorf("artifact uploads = %d, want 0", f.artifacts.putCalls)
	}
}

func TestWebContentServicePublishReplacesPreviousArtifact(t *testing.T) {
	f := newWebContentFixture()
	user := f.users.add(&domain.User{Email: "ada@example.com"})
	if _, err := f.content.Upsert(context.Background(), user.ID, "QmOld", domain.DefaultSections()); err != nil {
		t.Fatal(err)
	}

	record, err := f.svc.Publish(context.Background(), user.ID, ports.ContentInput{Sections: landingPatch("Ada")})
	if err != nil {
		t.Fatalf("Publish returned %v", err)
	}
	if record.ContentHash == "QmOld" {
		t.Fatal("content hash unchanged")
	}
	if len(f.artifacts.deleteCalls) != 1 || f.artifacts.deleteCalls[0] != "QmOld" {
		t.Errorf("delete calls = %v, want [QmOld]", f.artifacts.deleteCalls)
	}
}

func TestWebContentServicePublishUploadFailure(t *testing.T) {
	f := newWebContentFixture()
	user := f.users.add(&domain.User{Email: "ada@example.com"})
	storeErr := &domain.StorageError{Op: "put", StatusCode: 401, Body: "bad token"}
	f.artifacts.putErr = storeErr

	_, err := f.svc.Publish(context.Background(), user.ID, ports.ContentInput{Sections: landingPatch("Ada")})
	var se *domain.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *domain.StorageError", err)
	}
	if _, err := f.content.FindByUser(context.Background(), user.ID); !errors.Is(err, domain.ErrContentNotFound) {
		t.Error("record persisted despite upload failure")
	}
}

func TestWebContentServicePublishLockHeld(t *testing.T) {
	f := newWebContentFixture()
	f.locks.held = true

	_, err := f.svc.Publish(context.Background(), "u1", ports.ContentInput{Sections: landingPatch("Ada")})
	if !errors.Is(err, domain.ErrUpdateInProgress) {
		t.Fatalf("err = %v, want ErrUpdateInProgress", err)
	}
}

func TestWebContentServicePublishAttachmentWinsOverURL(t *testing.T) {
	f := newWebContentFixture()
	user := f.users.add(&domain.User{Email: "ada@example.com"})

	input := ports.ContentInput{
		Sections: domain.SectionPatch{Landing: &domain.Landing{FullName: "Ada", Image: "https://inline.test/pic.png"}},
		Attachments: []ports.Attachment{
			{Field: "landing_image", Filename: "pic.png", ContentType: "image/png", Data: []byte{1}},
			{Field: "org_image_1", Filename: "org.png", ContentType: "image/png", Data: []byte{2}},
		},
	}
	record, err := f.svc.Publish(context.Background(), user.ID, input)
	if err != nil {
		t.Fatalf("Publish returned %v", err)
	}
	if !strings.HasPrefix(record.Sections.Landing.Image, "https://gateway.test/ipfs/") {
		t.Errorf("landing image = %q, want gateway URL", record.Sections.Landing.Image)
	}
	if len(record.Sections.Organizations) != 2 || record.Sections.Organizations[1] == "" {
		t.Errorf("organizations = %v, want slice grown to index 1", record.Sections.Organizations)
	}
}

func TestWebContentServiceUpdateRequiresExistingContent(t *testing.T) {
	f := newWebContentFixture()
	f.users.add(&domain.User{ID: "u1", Email: "ada@example.com"})

	_, err := f.svc.Update(context.Background(), "u1", ports.ContentInput{Sections: landingPatch("Ada")})
	if !errors.Is(err, domain.ErrContentNotFound) {
		t.Fatalf("err = %v, want ErrContentNotFound", err)
	}
}

func TestWebContentServiceUpdatePreservesOmittedSections(t *testing.T) {
	f := newWebContentFixture()
	user := f.users.add(&domain.User{Email: "ada@example.com"})

	base := domain.DefaultSections()
	base.Landing.FullName = "Ada"
	base.Slider = []string{"https://img.test/one.png"}
	if _, err := f.content.Upsert(context.Background(), user.ID, "QmOld", base); err != nil {
		t.Fatal(err)
	}

	patch := domain.SectionPatch{Landing: &domain.Landing{FullName: "Ada Lovelace"}}
	record, err := f.svc.Update(context.Background(), user.ID, ports.ContentInput{Sections: patch})
	if err != nil {
		t.Fatalf("Update returned %v", err)
	}
	if record.Sections.Landing.FullName != "Ada Lovelace" {
		t.Errorf("landing full name = %q, want Ada Lovelace", record.Sections.Landing.FullName)
	}
	if len(record.Sections.Slider) != 1 {
		t.Errorf("slider = %v, want preserved from existing record", record.Sections.Slider)
	}
}

func TestWebContentServiceUpdateDeletesOldArtifactOnce(t *testing.T) {
	f := newWebContentFixture()
	user := f.users.add(&domain.User{Email: "ada@example.com"})
	if _, err := f.content.Upsert(context.Background(), user.ID, "QmOld", domain.DefaultSections()); err != nil {
		t.Fatal(err)
	}
	f.artifacts.deleteErr = errors.New("unpin unavailable")

	_, err := f.svc.Update(context.Background(), user.ID, ports.ContentInput{Sections: landingPatch("Ada")})
	if err != nil {
		t.Fatalf("Update returned %v, cleanup failure must not fail the update", err)
	}
	if len(f.artifacts.deleteCalls) != 1 || f.artifacts.deleteCalls[0] != "QmOld" {
		t.Errorf("delete calls = %v, want exactly [QmOld]", f.artifacts.deleteCalls)
	}
}

func TestWebContentServiceUpdateReregistersDomain(t *testing.T) {
	f := newWebContentFixture()
	user := f.users.add(&domain.User{Email: "ada@example.com", Domain: "ada"})
	if _, err := f.content.Upsert(context.Background(), user.ID, "QmOld", domain.DefaultSections()); err != nil {
		t.Fatal(err)
	}

	record, err := f.svc.Update(context.Background(), user.ID, ports.ContentInput{Sections: landingPatch("Ada")})
	if err != nil {
		t.Fatalf("Update returned %v", err)
	}
	if len(f.registrar.calls) != 1 {
		t.Fatalf("registrar calls = %d, want 1", len(f.registrar.calls))
	}
	if call := f.registrar.calls[0]; call.name != "ada" || call.cid != record.ContentHash {
		t.Errorf("registrar called with (%q, %q), want (ada, %q)", call.name, call.cid, record.ContentHash)
	}
}

func TestWebContentServiceUpdateRegistrarFailure(t *testing.T) {
	f := newWebContentFixture()
	user := f.users.add(&domain.User{Email: "ada@example.com", Domain: "ada"})
	if _, err := f.content.Upsert(context.Background(), user.ID, "QmOld", domain.DefaultSections()); err != nil {
		t.Fatal(err)
	}
	f.registrar.ok = false

	_, err := f.svc.Update(context.Background(), user.ID, ports.ContentInput{Sections: landingPatch("Ada")})
	if !errors.Is(err, domain.ErrRegistrarFailed) {
		t.Fatalf("err = %v, want ErrRegistrarFailed", err)
	}
}

func TestWebContentServiceUpdateWithoutDomainSkipsRegistrar(t *testing.T) {
	f := newWebContentFixture()
	user := f.users.add(&domain.User{Email: "ada@example.com"})
	if _, err := f.content.Upsert(context.Background(), user.ID, "QmOld", domain.DefaultSections()); err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Update(context.Background(), user.ID, ports.ContentInput{Sections: landingPatch("Ada")}); err != nil {
		t.Fatalf("Update returned %v", err)
	}
	if len(f.registrar.calls) != 0 {
		t.Errorf("registrar calls = %d, want 0", len(f.registrar.calls))
	}
}

func TestWebContentServiceDelete(t *testing.T) {
	f := newWebContentFixture()
	user := f.users.add(&domain.User{Email: "ada@example.com"})
	if _, err := f.content.Upsert(context.Background(), user.ID, "QmOld", domain.DefaultSections()); err != nil {
		t.Fatal(err)
	}

	if err := f.svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete returned %v", err)
	}
	if _, err := f.content.FindByUser(context.Background(), user.ID); !errors.Is(err, domain.ErrContentNotFound) {
		t.Error("record still present after delete")
	}
	if len(f.artifacts.deleteCalls) != 1 || f.artifacts.deleteCalls[0] != "QmOld" {
		t.Errorf("delete calls = %v, want [QmOld]", f.artifacts.deleteCalls)
	}
}

func TestWebContentServiceDeleteMissing(t *testing.T) {
	f := newWebContentFixture()
	if err := f.svc.Delete(context.Background(), "unknown"); !errors.Is(err, domain.ErrContentNotFound) {
		t.Fatalf("err = %v, want ErrContentNotFound", err)
	}
}
