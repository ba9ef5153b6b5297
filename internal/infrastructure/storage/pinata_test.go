package storage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/siher/webpage-publisher/internal/core/domain"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(Config{
		UploadURL:  srv.URL + "/pinning/pinFileToIPFS",
		APIBaseURL: srv.URL,
		AuthToken:  "jwt-token",
		GatewayURL: "https://gateway.test",
	}, zerolog.Nop())
}

func TestClientPut(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file part: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"IpfsHash":"QmTest123"}`))
	}))
	defer srv.Close()

	cid, err := newTestClient(srv).Put(context.Background(), []byte("<html></html>"), "page.html", "text/html")
	if err != nil {
		t.Fatalf("Put returned %v", err)
	}
	if cid != "QmTest123" {
		t.Errorf("cid = %q, want QmTest123", cid)
	}
	if gotAuth != "Bearer jwt-token" {
		t.Errorf("Authorization = %q, want Bearer jwt-token", gotAuth)
	}
	if gotContentType == "" {
		t.Error("multipart content type not set")
	}
}

func TestClientPutRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Put(context.Background(), []byte("x"), "page.html", "text/html")
	var se *domain.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *domain.StorageError", err)
	}
	if !se.Rejected() || se.StatusCode != http.StatusUnauthorized {
		t.Errorf("error = %+v, want rejected with status 401", se)
	}
	if se.Body == "" {
		t.Error("rejected error should carry the response body")
	}
}

func TestClientPutUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv).Put(context.Background(), []byte("x"), "page.html", "text/html")
	var se *domain.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *domain.StorageError", err)
	}
	if se.Rejected() {
		t.Errorf("error = %+v, want transport failure with zero status", se)
	}
}

func TestClientDelete(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
	}))
	defer srv.Close()

	if err := newTestClient(srv).Delete(context.Background(), "QmTest123"); err != nil {
		t.Fatalf("Delete returned %v", err)
	}
	if gotPath != "/pinning/unpin/QmTest123" {
		t.Errorf("path = %q, want /pinning/unpin/QmTest123", gotPath)
	}
}

func TestClientDeleteMissingPinIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if err := newTestClient(srv).Delete(context.Background(), "QmGone"); err != nil {
		t.Fatalf("Delete of a missing pin returned %v, want nil", err)
	}
}

func TestClientDeleteRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestClient(srv).Delete(context.Background(), "QmTest123")
	var se *domain.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *domain.StorageError", err)
	}
	if se.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", se.StatusCode)
	}
}

func TestClientGatewayURL(t *testing.T) {
	c := NewClient(Config{GatewayURL: "https://gateway.test/"}, zerolog.Nop())
	if got := c.GatewayURL("QmTest123"); got != "https://gateway.test/ipfs/QmTest123" {
		t.Errorf("GatewayURL = %q, want https://gateway.test/ipfs/QmTest123", got)
	}
}
