package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/chuwg/taskflow/internal/config"
	"github.com/chuwg/taskflow/internal/storage"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
)

var ErrUnauthenticated = errors.New("google account is not connected, authentication is required")

type googleAuthRedirect struct {
	RedirectUrl string `json:"redirectUrl"`
}

// Auth manages the OAuth flow and keeps the obtained token in the blob
// store.
type Auth struct {
	store       storage.BlobStore
	oauthConfig *oauth2.Config

	mu    sync.Mutex
	nonce string
}

func NewAuth(store storage.BlobStore, cfg config.Application) *Auth {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientId,
		ClientSecret: cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.Host + "/api/integrations/google/auth/callback",
		Scopes:       []string{gcal.CalendarEventsScope},
	}
	return &Auth{store: store, oauthConfig: oauthConfig}
}

// OAuthLogin starts the flow: it drops any stored token, generates a state
// nonce and returns the Google consent URL.
func (a *Auth) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := a.store.Remove(r.Context(), storage.KeyGoogleToken); err != nil {
		log.Errorf("failed to drop stored Google token: %v", err)
		http.Error(w, "Failed to handle Google authentication", http.StatusInternalServerError)
		return
	}

	stateNonce := uuid.NewString()
	a.mu.Lock()
	a.nonce = stateNonce
	a.mu.Unlock()

	finalUrl := r.URL.Query().Get("finalUrl")
	log.Tracef("Redirecting to Google auth URL with nonce: %s", stateNonce)
	u := a.oauthConfig.AuthCodeURL(finalUrl+"|"+stateNonce, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(googleAuthRedirect{RedirectUrl: u}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// OAuthCallback exchanges the code for a token and persists it. The state
// carries "finalUrl|nonce"; a nonce mismatch aborts the flow.
func (a *Auth) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	state := r.FormValue("state")

	parts := strings.SplitN(state, "|", 2)
	if len(parts) != 2 {
		http.Error(w, "malformed state", http.StatusBadRequest)
		return
	}
	finalUrl := parts[0]
	nonce := parts[1]

	a.mu.Lock()
	expected := a.nonce
	a.nonce = ""
	a.mu.Unlock()
	if expected == "" || nonce != expected {
		log.Warnf("Google auth callback with unexpected nonce: %s", nonce)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	token, err := a.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		log.Errorf("unable to exchange code for token: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	if err := a.storeToken(r.Context(), token); err != nil {
		log.Errorf("unable to store Google auth token: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}
	log.Debug("Successfully stored Google auth token")
	http.Redirect(w, r, finalUrl+"?success=true", http.StatusFound)
}

// OAuthLogout drops the stored token.
func (a *Auth) OAuthLogout(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Remove(r.Context(), storage.KeyGoogleToken); err != nil {
		log.Errorf("failed to delete Google token: %v", err)
		http.Error(w, "Failed to handle Google authentication", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Auth) storeToken(ctx context.Context, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	return a.store.Set(ctx, storage.KeyGoogleToken, data)
}

func (a *Auth) token(ctx context.Context) (*oauth2.Token, error) {
	data, found, err := a.store.Get(ctx, storage.KeyGoogleToken)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored token: %w", err)
	}
	if !found {
		return nil, nil
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored token: %w", err)
	}
	return &token, nil
}

// Client returns an authenticated HTTP client, or ErrUnauthenticated when no
// token is stored.
func (a *Auth) Client(ctx context.Context) (*http.Client, error) {
	token, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, ErrUnauthenticated
	}
	return a.oauthConfig.Client(ctx, token), nil
}
