package huuto

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/ini.v1"
)

// Credentials identify the Huuto.net account. They are supplied by operator
// configuration and never derived or rewritten by the client.
type Credentials struct {
	Username string
	Password string
}

// SessionToken is the opaque credential issued by POST /authentication. It is
// required on authenticated calls and has a finite validity window.
type SessionToken struct {
	Value     string
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Valid reports whether the token is usable at the given instant. The margin
// keeps a token from being presented when it would expire mid-request.
func (t SessionToken) Valid(now time.Time, margin time.Duration) bool {
	return t.Value != "" && t.ExpiresAt.After(now.Add(margin))
}

// CredentialStore persists the account identity together with the cached
// session token. Keeping it an interface makes the persistence medium
// swappable without touching the token logic.
type CredentialStore interface {
	// Load returns the credentials and the cached token. The token is nil on
	// first run.
	Load() (Credentials, *SessionToken, error)
	// Save persists a freshly issued token. Credentials are left untouched.
	Save(token SessionToken) error
}

// Credential file keys. The file is a flat INI document.
const (
	keyUsername    = "username"
	keyPassword    = "password"
	keyToken       = "token"
	keyTokenExpiry = "token_expiry"
	keyUserID      = "user_id"
)

// tokenTimeLayout is the format used for token_expiry in the credential file.
const tokenTimeLayout = time.RFC3339

// FileStore keeps credentials in an INI file. Only the token fields are ever
// rewritten; username and password stay as the operator wrote them.
type FileStore struct {
	path string
}

// NewFileStore creates a credential store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the credential file.
func (s *FileStore) Load() (Credentials, *SessionToken, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, nil, fmt.Errorf("%w: %s", ErrConfigMissing, s.path)
		}
		return Credentials{}, nil, fmt.Errorf("stat credential file: %w", err)
	}

	file, err := ini.Load(s.path)
	if err != nil {
		return Credentials{}, nil, fmt.Errorf("%w: %v", ErrConfigMalformed, err)
	}

	section := file.Section("")
	creds := Credentials{
		Username: section.Key(keyUsername).String(),
		Password: section.Key(keyPassword).String(),
	}
	if creds.Username == "" || creds.Password == "" {
		return Credentials{}, nil, fmt.Errorf("%w: username and password must be set in %s", ErrConfigMalformed, s.path)
	}

	value := section.Key(keyToken).String()
	if value == "" {
		return creds, nil, nil
	}
	expiry, err := time.Parse(tokenTimeLayout, section.Key(keyTokenExpiry).String())
	if err != nil {
		// A cached token without a parsable expiry can never be trusted as
		// valid; treat it as absent and let the manager log in again.
		return creds, nil, nil
	}

	return creds, &SessionToken{
		Value:     value,
		UserID:    section.Key(keyUserID).String(),
		ExpiresAt: expiry,
	}, nil
}

// Save writes the token fields back to the credential file. The file is
// written to a temp file in the same directory and renamed over the original,
// so a failed write never leaves a half-written token behind.
func (s *FileStore) Save(token SessionToken) error {
	file, err := ini.Load(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("read credential file: %w", err)
		}
		file = ini.Empty()
	}

	section := file.Section("")
	section.Key(keyToken).SetValue(token.Value)
	section.Key(keyTokenExpiry).SetValue(token.ExpiresAt.Format(tokenTimeLayout))
	if token.UserID != "" {
		section.Key(keyUserID).SetValue(token.UserID)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp credential file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := file.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write credential file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close credential file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace credential file: %w", err)
	}
	return nil
}
