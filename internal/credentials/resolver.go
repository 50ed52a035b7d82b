package credentials

import (
	"errors"
	"fmt"
	"os"

	"github.com/twilio-labs/create-twilio-function/internal/logging"
	"github.com/twilio-labs/create-twilio-function/internal/project"
)

// Environment variables credentials are imported from.
const (
	EnvAccountSID = "TWILIO_ACCOUNT_SID"
	EnvAuthToken  = "TWILIO_AUTH_TOKEN"
)

// ErrNotInteractive is returned when credentials must be prompted for but
// stdin is not a terminal.
var ErrNotInteractive = errors.New("credentials are required but stdin is not a terminal; pass --account-sid and --auth-token, --import-credentials, or --skip-credentials")

// Credentials holds the account SID and auth token written to .env.
type Credentials struct {
	AccountSID string
	AuthToken  string
}

func (c Credentials) complete() bool {
	return c.AccountSID != "" && c.AuthToken != ""
}

// fill returns c with its empty fields taken from other.
func (c Credentials) fill(other Credentials) Credentials {
	if c.AccountSID == "" {
		c.AccountSID = other.AccountSID
	}
	if c.AuthToken == "" {
		c.AuthToken = other.AuthToken
	}
	return c
}

// EnvReader looks up environment variables.
type EnvReader interface {
	LookupEnv(key string) (string, bool)
}

// OSEnv reads from the process environment.
type OSEnv struct{}

// LookupEnv implements EnvReader.
func (OSEnv) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

// MapEnv is an EnvReader backed by a map.
type MapEnv map[string]string

// LookupEnv implements EnvReader.
func (m MapEnv) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Resolver obtains credentials from flags, the environment, or the user.
type Resolver struct {
	Env      EnvReader
	Prompter Prompter

	// Interactive reports whether prompting is possible. Nil means always.
	Interactive func() bool
}

// Resolve returns the credentials to use for cfg. Explicit values on cfg are
// returned as-is; callers merge the result with cfg.WithCredentials.
func (r *Resolver) Resolve(cfg project.Config) (Credentials, error) {
	explicit := Credentials{AccountSID: cfg.AccountSID, AuthToken: cfg.AuthToken}
	if cfg.HasCredentials() {
		return explicit, nil
	}

	if cfg.SkipCredentials && !cfg.ImportCredentials {
		logging.Debug().Msg("skipping credentials")
		return Credentials{}, nil
	}

	fromEnv, found := r.fromEnv()

	if cfg.SkipCredentials || cfg.ImportCredentials {
		if found == bothFound {
			logging.Debug().
				Str("account_sid", RedactValue(EnvAccountSID, fromEnv.AccountSID)).
				Msg("imported credentials from environment")
			return fromEnv, nil
		}
		if cfg.SkipCredentials {
			return Credentials{}, nil
		}
	} else if found != noneFound {
		ok, err := r.confirmImport()
		if err != nil {
			return Credentials{}, err
		}
		if ok {
			merged := explicit.fill(fromEnv)
			if merged.complete() {
				return merged, nil
			}
			return r.prompt(merged)
		}
	}

	return r.prompt(explicit)
}

type envResult int

const (
	noneFound envResult = iota
	someFound
	bothFound
)

func (r *Resolver) fromEnv() (Credentials, envResult) {
	env := r.Env
	if env == nil {
		env = OSEnv{}
	}
	sid, sidOK := env.LookupEnv(EnvAccountSID)
	token, tokenOK := env.LookupEnv(EnvAuthToken)
	c := Credentials{AccountSID: sid, AuthToken: token}
	sidOK = sidOK && sid != ""
	tokenOK = tokenOK && token != ""
	switch {
	case sidOK && tokenOK:
		return c, bothFound
	case sidOK || tokenOK:
		return c, someFound
	default:
		return c, noneFound
	}
}

func (r *Resolver) interactive() bool {
	return r.Interactive == nil || r.Interactive()
}

func (r *Resolver) confirmImport() (bool, error) {
	if !r.interactive() {
		return false, ErrNotInteractive
	}
	ok, err := r.Prompter.Confirm("Your account credentials have been found in your environment variables. Import them?", true)
	if err != nil {
		return false, fmt.Errorf("confirming credential import: %w", err)
	}
	return ok, nil
}

// prompt asks only for the fields that were not given explicitly.
func (r *Resolver) prompt(c Credentials) (Credentials, error) {
	if !r.interactive() {
		return Credentials{}, ErrNotInteractive
	}
	if c.AccountSID == "" {
		sid, err := r.Prompter.Input("Twilio Account SID", false, ValidateAccountSID)
		if err != nil {
			return Credentials{}, fmt.Errorf("reading account SID: %w", err)
		}
		c.AccountSID = sid
	}
	if c.AuthToken == "" {
		token, err := r.Prompter.Input("Twilio auth token", true, ValidateAuthToken)
		if err != nil {
			return Credentials{}, fmt.Errorf("reading auth token: %w", err)
		}
		c.AuthToken = token
	}
	return c, nil
}
