// Package errx translates backend faults into the fixed user-facing error
// taxonomy. Session and catalog operations classify every underlying error
// through this package; raw backend errors never reach the presentation layer.
package errx

import (
	"errors"
	"strings"

	"github.com/wintakam/wintakam/internal/client/gateway"
)

// Kind enumerates the error taxonomy.
type Kind int

const (
	Unknown Kind = iota
	InvalidCredentials
	EmailUnconfirmed
	InvalidEmailFormat
	NetworkError
	Timeout
	Unauthorized
	NotFound
)

// Error couples a taxonomy kind with its localized, user-facing message.
// The underlying cause stays reachable through errors.Unwrap for logging.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// User-facing messages, as shipped in the mobile app.
var messages = map[Kind]string{
	InvalidCredentials: "Email ou mot de passe incorrect.",
	EmailUnconfirmed:   "Veuillez confirmer votre email.",
	InvalidEmailFormat: "Adresse email invalide.",
	NetworkError:       "Erreur de connexion. Vérifiez votre internet.",
	Timeout:            "Le serveur ne répond pas. Réessayez plus tard.",
	Unauthorized:       "Session expirée. Veuillez vous reconnecter.",
	NotFound:           "Propriété introuvable.",
}

const (
	genericAuthMessage    = "Une erreur s'est produite. Veuillez réessayer."
	genericCatalogMessage = "Une erreur s'est produite lors du chargement des propriétés."
)

// Classify maps an underlying error to a taxonomy kind. Sentinels are
// matched first; otherwise the lower-cased error text is pattern-matched
// the way the backend phrases its failures.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return Unknown
	case errors.Is(err, gateway.ErrTimeout):
		return Timeout
	case errors.Is(err, gateway.ErrUnavailable):
		return NetworkError
	case errors.Is(err, gateway.ErrUnauthorized):
		return Unauthorized
	case errors.Is(err, gateway.ErrNotFound):
		return NotFound
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "invalid login credentials"):
		return InvalidCredentials
	case strings.Contains(msg, "email not confirmed"):
		return EmailUnconfirmed
	case strings.Contains(msg, "invalid email"):
		return InvalidEmailFormat
	case strings.Contains(msg, "timeout"):
		return Timeout
	case strings.Contains(msg, "network"):
		return NetworkError
	case strings.Contains(msg, "unauthorized"):
		return Unauthorized
	case strings.Contains(msg, "not found"):
		return NotFound
	default:
		return Unknown
	}
}

// Auth wraps err as a taxonomy error with sign-in flavored fallback text.
func Auth(err error) *Error {
	return wrap(err, genericAuthMessage)
}

// Catalog wraps err as a taxonomy error with catalog flavored fallback text.
func Catalog(err error) *Error {
	return wrap(err, genericCatalogMessage)
}

func wrap(err error, fallback string) *Error {
	kind := Classify(err)
	msg, ok := messages[kind]
	if !ok {
		msg = fallback
	}
	return &Error{Kind: kind, Message: msg, cause: err}
}
