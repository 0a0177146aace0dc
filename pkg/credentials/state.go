package credentials

import (
	"github.com/jellyctl/jellyctl/pkg/csconfig"
)

// State is the position of the client in its credential lifecycle.
type State int

const (
	NotConfigured State = iota
	Authenticating
	TokenObtained
	KeyExchanged
	Configured
)

func (s State) String() string {
	switch s {
	case NotConfigured:
		return "not configured"
	case Authenticating:
		return "authenticating"
	case TokenObtained:
		return "token obtained"
	case KeyExchanged:
		return "key exchanged"
	case Configured:
		return "configured"
	default:
		return "unknown"
	}
}

// StateOf derives the state a persisted record stands for. A configured
// record still holding a session token is waiting for its exchange.
func StateOf(cfg *csconfig.Config) State {
	switch {
	case cfg == nil || !cfg.IsConfigured():
		return NotConfigured
	case cfg.HasLegacyToken():
		return TokenObtained
	default:
		return Configured
	}
}
