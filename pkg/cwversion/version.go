package cwversion

import (
	"fmt"

	"github.com/crowdsecurity/go-cs-lib/version"

	"github.com/jellyctl/jellyctl/pkg/apiclient/useragent"
	"github.com/jellyctl/jellyctl/pkg/cwversion/constraint"
)

// devVersion is reported by builds made without -ldflags.
const devVersion = "dev"

// String is the version sent to the server in the client identity.
func String() string {
	if v := version.String(); v != "" {
		return v
	}

	return devVersion
}

func FullString() string {
	ret := fmt.Sprintf("version: %s\n", version.String())
	ret += fmt.Sprintf("BuildDate: %s\n", version.BuildDate)
	ret += fmt.Sprintf("GoVersion: %s\n", version.GoVersion)
	ret += fmt.Sprintf("Platform: %s\n", version.System)
	ret += fmt.Sprintf("User-Agent: %s\n", useragent.Default())
	ret += fmt.Sprintf("Constraint_server: %s\n", constraint.Server)
	ret += fmt.Sprintf("Constraint_backup: %s\n", constraint.Backup)

	return ret
}
