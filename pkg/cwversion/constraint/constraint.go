package constraint

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

const (
	// Server is the range of server versions this client is tested with.
	Server = ">= 10.9"
	// Backup is the first server version with the backup API.
	Backup = ">= 10.11"
)

func Satisfies(strvers string, constraint string) (bool, error) {
	vers, err := goversion.NewVersion(strvers)
	if err != nil {
		return false, fmt.Errorf("failed to parse '%s': %w", strvers, err)
	}

	constraints, err := goversion.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("failed to parse constraint '%s'", constraint)
	}

	if !constraints.Check(vers) {
		return false, nil
	}

	return true, nil
}

// Latest returns the highest of the given versions. Unparsable entries are
// skipped, an empty string is returned when none is valid.
func Latest(versions []string) string {
	var (
		best    *goversion.Version
		bestStr string
	)

	for _, s := range versions {
		v, err := goversion.NewVersion(s)
		if err != nil {
			continue
		}

		if best == nil || v.GreaterThan(best) {
			best = v
			bestStr = s
		}
	}

	return bestStr
}
