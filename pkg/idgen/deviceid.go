package idgen

import (
	"os"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/crowdsecurity/machineid"
)

// DeviceID returns a stable identifier of this installation, derived from
// the OS machine id so the raw value never leaves the host. When no machine
// id is available a random one is returned.
func DeviceID() string {
	id, err := machineid.ID()
	if err != nil {
		log.Debugf("failed to get machine-id with usual files: %s", err)
		return uuid.NewString()
	}

	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("jellyctl:"+id)).String()
}

// DeviceName is the host name, or a fixed label when it cannot be read.
func DeviceName() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "jellyctl"
	}

	return name
}
