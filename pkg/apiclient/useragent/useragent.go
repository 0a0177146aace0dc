package useragent

import (
	"github.com/crowdsecurity/go-cs-lib/version"
)

func Default() string {
	return "jellyctl/" + version.String() + "-" + version.System
}
