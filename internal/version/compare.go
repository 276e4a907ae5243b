package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// CheckStrategyVersion checks that a strategy document written for documentVersion
// can be run by a build that understands supportedVersion.
//
// Compatibility Rules:
//   - An empty document version is accepted and treated as the supported version
//   - "main" on either side skips the check
//   - Major versions must match exactly
//   - The document minor version must not be newer than the supported one
//   - Patch versions can differ
//
// Examples:
//   - Supported 1.2.0, Document 1.2.5 -> OK
//   - Supported 1.2.0, Document 1.0.0 -> OK
//   - Supported 1.2.0, Document 1.3.0 -> ERROR (document is newer)
//   - Supported 1.2.0, Document 2.0.0 -> ERROR (major differs)
func CheckStrategyVersion(supportedVersion, documentVersion string) error {
	supportedVersion = strings.TrimPrefix(supportedVersion, "v")
	documentVersion = strings.TrimPrefix(documentVersion, "v")

	if documentVersion == "" || supportedVersion == "main" || documentVersion == "main" {
		return nil
	}

	supported, err := semver.NewVersion(supportedVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid supported version '%s'", supportedVersion)
	}

	document, err := semver.NewVersion(documentVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid strategy version '%s'", documentVersion)
	}

	if supported.Major() != document.Major() {
		return errors.Newf(errors.ErrCodeVersionMismatch,
			"major version mismatch: engine supports %d.x.x but strategy requires %d.x.x",
			supported.Major(), document.Major())
	}

	if document.Minor() > supported.Minor() {
		return errors.Newf(errors.ErrCodeVersionMismatch,
			"minor version mismatch: engine supports up to %d.%d.x but strategy requires %d.%d.x",
			supported.Major(), supported.Minor(),
			document.Major(), document.Minor())
	}

	return nil
}
