package storage

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/dochost/internal/common"
)

// MaxIDLength leaves room under the usual 255-byte file name limit for the
// temporary names used during atomic writes.
const MaxIDLength = 200

// SanitizeID validates a file id that is about to be used as a file name or
// object key. Ids are never rewritten, only accepted or rejected, so two
// different ids can not collapse onto the same blob.
func SanitizeID(id string) (string, error) {
	switch {
	case id == "":
		return "", fmt.Errorf("%w: empty", common.ErrInvalidFileID)
	case len(id) > MaxIDLength:
		return "", fmt.Errorf("%w: longer than %d bytes", common.ErrInvalidFileID, MaxIDLength)
	case strings.HasPrefix(id, "."):
		return "", fmt.Errorf("%w: %q starts with a dot", common.ErrInvalidFileID, id)
	case strings.ContainsAny(id, `/\:`):
		return "", fmt.Errorf("%w: %q contains a path separator", common.ErrInvalidFileID, id)
	}

	for _, r := range id {
		if r == unicode.ReplacementChar || unicode.IsControl(r) {
			return "", fmt.Errorf("%w: %q contains a control character", common.ErrInvalidFileID, id)
		}
	}

	return id, nil
}
