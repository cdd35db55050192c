// Package xbox resolves Bedrock player identities: a chosen gamertag is
// looked up against an external profile service to obtain the numeric XUID,
// which is then rendered as the UUID-form identity the game server's
// whitelist plugin expects.
package xbox

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// XUIDToUUID converts a decimal XUID string into the canonical 36-character
// hyphenated identity string: the value is placed big-endian in the low
// bytes of a 16-byte UUID, which yields the zero-padded 8-4-4-4-12 form
// (e.g. "1" -> "00000000-0000-0000-0000-000000000001").
func XUIDToUUID(xuid string) (string, error) {
	n, err := strconv.ParseUint(xuid, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid xuid %q: %w", xuid, err)
	}

	var raw [16]byte
	binary.BigEndian.PutUint64(raw[8:], n)

	id, err := uuid.FromBytes(raw[:])
	if err != nil {
		return "", fmt.Errorf("xuid to uuid: %w", err)
	}
	return id.String(), nil
}
