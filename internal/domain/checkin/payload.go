package checkin

import (
	"fmt"
	"strings"
)

// payloadPrefix is the literal first field of every valid QR payload.
const payloadPrefix = "ORG"

// Token is the decoded identity token binding a physical site to an
// organization and network.
type Token struct {
	OrgID     string
	OrgName   string
	NetworkID string
}

// EncodePayload produces the pipe-delimited QR payload
// "ORG|<orgId>|<orgName>|<networkId>". Pipe characters inside names are
// not escaped; that is a known limitation of the format.
func EncodePayload(orgID, orgName, networkID string) string {
	return strings.Join([]string{payloadPrefix, orgID, orgName, networkID}, "|")
}

// DecodePayload parses a QR payload. A string decodes successfully only
// if, after splitting on "|", the first field is the literal "ORG" and
// at least four fields are present. Extra fields are ignored.
func DecodePayload(text string) (Token, error) {
	fields := strings.Split(text, "|")
	if len(fields) < 4 || fields[0] != payloadPrefix {
		return Token{}, ErrInvalidPayload
	}

	return Token{
		OrgID:     fields[1],
		OrgName:   fields[2],
		NetworkID: fields[3],
	}, nil
}

// IPMismatchError reports a device on the wrong network. Both IP values
// are carried for operator diagnosis.
type IPMismatchError struct {
	DeviceIP   string
	RequiredIP string
}

func (e *IPMismatchError) Error() string {
	return fmt.Sprintf("Device IP: %s, Required IP: %s", e.DeviceIP, e.RequiredIP)
}
