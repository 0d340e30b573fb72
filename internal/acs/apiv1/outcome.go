package apiv1

import "encoding/base64"

// Outcome ECI values and the fixed failure authenticationValue placeholder
// (spec.md §4.3.4).
const (
	eciSuccess                 = "02"
	eciFailure                 = "07"
	authenticationValueFailure = "AAAAAAAAAAAAAAAAAAAAAA=="

	// otpCorrect is the only OTP string either challenge endpoint accepts.
	otpCorrect = "1234"
)

// authenticationValueForOutcome implements spec.md §4.3.4's authentication
// value policy. On success it returns a 20-byte CAVV-shaped payload
// (bytes {0x02, 0x01} followed by 18 bytes b[i] = (17*i + 13 + 0x4A) mod
// 256), base64-standard-encoded; on failure it returns the fixed
// placeholder. The ECI distinguishes the two outcomes.
func authenticationValueForOutcome(success bool) (value, eci string) {
	if !success {
		return authenticationValueFailure, eciFailure
	}

	payload := make([]byte, 20)
	payload[0] = 0x02
	payload[1] = 0x01
	for i := 0; i < 18; i++ {
		payload[2+i] = byte((17*i + 13 + 0x4A) % 256)
	}
	return base64.StdEncoding.EncodeToString(payload), eciSuccess
}

// transStatusForOutcome maps an OTP check outcome to the transStatus
// carried on the synthesised RReq and the challenge completion response.
func transStatusForOutcome(success bool) string {
	if success {
		return "Y"
	}
	return "N"
}
