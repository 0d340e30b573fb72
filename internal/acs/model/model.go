// Package model holds the wire DTOs and the persisted transaction record
// for the access control server.
package model

// VersionRequest is the body of POST /3ds/version.
type VersionRequest struct {
	CardNumber string `json:"cardNumber" validate:"required"`
}

// CardRange describes a single PAN range and the protocol versions the ACS
// advertises for it.
type CardRange struct {
	ACSInfoInd             []string `json:"acsInfoInd"`
	StartRange             string   `json:"startRange"`
	ACSEndProtocolVersion  string   `json:"acsEndProtocolVersion"`
	ACSStartProtocolVersion string  `json:"acsStartProtocolVersion"`
	EndRange               string   `json:"endRange"`
}

// VersionResponse is the body returned from POST /3ds/version.
type VersionResponse struct {
	ThreeDSServerTransID string      `json:"threeDSServerTransID"`
	CardRanges           []CardRange `json:"cardRanges"`
}

// Phone is a CC/subscriber pair, used for home/mobile/work phone fields.
type Phone struct {
	CC         string `json:"cc"`
	Subscriber string `json:"subscriber"`
}

// ThreeDSRequestorAuthenticationInfo carries the 3DS requestor's own
// authentication method and timestamp for the cardholder.
type ThreeDSRequestorAuthenticationInfo struct {
	ThreeDSReqAuthMethod    string `json:"threeDSReqAuthMethod"`
	ThreeDSReqAuthTimestamp string `json:"threeDSReqAuthTimestamp"`
}

// ThreeDSRequestor describes the merchant-side requestor of the authentication.
type ThreeDSRequestor struct {
	ThreeDSRequestorAuthenticationInd  string                              `json:"threeDSRequestorAuthenticationInd"`
	ThreeDSRequestorAuthenticationInfo ThreeDSRequestorAuthenticationInfo `json:"threeDSRequestorAuthenticationInfo"`
	ThreeDSRequestorChallengeInd       string                              `json:"threeDSRequestorChallengeInd" validate:"required"`
}

// CardholderAccount carries the PAN and related card fields.
type CardholderAccount struct {
	AcctType        string `json:"acctType"`
	CardExpiryDate  string `json:"cardExpiryDate"`
	SchemeID        string `json:"schemeId"`
	AcctNumber      string `json:"acctNumber" validate:"required"`
	CardSecurityCode string `json:"cardSecurityCode"`
}

// Cardholder carries the billing/shipping/contact details for the cardholder.
type Cardholder struct {
	AddrMatch        string `json:"addrMatch"`
	BillAddrCity     string `json:"billAddrCity"`
	BillAddrCountry  string `json:"billAddrCountry"`
	BillAddrLine1    string `json:"billAddrLine1"`
	BillAddrLine2    string `json:"billAddrLine2"`
	BillAddrLine3    string `json:"billAddrLine3"`
	BillAddrPostCode string `json:"billAddrPostCode"`
	Email            string `json:"email"`
	HomePhone        Phone  `json:"homePhone"`
	MobilePhone      Phone  `json:"mobilePhone"`
	WorkPhone        Phone  `json:"workPhone"`
	CardholderName   string `json:"cardholderName"`
	ShipAddrCity     string `json:"shipAddrCity"`
	ShipAddrCountry  string `json:"shipAddrCountry"`
	ShipAddrLine1    string `json:"shipAddrLine1"`
	ShipAddrLine2    string `json:"shipAddrLine2"`
	ShipAddrLine3    string `json:"shipAddrLine3"`
	ShipAddrPostCode string `json:"shipAddrPostCode"`
}

// Purchase carries the transaction amount/currency/date being authenticated.
type Purchase struct {
	PurchaseInstalData int    `json:"purchaseInstalData"`
	PurchaseAmount     int64  `json:"purchaseAmount"`
	PurchaseCurrency   string `json:"purchaseCurrency"`
	PurchaseExponent   int    `json:"purchaseExponent"`
	PurchaseDate       string `json:"purchaseDate" validate:"required"`
	RecurringExpiry    string `json:"recurringExpiry"`
	RecurringFrequency int    `json:"recurringFrequency"`
	TransType          string `json:"transType"`
}

// Acquirer identifies the acquiring bank and merchant id on its side.
type Acquirer struct {
	AcquirerBIN        string `json:"acquirerBIN"`
	AcquirerMerchantID string `json:"acquirerMerchantID"`
}

// Merchant identifies the merchant initiating the authentication.
type Merchant struct {
	MCC                              string `json:"mcc"`
	MerchantCountryCode              string `json:"merchantCountryCode"`
	ThreeDSRequestorID               string `json:"threeDSRequestorID"`
	ThreeDSRequestorName             string `json:"threeDSRequestorName"`
	MerchantName                     string `json:"merchantName"`
	ResultsResponseNotificationURL   string `json:"resultsResponseNotificationURL"`
	NotificationURL                  string `json:"notificationURL"`
}

// BrowserInformation describes the cardholder's browser, present for
// browser-channel (deviceChannel "02") authentications.
type BrowserInformation struct {
	BrowserAcceptHeader        string `json:"browserAcceptHeader"`
	BrowserIP                  string `json:"browserIP"`
	BrowserLanguage            string `json:"browserLanguage"`
	BrowserColorDepth          string `json:"browserColorDepth"`
	BrowserScreenHeight        int    `json:"browserScreenHeight"`
	BrowserScreenWidth         int    `json:"browserScreenWidth"`
	BrowserTZ                  int    `json:"browserTZ"`
	BrowserUserAgent           string `json:"browserUserAgent"`
	ChallengeWindowSize        string `json:"challengeWindowSize"`
	BrowserJavaEnabled         bool   `json:"browserJavaEnabled"`
	BrowserJavascriptEnabled   bool   `json:"browserJavascriptEnabled"`
}

// DeviceRenderOptions describes what the SDK is capable of rendering,
// present for mobile-channel (deviceChannel "01") authentications.
type DeviceRenderOptions struct {
	SDKInterface           string   `json:"sdkInterface"`
	SDKUiType              []string `json:"sdkUiType"`
	SDKAuthenticationType  []string `json:"sdkAuthenticationType"`
}

// SDKEphemeralPublicKey is the SDK's ephemeral P-256 public key, nested
// form. See AReq.Kty/Crv/X/Y for the flat form the ingest layer also
// accepts (spec.md §9, "SDK ephemeral key ingestion").
type SDKEphemeralPublicKey struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

// AReq is the authentication request body of POST /3ds/authenticate.
type AReq struct {
	ThreeDSServerTransID               string                 `json:"threeDSServerTransID" validate:"required,uuid4"`
	SDKTransID                         string                 `json:"sdkTransID"`
	DeviceChannel                      string                 `json:"deviceChannel" validate:"required,oneof=01 02 03"`
	MessageCategory                    string                 `json:"messageCategory"`
	PreferredProtocolVersion           string                 `json:"preferredProtocolVersion"`
	EnforcePreferredProtocolVersion    bool                   `json:"enforcePreferredProtocolVersion"`
	ThreeDSCompInd                     string                 `json:"threeDSCompInd"`
	ThreeDSRequestor                   ThreeDSRequestor       `json:"threeDSRequestor" validate:"required"`
	CardholderAccount                  CardholderAccount      `json:"cardholderAccount" validate:"required"`
	Cardholder                         Cardholder             `json:"cardholder"`
	Purchase                           Purchase               `json:"purchase" validate:"required"`
	Acquirer                           Acquirer               `json:"acquirer"`
	Merchant                           Merchant               `json:"merchant"`
	BrowserInformation                 *BrowserInformation    `json:"browserInformation,omitempty"`
	DeviceRenderOptions                DeviceRenderOptions    `json:"deviceRenderOptions"`
	SDKEphemeralPublicKey              *SDKEphemeralPublicKey `json:"sdkEphemeralPublicKey,omitempty"`
	// Kty/Crv/X/Y carry the SDK ephemeral public key in the flat, top-level
	// shape some SDKs send instead of the nested sdkEphemeralPublicKey
	// object; Normalize reconciles the two into a single internal shape.
	Kty string `json:"Kty,omitempty"`
	Crv string `json:"Crv,omitempty"`
	X   string `json:"X,omitempty"`
	Y   string `json:"Y,omitempty"`
}

// Normalize returns the SDK ephemeral public key regardless of which of
// the two accepted wire shapes the caller used, or nil if neither is
// present (spec.md §9, "SDK ephemeral key ingestion").
func (r *AReq) Normalize() *SDKEphemeralPublicKey {
	if r.SDKEphemeralPublicKey != nil {
		return r.SDKEphemeralPublicKey
	}
	if r.Kty != "" && r.Crv != "" && r.X != "" && r.Y != "" {
		return &SDKEphemeralPublicKey{Kty: r.Kty, Crv: r.Crv, X: r.X, Y: r.Y}
	}
	return nil
}

// AcsRenderingTypeResponse is an informational rendering-mode hint carried
// on the mobile ARes (spec.md Non-goals: "conformance to EMVCo field lists
// beyond what the cryptographic pipeline requires" is out of scope, so this
// rides along as non-authoritative JSON).
type AcsRenderingTypeResponse struct {
	DeviceUserInterfaceMode string `json:"deviceUserInterfaceMode"`
	ACSInterface            string `json:"acsInterface"`
	ACSUiTemplate           string `json:"acsUiTemplate"`
}

// BroadInfoDescription is the free-text body of a BroadInfo notice.
type BroadInfoDescription struct {
	Message string `json:"message"`
}

// BroadInfo is an informational issuer-operator notice, carried unchanged
// from the original mock's ARes payload.
type BroadInfo struct {
	Category    string                `json:"category"`
	Severity    string                `json:"severity"`
	Source      string                `json:"source"`
	Recipients  []string              `json:"recipients"`
	Description BroadInfoDescription  `json:"description"`
	ExpDate     string                `json:"expDate"`
}

// AuthenticationResponse is the `authenticationResponse` block of ARes.
type AuthenticationResponse struct {
	ThreeDSRequestorAppURLInd    string                    `json:"threeDSRequestorAppURLInd,omitempty"`
	ACSOperatorID                string                    `json:"acsOperatorID"`
	DSReferenceNumber            string                    `json:"dsReferenceNumber"`
	ECI                          string                    `json:"eci"`
	ACSSignedContent             string                    `json:"acsSignedContent,omitempty"`
	DSTransID                    string                    `json:"dsTransID"`
	ACSRenderingType             *AcsRenderingTypeResponse `json:"acsRenderingType,omitempty"`
	MessageType                  string                    `json:"messageType"`
	ThreeDSServerTransID         string                    `json:"threeDSServerTransID"`
	ACSTransID                   string                    `json:"acsTransID"`
	BroadInfo                    *BroadInfo                `json:"broadInfo,omitempty"`
	AuthenticationMethod         string                    `json:"authenticationMethod,omitempty"`
	TransStatusReason            string                    `json:"transStatusReason,omitempty"`
	DeviceInfoRecognisedVersion  string                    `json:"deviceInfoRecognisedVersion,omitempty"`
	ACSChallengeMandated         string                    `json:"acsChallengeMandated"`
	AuthenticationType           string                    `json:"authenticationType"`
	SDKTransID                   string                    `json:"sdkTransID,omitempty"`
	AuthenticationValue          string                    `json:"authenticationValue"`
	TransStatus                  string                    `json:"transStatus"`
	MessageVersion                string                   `json:"messageVersion"`
	ACSReferenceNumber           string                    `json:"acsReferenceNumber"`
	ACSUrl                       string                    `json:"acsUrl,omitempty"`
}

// ChallengeRequest is the envelope the SDK receives (base64-encoded on
// ARes) and later posts back as `creq` to the browser trigger-otp endpoint.
type ChallengeRequest struct {
	MessageType          string `json:"messageType"`
	ThreeDSServerTransID string `json:"threeDSServerTransID"`
	ACSTransID           string `json:"acsTransID"`
	ChallengeWindowSize  string `json:"challengeWindowSize"`
	MessageVersion       string `json:"messageVersion"`
}

// AuthenticateResponse is the body returned from POST /3ds/authenticate.
type AuthenticateResponse struct {
	PurchaseDate                     string                  `json:"purchaseDate"`
	Base64EncodedChallengeRequest     string                  `json:"base64EncodedChallengeRequest,omitempty"`
	ACSUrl                            string                  `json:"acsUrl,omitempty"`
	ThreeDSServerTransID              string                  `json:"threeDSServerTransID"`
	AuthenticationResponse            AuthenticationResponse  `json:"authenticationResponse"`
	ChallengeRequest                  ChallengeRequest        `json:"challengeRequest"`
	ACSChallengeMandated              string                  `json:"acsChallengeMandated"`
	TransStatus                       string                  `json:"transStatus"`
	// AuthenticateRequest echoes the inbound AReq plus the mock 3DS
	// Server's own informational identity fields, matching the original's
	// authentication_request field (spec.md §9 supplement).
	AuthenticateRequest map[string]any `json:"authenticateRequest"`
}

// AcsRenderingType describes the rendering mode used for a completed
// challenge, echoed on ResultsRequest/ResultsResponse.
type AcsRenderingType struct {
	ACSUiTemplate string `json:"acsUiTemplate"`
	ACSInterface  string `json:"acsInterface"`
}

// RReq is the results-reporting request body of POST /3ds/results.
type RReq struct {
	ACSTransID            string           `json:"acsTransID"`
	MessageCategory       string           `json:"messageCategory"`
	ECI                   string           `json:"eci"`
	MessageType           string           `json:"messageType"`
	ACSRenderingType      AcsRenderingType `json:"acsRenderingType"`
	DSTransID             string           `json:"dsTransID"`
	AuthenticationMethod  string           `json:"authenticationMethod"`
	AuthenticationType    string           `json:"authenticationType"`
	MessageVersion        string           `json:"messageVersion"`
	SDKTransID            string           `json:"sdkTransID,omitempty"`
	InteractionCounter    string           `json:"interactionCounter"`
	AuthenticationValue   string           `json:"authenticationValue"`
	TransStatus           string           `json:"transStatus"`
	ThreeDSServerTransID  string           `json:"threeDSServerTransID" validate:"required,uuid4"`
}

// RRes is the response to POST /3ds/results.
type RRes struct {
	DSTransID            string `json:"dsTransID"`
	MessageType           string `json:"messageType"`
	ThreeDSServerTransID  string `json:"threeDSServerTransID"`
	ACSTransID            string `json:"acsTransID"`
	SDKTransID            string `json:"sdkTransID,omitempty"`
	ResultsStatus         string `json:"resultsStatus"`
	MessageVersion        string `json:"messageVersion"`
}

// FinalRequest is the body of POST /3ds/final.
type FinalRequest struct {
	ThreeDSServerTransID string `json:"threeDSServerTransID" validate:"required,uuid4"`
}

// FinalResponse is the body returned from POST /3ds/final.
type FinalResponse struct {
	ECI                  string `json:"eci"`
	AuthenticationValue  string `json:"authenticationValue"`
	ThreeDSServerTransID string `json:"threeDSServerTransID"`
	ResultsResponse      RRes   `json:"resultsResponse"`
	ResultsRequest       RReq   `json:"resultsRequest"`
	TransStatus          string `json:"transStatus"`
}

// EphemeralKeyPair is the ACS's own P-256 ephemeral key, minted for mobile
// challenge flows.
type EphemeralKeyPair struct {
	PrivateKey string           `json:"privateKey"`
	PublicKey  AcsEphemPubKey   `json:"publicKey"`
}

// AcsEphemPubKey is a P-256 public key in JWK-shaped form.
type AcsEphemPubKey struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

// TransactionRecord is the value stored under key serverTransId (spec.md §3).
type TransactionRecord struct {
	AuthenticateRequest    AReq                   `json:"authenticateRequest"`
	ACSTransID             string                 `json:"acsTransId"`
	DSTransID              string                 `json:"dsTransId"`
	SDKTransID             string                 `json:"sdkTransId,omitempty"`
	EphemeralKeys          *EphemeralKeyPair      `json:"ephemeralKeys,omitempty"`
	SDKEphemeralPublicKey  *SDKEphemeralPublicKey `json:"sdkEphemeralPublicKey,omitempty"`
	RedirectURL            string                 `json:"redirectUrl,omitempty"`
	ResultsRequest         *RReq                  `json:"resultsRequest,omitempty"`
}

// MobileCReq is the JSON payload carried inside the JWE the SDK posts to
// POST /challenge - the decrypted form of ChallengeRequest's envelope, sent
// twice per transaction (CReq#0 with no OTP, CReq#1 with the OTP entry).
type MobileCReq struct {
	MessageType          string `json:"messageType"`
	ThreeDSServerTransID string `json:"threeDSServerTransID"`
	ACSTransID           string `json:"acsTransID"`
	SDKTransID           string `json:"sdkTransID,omitempty"`
	SDKCounterStoA       string `json:"sdkCounterStoA"`
	MessageVersion       string `json:"messageVersion"`
	// ChallengeDataEntry carries the cardholder's OTP entry; its absence
	// distinguishes CReq#0 (prompt) from CReq#1 (submission).
	ChallengeDataEntry string `json:"challengeDataEntry,omitempty"`
}

// MobileCRes is the JSON payload the ACS encrypts and returns from
// POST /challenge, either an OTP prompt (CReq#0 reply) or the completed
// outcome (CReq#1 reply).
type MobileCRes struct {
	MessageType               string `json:"messageType"`
	ThreeDSServerTransID      string `json:"threeDSServerTransID"`
	ACSTransID                string `json:"acsTransID"`
	SDKTransID                string `json:"sdkTransID,omitempty"`
	ACSCounterAtoS            string `json:"acsCounterAtoS"`
	MessageVersion            string `json:"messageVersion"`
	ChallengeCompletionInd    string `json:"challengeCompletionInd"`
	TransStatus               string `json:"transStatus,omitempty"`
	ACSUiType                 string `json:"acsUiType,omitempty"`
	ChallengeInfoHeader       string `json:"challengeInfoHeader,omitempty"`
	ChallengeInfoLabel        string `json:"challengeInfoLabel,omitempty"`
	SubmitAuthenticationLabel string `json:"submitAuthenticationLabel,omitempty"`
}

// AcsTriggerOtpRequest is the form body of POST /processor/mock/acs/trigger-otp.
type AcsTriggerOtpRequest struct {
	Creq string `form:"creq" validate:"required"`
}

// AcsVerifyOtpRequest is the form body of POST /processor/mock/acs/verify-otp.
type AcsVerifyOtpRequest struct {
	OTP                  string `form:"otp" validate:"required"`
	ThreeDSServerTransID string `form:"threeDSServerTransID" validate:"required,uuid4"`
}

// HealthReply is the body returned from GET /health.
type HealthReply struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}
