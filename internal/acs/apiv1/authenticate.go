package apiv1

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"

	"acs/internal/acs/model"
	"acs/pkg/acscrypto"
	"acs/pkg/helpers"
	pkgmodel "acs/pkg/model"
)

// Constants describing this mock 3DS Server's own identity, echoed back on
// every AReq/ARes exchange (original_source/src/handlers.rs).
const (
	threeDSServerOperatorID = "10073246"
	threeDSServerRefNumber  = "3DS_LOA_SER_JTPL_020200_00841"
	threeDSServerURL        = "https://visa.3ds.certification.juspay.in/3ds/results"
	dsReferenceNumber       = "MOCK_DS"
	areqAuthenticationValue = "QWErty123+/ABCD5678ghijklmn=="
)

// Authenticate processes an AReq and returns an ARes (spec.md §4.3.2).
func (c *Client) Authenticate(ctx context.Context, req *model.AReq) (*model.AuthenticateResponse, error) {
	ctx, span := c.tracer.Start(ctx, "apiv1:Client:Authenticate")
	defer span.End()

	isMobile := req.DeviceChannel == "01"
	if isMobile && req.SDKTransID == "" {
		return nil, fmt.Errorf("%w: sdkTransId is required for mobile flows", helpers.ErrClientInput)
	}

	shouldChallenge := challengeDecision(req.ThreeDSRequestor.ThreeDSRequestorChallengeInd, req.CardholderAccount.AcctNumber)
	transStatus, challengeMandated := "Y", "N"
	if shouldChallenge {
		transStatus, challengeMandated = "C", "Y"
	}
	acsOperatorID, acsRefNumber := acsIdentity(c.cfg.ACS.Identity, req.ThreeDSRequestor.ThreeDSRequestorChallengeInd)

	acsTransID := newUUID()
	dsTransID := newUUID()

	rec := &model.TransactionRecord{
		AuthenticateRequest:   *req,
		ACSTransID:            acsTransID,
		DSTransID:             dsTransID,
		SDKTransID:            req.SDKTransID,
		SDKEphemeralPublicKey: req.Normalize(),
		RedirectURL:           req.Merchant.NotificationURL,
	}

	var signedContent string
	if isMobile && shouldChallenge {
		signedContent = c.buildMobileChallengeMaterial(rec, acsTransID, acsRefNumber)
	}

	if err := c.store.Insert(ctx, req.ThreeDSServerTransID, rec); err != nil {
		return nil, err
	}

	challengeReq := model.ChallengeRequest{
		MessageType:          "CReq",
		ThreeDSServerTransID: req.ThreeDSServerTransID,
		ACSTransID:           acsTransID,
		ChallengeWindowSize:  "01",
		MessageVersion:       protocolVersion,
	}
	challengeReqJSON, err := json.Marshal(challengeReq)
	if err != nil {
		return nil, fmt.Errorf("%w: marshalling challenge request: %v", helpers.ErrInternal, err)
	}

	authResponse := buildAuthenticationResponse(req, isMobile, shouldChallenge, acsTransID, dsTransID,
		transStatus, challengeMandated, acsOperatorID, acsRefNumber, signedContent, c.cfg.Common.ServerBase)

	resp := &model.AuthenticateResponse{
		PurchaseDate:           req.Purchase.PurchaseDate,
		ThreeDSServerTransID:   req.ThreeDSServerTransID,
		AuthenticationResponse: authResponse,
		ChallengeRequest:       challengeReq,
		ACSChallengeMandated:   challengeMandated,
		TransStatus:            transStatus,
		AuthenticateRequest:    buildAuthenticateRequestEcho(req),
	}
	if shouldChallenge {
		resp.Base64EncodedChallengeRequest = base64.StdEncoding.EncodeToString(challengeReqJSON)
	}
	if shouldChallenge && !isMobile {
		resp.ACSUrl = c.cfg.Common.ServerBase + "/processor/mock/acs/trigger-otp"
	}

	return resp, nil
}

// challengeDecision implements spec.md §4.3.2's first-match-wins rule.
func challengeDecision(challengeInd, acctNumber string) bool {
	switch challengeInd {
	case "04":
		return true
	case "05":
		return false
	default:
		return len(acctNumber) >= 4 && acctNumber[len(acctNumber)-4:] == "4001"
	}
}

// acsIdentity implements spec.md §4.3.2's ACS identity mapping: the
// exemption indicator ("05") swaps both the operator id and the reference
// number used to sign/identify the ACS.
func acsIdentity(identity pkgmodel.ACSIdentity, challengeInd string) (operatorID, refNumber string) {
	if challengeInd == "05" {
		return "MOCK_ACS_NEW", identity.RefNumber2
	}
	return "MOCK_ACS", identity.RefNumber1
}

// buildMobileChallengeMaterial generates the ACS ephemeral key pair and the
// ACS signed content for a mobile+challenge AReq. On any failure it logs
// and returns an empty signed content, leaving rec.EphemeralKeys populated
// (if keygen succeeded) but acsSignedContent omitted from the eventual
// response, per spec.md §4.3.2's graceful degradation.
func (c *Client) buildMobileChallengeMaterial(rec *model.TransactionRecord, acsTransID, acsRefNumber string) string {
	pair, err := acscrypto.GenerateEphemeralKeyPair()
	if err != nil {
		c.log.Info("failed to generate acs ephemeral key pair", "error", err.Error())
		return ""
	}
	rec.EphemeralKeys = pair

	acsURL := acscrypto.CreateACSURL(c.cfg.Common.ServerBase)

	signedContent, err := acscrypto.CreateACSSignedContent(
		c.cfg.ACS.Identity.CertFilePath,
		c.cfg.ACS.Identity.KeyFilePath,
		acsTransID,
		acsRefNumber,
		acsURL,
		pair.PublicKey,
	)
	if err != nil {
		c.log.Info("failed to create acs signed content, omitting from response", "error", err.Error())
		return ""
	}

	return signedContent
}

func buildAuthenticationResponse(req *model.AReq, isMobile, shouldChallenge bool, acsTransID, dsTransID,
	transStatus, challengeMandated, acsOperatorID, acsRefNumber, signedContent, serverBase string) model.AuthenticationResponse {

	resp := model.AuthenticationResponse{
		ACSOperatorID:        acsOperatorID,
		DSReferenceNumber:    dsReferenceNumber,
		ECI:                  "05",
		DSTransID:            dsTransID,
		MessageType:          "ARes",
		ThreeDSServerTransID: req.ThreeDSServerTransID,
		ACSTransID:           acsTransID,
		ACSChallengeMandated: challengeMandated,
		AuthenticationType:   "02",
		AuthenticationValue:  areqAuthenticationValue,
		TransStatus:          transStatus,
		MessageVersion:       protocolVersion,
		ACSReferenceNumber:   acsRefNumber,
	}

	if isMobile {
		resp.ThreeDSRequestorAppURLInd = "N"
		resp.ACSSignedContent = signedContent
		resp.ACSRenderingType = &model.AcsRenderingTypeResponse{
			DeviceUserInterfaceMode: "01",
			ACSInterface:            "01",
			ACSUiTemplate:           "01",
		}
		resp.BroadInfo = &model.BroadInfo{
			Category:   "01",
			Severity:   "04",
			Source:     "03",
			Recipients: []string{"02", "01", "03"},
			Description: model.BroadInfoDescription{
				Message: "TLS 1.x will be turned off starting summer 2019",
			},
			ExpDate: "20241231",
		}
		resp.AuthenticationMethod = "02"
		resp.TransStatusReason = "15"
		resp.DeviceInfoRecognisedVersion = "1.3"
		resp.SDKTransID = req.SDKTransID
	} else if shouldChallenge {
		resp.ACSUrl = serverBase + "/processor/mock/acs/trigger-otp"
	}

	return resp
}

// buildAuthenticateRequestEcho reconstructs the field-by-field echo object
// original_source/src/handlers.rs builds via serde_json::json!, used to
// populate AuthenticateResponse.AuthenticateRequest.
func buildAuthenticateRequestEcho(req *model.AReq) map[string]any {
	browser := req.BrowserInformation
	if browser == nil {
		browser = &model.BrowserInformation{}
	}

	return map[string]any{
		"messageType":                       "AReq",
		"threeDSServerTransID":              req.ThreeDSServerTransID,
		"deviceChannel":                     req.DeviceChannel,
		"messageCategory":                   req.MessageCategory,
		"messageVersion":                    protocolVersion,
		"threeDSCompInd":                    req.ThreeDSCompInd,
		"threeDSServerOperatorID":           threeDSServerOperatorID,
		"threeDSServerRefNumber":            threeDSServerRefNumber,
		"threeDSServerURL":                  threeDSServerURL,
		"threeDSRequestorChallengeInd":      req.ThreeDSRequestor.ThreeDSRequestorChallengeInd,
		"threeDSRequestorAuthenticationInd": req.ThreeDSRequestor.ThreeDSRequestorAuthenticationInd,
		"threeDSRequestorAuthenticationInfo": map[string]any{
			"threeDSReqAuthMethod":    req.ThreeDSRequestor.ThreeDSRequestorAuthenticationInfo.ThreeDSReqAuthMethod,
			"threeDSReqAuthTimestamp": req.ThreeDSRequestor.ThreeDSRequestorAuthenticationInfo.ThreeDSReqAuthTimestamp,
		},
		"acctType":         req.CardholderAccount.AcctType,
		"acctNumber":       req.CardholderAccount.AcctNumber,
		"cardExpiryDate":   req.CardholderAccount.CardExpiryDate,
		"cardSecurityCode": req.CardholderAccount.CardSecurityCode,
		"addrMatch":        req.Cardholder.AddrMatch,
		"billAddrCity":     req.Cardholder.BillAddrCity,
		"billAddrCountry":  req.Cardholder.BillAddrCountry,
		"billAddrLine1":    req.Cardholder.BillAddrLine1,
		"billAddrLine2":    req.Cardholder.BillAddrLine2,
		"billAddrLine3":    req.Cardholder.BillAddrLine3,
		"billAddrPostCode": req.Cardholder.BillAddrPostCode,
		"email":            req.Cardholder.Email,
		"homePhone": map[string]any{
			"cc":         req.Cardholder.HomePhone.CC,
			"subscriber": req.Cardholder.HomePhone.Subscriber,
		},
		"mobilePhone": map[string]any{
			"cc":         req.Cardholder.MobilePhone.CC,
			"subscriber": req.Cardholder.MobilePhone.Subscriber,
		},
		"workPhone": map[string]any{
			"cc":         req.Cardholder.WorkPhone.CC,
			"subscriber": req.Cardholder.WorkPhone.Subscriber,
		},
		"cardholderName":       req.Cardholder.CardholderName,
		"shipAddrCity":         req.Cardholder.ShipAddrCity,
		"shipAddrCountry":      req.Cardholder.ShipAddrCountry,
		"shipAddrLine1":        req.Cardholder.ShipAddrLine1,
		"shipAddrLine2":        req.Cardholder.ShipAddrLine2,
		"shipAddrLine3":        req.Cardholder.ShipAddrLine3,
		"shipAddrPostCode":     req.Cardholder.ShipAddrPostCode,
		"purchaseDate":         req.Purchase.PurchaseDate,
		"purchaseAmount":       strconv.FormatInt(req.Purchase.PurchaseAmount, 10),
		"purchaseCurrency":     req.Purchase.PurchaseCurrency,
		"purchaseExponent":     strconv.Itoa(req.Purchase.PurchaseExponent),
		"recurringExpiry":      req.Purchase.RecurringExpiry,
		"recurringFrequency":   strconv.Itoa(req.Purchase.RecurringFrequency),
		"transType":            req.Purchase.TransType,
		"acquirerBIN":          req.Acquirer.AcquirerBIN,
		"acquirerMerchantID":   req.Acquirer.AcquirerMerchantID,
		"mcc":                  req.Merchant.MCC,
		"merchantCountryCode":  req.Merchant.MerchantCountryCode,
		"threeDSRequestorID":   req.Merchant.ThreeDSRequestorID,
		"threeDSRequestorName": req.Merchant.ThreeDSRequestorName,
		"merchantName":         req.Merchant.MerchantName,
		"notificationURL":      req.Merchant.NotificationURL,
		"threeDSRequestorURL":  req.Merchant.NotificationURL,
		"browserAcceptHeader":      browser.BrowserAcceptHeader,
		"browserIP":                browser.BrowserIP,
		"browserLanguage":          browser.BrowserLanguage,
		"browserColorDepth":        browser.BrowserColorDepth,
		"browserScreenHeight":      strconv.Itoa(browser.BrowserScreenHeight),
		"browserScreenWidth":       strconv.Itoa(browser.BrowserScreenWidth),
		"browserTZ":                strconv.Itoa(browser.BrowserTZ),
		"browserUserAgent":         browser.BrowserUserAgent,
		"browserJavaEnabled":       browser.BrowserJavaEnabled,
		"browserJavascriptEnabled": browser.BrowserJavascriptEnabled,
		"deviceRenderOptions": map[string]any{
			"sdkInterface": req.DeviceRenderOptions.SDKInterface,
			"sdkUiType":    req.DeviceRenderOptions.SDKUiType,
		},
	}
}
