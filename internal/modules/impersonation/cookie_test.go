package impersonation

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func requestWithCookie(value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: value})
	return req
}

func TestCookieCodecRoundTrip(t *testing.T) {
	codec := NewCookieCodec(testCookieKey, false)
	payload := &CookiePayload{
		SessionID:    uuid.NewString(),
		SupplierID:   uuid.NewString(),
		SupplierName: "Acme Foods",
		AdminName:    "Dana Ops",
	}

	cookie := codec.NewCookie(payload)
	imp, ok := codec.Decode(requestWithCookie(cookie.Value))
	if !ok {
		t.Fatal("signed cookie did not decode")
	}
	if imp.SessionID != payload.SessionID || imp.SupplierID != payload.SupplierID ||
		imp.SupplierName != "Acme Foods" || imp.AdminName != "Dana Ops" {
		t.Fatalf("payload mismatch: %+v", imp)
	}
}

func TestCookieCodecRejectsUnsignedPayload(t *testing.T) {
	codec := NewCookieCodec(testCookieKey, false)

	// A client can write any bytes it likes into the cookie; only a token
	// signed with the server key may establish an impersonation.
	raw, _ := json.Marshal(&CookiePayload{
		SupplierID:   uuid.NewString(),
		SupplierName: "Forged Co",
	})
	forged := base64.RawURLEncoding.EncodeToString(raw)

	if _, ok := codec.Decode(requestWithCookie(forged)); ok {
		t.Fatal("hand-crafted unsigned cookie must not decode")
	}
}

func TestCookieCodecRejectsForeignSignature(t *testing.T) {
	codec := NewCookieCodec(testCookieKey, false)
	other := NewCookieCodec([]byte("some-other-key"), false)

	cookie := other.NewCookie(&CookiePayload{
		SessionID:  uuid.NewString(),
		SupplierID: uuid.NewString(),
	})
	if _, ok := codec.Decode(requestWithCookie(cookie.Value)); ok {
		t.Fatal("cookie signed with a different key must not decode")
	}
}

func TestCookieCodecRejectsEmptySupplier(t *testing.T) {
	codec := NewCookieCodec(testCookieKey, false)

	cookie := codec.NewCookie(&CookiePayload{SessionID: uuid.NewString()})
	if _, ok := codec.Decode(requestWithCookie(cookie.Value)); ok {
		t.Fatal("cookie without a supplier id must not decode")
	}
}
