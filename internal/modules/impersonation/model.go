package impersonation

import (
	"time"

	"github.com/google/uuid"
)

// exchangeWindow bounds how quickly an admin-issued session token must be
// redeemed. It does not bound the lifetime of the cookie minted from it.
const exchangeWindow = 5 * time.Minute

// cookieMaxAge controls how long the minted impersonation cookie lives.
const cookieMaxAge = 4 * time.Hour

// Session is a server-recorded grant allowing an admin identity to act as a
// given supplier for a bounded time. EndedAt nil means the session is still
// open. Created by the admin tool; this service only redeems and ends it.
type Session struct {
	ID          uuid.UUID  `json:"id"`
	AdminUserID uuid.UUID  `json:"admin_user_id"`
	SupplierID  *uuid.UUID `json:"supplier_id,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`

	// Joined display names; normalized to plain strings at the repository
	// boundary regardless of how the join is shaped.
	SupplierName string `json:"supplier_name,omitempty"`
	AdminName    string `json:"admin_name,omitempty"`
}

// CookiePayload is what the browser carries between requests, opaque to it.
type CookiePayload struct {
	SessionID    string `json:"sessionId"`
	SupplierID   string `json:"supplierId"`
	SupplierName string `json:"supplierName"`
	AdminName    string `json:"adminName"`
}
