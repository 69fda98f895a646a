package domain

// Visibility values (lower-cased) that make a catalog entity appear in public listings
const (
	VisibilityShow   = "mostrar"
	VisibilityShowEN = "show"
)

// NotifyChannel selects where new-order alerts are delivered
type NotifyChannel string

const (
	NotifyChannelEmail    NotifyChannel = "email"
	NotifyChannelWhatsApp NotifyChannel = "whatsapp"
	NotifyChannelNone     NotifyChannel = "none"
)

// IsValid checks if the channel is one of the known values
func (c NotifyChannel) IsValid() bool {
	switch c {
	case NotifyChannelEmail, NotifyChannelWhatsApp, NotifyChannelNone:
		return true
	default:
		return false
	}
}
