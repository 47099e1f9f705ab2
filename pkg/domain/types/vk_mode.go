package types

// VKMode represents how the VK content import operates
type VKMode string

const (
	// VKModeOff disables the integration entirely
	VKModeOff VKMode = "off"
	// VKModeAuto imports new wall posts on a schedule
	VKModeAuto VKMode = "auto"
	// VKModeManual imports only when an administrator triggers a fetch
	VKModeManual VKMode = "manual"
)

// IsValid checks if the VK mode is valid
func (m VKMode) IsValid() bool {
	switch m {
	case VKModeOff, VKModeAuto, VKModeManual:
		return true
	default:
		return false
	}
}

// String returns the string representation of the VK mode
func (m VKMode) String() string {
	return string(m)
}
