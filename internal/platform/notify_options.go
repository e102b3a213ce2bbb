// Package platform wraps the host OS notification mechanisms.
package platform

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification
	// center should display alongside the notification if supported.
	IconPath string
}
