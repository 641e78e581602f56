package domain

import "time"

// PlatformAuthor is the author name used for platform-wide announcements.
const PlatformAuthor = "Get.A.Room"

// Announcement is append-only and has no lifecycle.
type Announcement struct {
	ID        string
	Author    string
	Title     string
	Content   string
	Date      time.Time
	CreatedAt time.Time
}
