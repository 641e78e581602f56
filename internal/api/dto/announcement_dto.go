package dto

import "time"

// PublishAnnouncementRequest payload.
type PublishAnnouncementRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// AnnouncementResponse response.
type AnnouncementResponse struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}
