package models

import "time"

// Blog audit actions.
const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
)

// BlogAudit is one recorded change to a blog. Title is the title the blog had
// after the change, or before it for a delete. Changed lists the fields an
// update altered, by their JSON names.
type BlogAudit struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Action    string    `json:"action"`
	BlogID    int64     `json:"blogId"`
	Title     string    `json:"title"`
	Changed   []string  `json:"changed,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChangedFields returns the editable fields that differ between before and after.
func ChangedFields(before, after Blog) []string {
	var changed []string
	if before.Title != after.Title {
		changed = append(changed, "title")
	}
	if before.Content != after.Content {
		changed = append(changed, "content")
	}
	if before.HashTags != after.HashTags {
		changed = append(changed, "hashTags")
	}
	if before.Img != after.Img {
		changed = append(changed, "img")
	}
	return changed
}
