package models

// All lists every persisted model in dependency order.
func All() []any {
	return []any{
		&User{},
		&Submission{},
		&Image{},
		&Video{},
		&AudioFile{},
		&WebData{},
		&ValidationQueueItem{},
		&Admin{},
		&AdminAction{},
		&Notification{},
		&Comment{},
		&SubmissionStatusChange{},
	}
}
