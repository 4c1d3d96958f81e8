package model

import "time"

// Summary : запись об одном обработанном документе.
// ExtractedText — указатель: записи, созданные до появления колонки, хранят NULL
type Summary struct {
	UUID             string    `db:"uuid" json:"id"`
	OwnerUUID        string    `db:"owner_uuid" json:"owner_id"`
	FilenameOriginal string    `db:"filename_original" json:"original_filename"`
	Title            string    `db:"title" json:"title"`
	StoragePath      string    `db:"storage_path" json:"storage_path"`
	ExtractedText    *string   `db:"extracted_text" json:"extracted_text,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// GetSummaryResult : запись вместе с pre-signed URL на готовый PDF
type GetSummaryResult struct {
	Summary *Summary
	GetURL  string
}
