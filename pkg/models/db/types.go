package db

import "time"

type Download struct {
	ID        int64      `json:"id"`
	FileName  string     `json:"file_name"`
	ClientIP  string     `json:"client_ip"`
	Ranged    bool       `json:"ranged"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
