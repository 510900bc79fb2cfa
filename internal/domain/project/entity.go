package project

import "time"

// Repository mirrors the subset of the GitHub repository payload the Projects view renders.
type Repository struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	FullName        string     `json:"full_name,omitempty"`
	Description     string     `json:"description"`
	HTMLURL         string     `json:"html_url"`
	Language        string     `json:"language"`
	StargazersCount int        `json:"stargazers_count"`
	ForksCount      int        `json:"forks_count"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}
