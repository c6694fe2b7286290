package domain

import "time"

// The entities below back operations whose upstream APIs require partner
// access. They are returned empty or rejected, never populated.

// JobType of a job posting.
type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeTemporary  JobType = "TEMPORARY"
	JobTypeInternship JobType = "INTERNSHIP"
)

// ExperienceLevel of a job posting.
type ExperienceLevel string

const (
	ExperienceEntryLevel ExperienceLevel = "ENTRY_LEVEL"
	ExperienceAssociate  ExperienceLevel = "ASSOCIATE"
	ExperienceMidSenior  ExperienceLevel = "MID_SENIOR"
	ExperienceDirector   ExperienceLevel = "DIRECTOR"
	ExperienceExecutive  ExperienceLevel = "EXECUTIVE"
)

type JobPosting struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Company         string          `json:"company"`
	Location        string          `json:"location"`
	Description     string          `json:"description"`
	PostedDate      time.Time       `json:"postedDate"`
	ExpirationDate  *time.Time      `json:"expirationDate,omitempty"`
	ApplicationURL  string          `json:"applicationUrl"`
	JobType         JobType         `json:"jobType,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel,omitempty"`
}

type SearchJobsCriteria struct {
	Keywords        string
	Location        string
	JobType         string
	ExperienceLevel string
	Limit           int
}

type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	Text           string    `json:"text"`
	SentAt         time.Time `json:"sentAt"`
	Read           bool      `json:"read"`
}

type SendMessageInput struct {
	RecipientID string
	Text        string
}

type PostAnalytics struct {
	PostID      string  `json:"postId"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Likes       int     `json:"likes"`
	Comments    int     `json:"comments"`
	Shares      int     `json:"shares"`
	Engagement  float64 `json:"engagement"`
}
