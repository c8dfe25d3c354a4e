package models

// MessageRecord is a single element of the export's "messages" array.
// Author may be absent entirely; such records are skipped by the
// aggregator. All other optional fields default to their zero value.
type MessageRecord struct {
	ID          string       `json:"id"`
	Author      *Author      `json:"author"`
	Timestamp   string       `json:"timestamp"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments"`
	IsPinned    bool         `json:"isPinned"`
	Reactions   []Reaction   `json:"reactions"`
	Mentions    []Mention    `json:"mentions"`
}

type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarUrl string `json:"avatarUrl"`
	IsBot     bool   `json:"isBot"`
}

type Attachment struct {
	Url string `json:"url"`
}

type Reaction struct {
	Emoji Emoji `json:"emoji"`
	Count int   `json:"count"`
}

type Emoji struct {
	Name string `json:"name"`
}

type Mention struct {
	ID string `json:"id"`
}

// AuthorID returns the author id or "" when the author block is missing.
func (m *MessageRecord) AuthorID() string {
	if m.Author == nil {
		return ""
	}
	return m.Author.ID
}
