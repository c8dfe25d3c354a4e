package models

const PlaceholderUsername = "unknown"

// Profile is created the first time an id is observed, either as a
// message author or as a mention target. Mention-only profiles get the
// placeholder username and no avatar.
type Profile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarUrl string `json:"avatar_url"`
	IsBot     bool   `json:"is_bot"`
}

// IsDeleted reports whether the profile is a deleted-placeholder
// account. Such users are excluded from rankings and summaries.
func (p *Profile) IsDeleted() bool {
	return p.Username == "Deleted User" || p.Username == "deleted"
}

func NewProfile(id string, author *Author) *Profile {
	p := &Profile{ID: id, Username: PlaceholderUsername}
	if author != nil {
		if author.Name != "" {
			p.Username = author.Name
		}
		p.AvatarUrl = author.AvatarUrl
		p.IsBot = author.IsBot
	}
	return p
}
